package index

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tlockney/quickpost/internal/store"
)

// eventRecorder collects watcher callbacks for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events map[string]string // slug -> last kind
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{events: make(map[string]string)}
}

func (r *eventRecorder) record(kind, slug string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[slug] = kind
}

func (r *eventRecorder) kind(slug string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[slug]
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatchIndexesNewPost(t *testing.T) {
	db := testDB(t)
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	rec := newEventRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = Watch(ctx, db, st, discardLogger(), rec.record)
		close(done)
	}()
	time.Sleep(100 * time.Millisecond) // let the watcher arm

	p, err := st.Create("Watched Post", "body here")
	if err != nil {
		t.Fatal(err)
	}

	ok := waitFor(t, 3*time.Second, func() bool {
		cs, _ := db.AllChecksums()
		_, indexed := cs[p.ID]
		return indexed
	})
	if !ok {
		t.Fatal("post never indexed by watcher")
	}
	if k := rec.kind(p.ID); k == "" {
		t.Error("no event recorded for created post")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatchRemovesDeletedPost(t *testing.T) {
	db := testDB(t)
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p, _ := st.Create("Doomed", "body")
	if err := Sync(db, st, discardLogger()); err != nil {
		t.Fatal(err)
	}

	rec := newEventRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = Watch(ctx, db, st, discardLogger(), rec.record) }()
	time.Sleep(100 * time.Millisecond)

	if _, err := st.Delete(p.ID); err != nil {
		t.Fatal(err)
	}

	ok := waitFor(t, 3*time.Second, func() bool {
		cs, _ := db.AllChecksums()
		_, indexed := cs[p.ID]
		return !indexed
	})
	if !ok {
		t.Fatal("deleted post still indexed")
	}
	if k := rec.kind(p.ID); k != "deleted" {
		t.Errorf("event kind = %q, want deleted", k)
	}
}
