package frontmatter

import (
	"strings"
	"testing"
	"time"
)

func TestParse_FieldsAndBody(t *testing.T) {
	content := "---\ntitle: Hello\ndraft: false\n---\n# Hello\nBody text.\n"
	fields, body := Parse(content)
	if len(fields) != 2 {
		t.Fatalf("len(fields) = %d, want 2", len(fields))
	}
	if v, ok := fields.Get("title"); !ok || v != "Hello" {
		t.Errorf("title = %q, %v", v, ok)
	}
	if v, _ := fields.Get("draft"); v != "false" {
		t.Errorf("draft = %q", v)
	}
	if body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", body)
	}
}

func TestParse_QuotedValues(t *testing.T) {
	content := "---\ntitle: \"Quoted: with colon\"\nauthor: 'single'\n---\nbody"
	fields, _ := Parse(content)
	if v, _ := fields.Get("title"); v != "Quoted: with colon" {
		t.Errorf("title = %q", v)
	}
	if v, _ := fields.Get("author"); v != "single" {
		t.Errorf("author = %q", v)
	}
}

func TestParse_NoBlock(t *testing.T) {
	content := "# Heading\nJust text.\n"
	fields, body := Parse(content)
	if len(fields) != 0 {
		t.Errorf("fields = %v, want none", fields)
	}
	if body != content {
		t.Errorf("body = %q", body)
	}
}

func TestParse_UnclosedBlockIsBody(t *testing.T) {
	content := "---\ntitle: Dangling\nno closing delimiter"
	fields, body := Parse(content)
	if len(fields) != 0 {
		t.Errorf("fields = %v, want none", fields)
	}
	if body != content {
		t.Errorf("body should be original content, got %q", body)
	}
}

func TestParse_LongerDashRunDoesNotClose(t *testing.T) {
	// A ---- line is not the closing delimiter; the block closes at the
	// next real --- line and no stray dash leaks into the body.
	content := "---\ntitle: Ok\n----\nextra: yes\n---\nbody\n"
	fields, body := Parse(content)
	if v, _ := fields.Get("title"); v != "Ok" {
		t.Errorf("title = %q", v)
	}
	if v, _ := fields.Get("extra"); v != "yes" {
		t.Errorf("extra = %q", v)
	}
	if body != "body\n" {
		t.Errorf("body = %q", body)
	}
}

func TestParse_ClosingDelimiterAtEOF(t *testing.T) {
	fields, body := Parse("---\ntitle: Tail\n---")
	if v, _ := fields.Get("title"); v != "Tail" {
		t.Errorf("title = %q", v)
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
}

func TestParse_BlockNotAtStartIgnored(t *testing.T) {
	content := "intro\n---\ntitle: Late\n---\nrest"
	fields, body := Parse(content)
	if len(fields) != 0 {
		t.Errorf("fields = %v, want none", fields)
	}
	if body != content {
		t.Errorf("body = %q", body)
	}
}

func TestParse_LinesWithoutColonSkipped(t *testing.T) {
	content := "---\ntitle: Ok\njust a stray line\n---\nbody"
	fields, _ := Parse(content)
	if len(fields) != 1 {
		t.Errorf("len(fields) = %d, want 1", len(fields))
	}
}

func TestEnsure_PrependsBlock(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	out := ensureAt("Body only.\n", "My Post", "my-post", now)

	fields, body := Parse(out)
	if body != "Body only.\n" {
		t.Errorf("body = %q", body)
	}
	for _, want := range []struct{ key, val string }{
		{"title", "My Post"},
		{"slug", "my-post"},
		{"createdAt", "2024-03-10T12:00:00Z"},
		{"updatedAt", "2024-03-10T12:00:00Z"},
		{"draft", "true"},
	} {
		if v, ok := fields.Get(want.key); !ok || v != want.val {
			t.Errorf("%s = %q (present=%v), want %q", want.key, v, ok, want.val)
		}
	}
	// publishDate carries the fixed UTC-7 offset.
	if v, _ := fields.Get("publishDate"); !strings.HasSuffix(v, "-07:00") {
		t.Errorf("publishDate = %q, want -07:00 suffix", v)
	}
}

func TestEnsure_ExistingBlockUntouched(t *testing.T) {
	content := "---\ntitle: Original\ndraft: false\n---\nbody\n"
	out := Ensure(content, "Other Title", "other-slug")
	if out != content {
		t.Errorf("content changed: %q", out)
	}
}

func TestSetField_MutateAndInsert(t *testing.T) {
	content := "---\ntitle: Old\n---\nbody\n"
	out := SetField(content, "title", "New")
	fields, body := Parse(out)
	if v, _ := fields.Get("title"); v != "New" {
		t.Errorf("title = %q", v)
	}
	if body != "body\n" {
		t.Errorf("body = %q", body)
	}

	out = SetField(out, "draft", "false")
	fields, _ = Parse(out)
	if v, _ := fields.Get("draft"); v != "false" {
		t.Errorf("draft = %q", v)
	}
	// Existing field order preserved; new field appended.
	if fields[0].Key != "title" || fields[len(fields)-1].Key != "draft" {
		t.Errorf("unexpected order: %v", fields)
	}
}

func TestSetField_NoExistingBlock(t *testing.T) {
	out := SetField("plain body\n", "draft", "true")
	fields, body := Parse(out)
	if v, _ := fields.Get("draft"); v != "true" {
		t.Errorf("draft = %q", v)
	}
	if body != "plain body\n" {
		t.Errorf("body = %q", body)
	}
}
