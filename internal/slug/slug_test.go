package slug

import (
	"strings"
	"testing"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Test Post", "test-post"},
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces\tand\ttabs", "multiple-spaces-and-tabs"},
		{"mixed \t whitespace\nruns", "mixed-whitespace-runs"},
		{"Already-hyphenated --- title", "already-hyphenated-title"},
		{"UPPER case MiXeD", "upper-case-mixed"},
		{"under_score kept", "under_score-kept"},
		{"100% pure (really)", "100-pure-really"},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := Derive(c.in); got != c.want {
			t.Errorf("Derive(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDeriveTruncates(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := Derive(long)
	if len(got) != 60 {
		t.Errorf("len = %d, want 60", len(got))
	}
}

func TestDeriveTruncateDoesNotEndWithHyphen(t *testing.T) {
	// A word boundary falling exactly on the cut must not leave a trailing hyphen.
	title := strings.Repeat("ab ", 30)
	got := Derive(title)
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug %q ends with hyphen", got)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	a := Derive("Some Title Here")
	b := Derive("Some Title Here")
	if a != b {
		t.Errorf("not deterministic: %q vs %q", a, b)
	}
}
