package markdown

import (
	"strings"
	"testing"
)

func render(t *testing.T, src string) string {
	t.Helper()
	out, err := New().Render(src)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func TestScriptStripped(t *testing.T) {
	out := render(t, "<script>alert(1)</script>\n# Heading")
	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived: %q", out)
	}
	if strings.Contains(out, "alert") {
		t.Errorf("script body survived: %q", out)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Heading") {
		t.Errorf("heading missing: %q", out)
	}
}

func TestEventHandlerStripped(t *testing.T) {
	out := render(t, `<img src="x.png" onerror="alert(1)">`)
	if strings.Contains(out, "onerror") {
		t.Errorf("event handler survived: %q", out)
	}
}

func TestLinkRendering(t *testing.T) {
	out := render(t, "[T](url)")
	if !strings.Contains(out, `href="url"`) {
		t.Errorf("missing href: %q", out)
	}
	if !strings.Contains(out, ">T</a>") {
		t.Errorf("missing link text: %q", out)
	}
}

func TestImageRendering(t *testing.T) {
	out := render(t, "![Alt](img.png)")
	if !strings.Contains(out, `src="img.png"`) {
		t.Errorf("missing src: %q", out)
	}
	if !strings.Contains(out, `alt="Alt"`) {
		t.Errorf("missing alt: %q", out)
	}
}

func TestJavascriptURLBlocked(t *testing.T) {
	out := render(t, "[x](javascript:alert(1))")
	if strings.Contains(out, "javascript:") {
		t.Errorf("javascript URL survived: %q", out)
	}
}

func TestSoftLineBreaks(t *testing.T) {
	out := render(t, "line one\nline two")
	if !strings.Contains(out, "<br") {
		t.Errorf("soft break not rendered as <br>: %q", out)
	}
}

func TestGFMTable(t *testing.T) {
	out := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "<td>1</td>") {
		t.Errorf("table not rendered: %q", out)
	}
}

func TestTaskList(t *testing.T) {
	out := render(t, "- [x] done\n- [ ] todo\n")
	if !strings.Contains(out, `type="checkbox"`) {
		t.Errorf("task list checkbox missing: %q", out)
	}
}

func TestStrikethrough(t *testing.T) {
	out := render(t, "~~gone~~")
	if !strings.Contains(out, "<del>gone</del>") {
		t.Errorf("strikethrough not rendered: %q", out)
	}
}

func TestFencedCode(t *testing.T) {
	out := render(t, "```\ncode here\n```\n")
	if !strings.Contains(out, "<pre>") || !strings.Contains(out, "code here") {
		t.Errorf("fenced code not rendered: %q", out)
	}
}
