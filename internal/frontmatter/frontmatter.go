// Package frontmatter parses and generates the key-value metadata block
// optionally prefixed to post content between literal "---" lines.
//
// Parsing is deliberately permissive: a malformed or absent block degrades to
// "no fields found" and the original content is returned as the body. Nothing
// in this package ever returns an error.
package frontmatter

import (
	"strings"
	"time"
)

const delim = "---"

// publishZone is the fixed UTC-7 offset used for the publishDate field.
var publishZone = time.FixedZone("UTC-7", -7*60*60)

// Field is a single key-value entry. Fields keep insertion order so that
// re-serialized blocks stay recognizable.
type Field struct {
	Key   string
	Value string
}

// Fields is an ordered mapping of frontmatter entries.
type Fields []Field

// Get returns the value for key and whether it was present.
func (f Fields) Get(key string) (string, bool) {
	for _, fl := range f {
		if fl.Key == key {
			return fl.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key, or appends a new entry when absent.
func (f Fields) Set(key, value string) Fields {
	for i, fl := range f {
		if fl.Key == key {
			f[i].Value = value
			return f
		}
	}
	return append(f, Field{Key: key, Value: value})
}

// Parse splits content into frontmatter fields and body. The block must start
// at the very beginning of content and be closed by another delimiter line;
// otherwise the whole content is body and the returned fields are empty.
// Lines inside the block split at the first colon; lines without one are
// skipped. Surrounding single or double quotes are stripped from values.
func Parse(content string) (Fields, string) {
	if !strings.HasPrefix(content, delim+"\n") {
		return nil, content
	}
	rest := content[len(delim)+1:]
	end := closingDelim(rest)
	if end < 0 {
		// No closing delimiter: treat everything as body.
		return nil, content
	}

	block := rest[:end]
	body := rest[end+1+len(delim):]
	body = strings.TrimPrefix(body, "\n")

	var fields Fields
	for _, line := range strings.Split(block, "\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		fields = append(fields, Field{Key: k, Value: unquote(strings.TrimSpace(v))})
	}
	return fields, body
}

// closingDelim returns the index in rest of the newline preceding the closing
// delimiter, or -1. The delimiter must occupy a whole line: longer dash runs
// like ---- do not close the block.
func closingDelim(rest string) int {
	for from := 0; ; {
		i := strings.Index(rest[from:], "\n"+delim)
		if i < 0 {
			return -1
		}
		pos := from + i
		after := pos + 1 + len(delim)
		if after == len(rest) || rest[after] == '\n' {
			return pos
		}
		from = pos + 1
	}
}

// Ensure returns content unchanged when it already carries any frontmatter
// fields; otherwise it prepends a synthesized block for the given title and
// slug, marking the post as a draft.
func Ensure(content, title, slug string) string {
	return ensureAt(content, title, slug, time.Now())
}

func ensureAt(content, title, slug string, now time.Time) string {
	if fields, _ := Parse(content); len(fields) > 0 {
		return content
	}
	stamp := now.UTC().Format(time.RFC3339)
	fields := Fields{
		{Key: "title", Value: title},
		{Key: "slug", Value: slug},
		{Key: "publishDate", Value: now.In(publishZone).Format(time.RFC3339)},
		{Key: "createdAt", Value: stamp},
		{Key: "updatedAt", Value: stamp},
		{Key: "draft", Value: "true"},
	}
	return serialize(fields) + content
}

// SetField parses content, mutates or inserts one field, and reassembles the
// block with the original body. Field order beyond insertion order is not
// guaranteed to survive round-trips.
func SetField(content, key, value string) string {
	fields, body := Parse(content)
	fields = fields.Set(key, value)
	return serialize(fields) + body
}

func serialize(fields Fields) string {
	var b strings.Builder
	b.WriteString(delim + "\n")
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	b.WriteString(delim + "\n")
	return b.String()
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
