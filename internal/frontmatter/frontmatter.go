// Package frontmatter splits YAML front matter from Markdown sources and
// composes new documents from a field map and a body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TitleField is the front matter key holding a page title.
const TitleField = "title"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Document is a Markdown source separated into front matter fields and body.
type Document struct {
	Fields         map[string]any
	Body           []byte
	HasFrontMatter bool
}

// Title returns the front matter title, or "" when absent. Non-string scalars
// (e.g. `title: 2024`) are formatted with fmt.
func (d *Document) Title() string {
	v, ok := d.Fields[TitleField]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Parse separates `---` delimited YAML front matter from the Markdown body.
//
// A document without an opening delimiter has no fields and the full input as body.
func Parse(content []byte) (*Document, error) {
	raw, body, had, err := split(content)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("parse front matter: %w", err)
		}
		if fields == nil {
			fields = map[string]any{}
		}
	}
	return &Document{Fields: fields, Body: body, HasFrontMatter: had}, nil
}

func split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return nil, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			return content[start : len(content)-len("---")], nil, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
