package project

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
)

// SidebarFile is the per-language sidebar filename.
const SidebarFile = "sidebar.json"

// ErrNoSidebar marks a language folder without sidebar.json; such folders are
// not documentation and are skipped.
var ErrNoSidebar = stderrors.New("sidebar.json not found")

// SidebarCategory is one sidebar key: a category title and its ordered entry titles.
type SidebarCategory struct {
	Title   string
	Entries []string
}

// Sidebar is the ordered sidebar configuration of one language. The order of
// categories is the key order of the JSON object.
type Sidebar []SidebarCategory

// LoadSidebar reads <langDir>/sidebar.json. It returns ErrNoSidebar when the
// file does not exist.
func LoadSidebar(langDir string) (Sidebar, error) {
	path := filepath.Join(langDir, SidebarFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSidebar
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read sidebar").
			WithContext("file", path).
			Build()
	}
	sidebar, err := ParseSidebar(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse sidebar").
			Fatal().
			WithContext("file", path).
			Build()
	}
	return sidebar, nil
}

// ParseSidebar decodes a sidebar object while preserving key order. A repeated
// key keeps its first position and takes the last value.
func ParseSidebar(data []byte) (Sidebar, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var sidebar Sidebar
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		title, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected category title, got %v", tok)
		}
		var entries []string
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("category %q: %w", title, err)
		}
		if i, dup := index[title]; dup {
			sidebar[i].Entries = entries
			continue
		}
		index[title] = len(sidebar)
		sidebar = append(sidebar, SidebarCategory{Title: title, Entries: entries})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, stderrors.New("unexpected data after sidebar object")
	}
	return sidebar, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// MarshalJSON writes the sidebar back as an object in declaration order.
func (s Sidebar) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Title)
		if err != nil {
			return nil, err
		}
		entries := c.Entries
		if entries == nil {
			entries = []string{}
		}
		val, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
