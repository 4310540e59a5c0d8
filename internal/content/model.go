// Package content resolves a language's parsed source tree into the ordered,
// merged and paginated structure that the site writer renders.
//
// The pipeline is: BuildIndex (group entries per category), Order (apply the
// sidebar), Merge (overlay onto the reference language) and Paginate (link
// every page to its neighbours).
package content

// DocEntry is the atomic renderable unit: a category root page or an entry page.
type DocEntry struct {
	Content     string
	Path        string
	Title       string
	Fingerprint string
}

// EntryList is an insertion-ordered collection of entries keyed by path.
type EntryList struct {
	items []DocEntry
	index map[string]int
}

// NewEntryList returns an empty list.
func NewEntryList() *EntryList {
	return &EntryList{index: map[string]int{}}
}

// Set appends the entry, or replaces the value in place when its path is
// already present.
func (l *EntryList) Set(e DocEntry) {
	if i, ok := l.index[e.Path]; ok {
		l.items[i] = e
		return
	}
	l.index[e.Path] = len(l.items)
	l.items = append(l.items, e)
}

// Get returns the entry stored under path.
func (l *EntryList) Get(path string) (DocEntry, bool) {
	if l == nil {
		return DocEntry{}, false
	}
	i, ok := l.index[path]
	if !ok {
		return DocEntry{}, false
	}
	return l.items[i], true
}

// FindByTitle returns the first entry with the given title.
func (l *EntryList) FindByTitle(title string) (DocEntry, bool) {
	if l == nil {
		return DocEntry{}, false
	}
	for _, e := range l.items {
		if e.Title == title {
			return e, true
		}
	}
	return DocEntry{}, false
}

// Len returns the number of entries.
func (l *EntryList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// All returns the entries in order. The slice is a copy.
func (l *EntryList) All() []DocEntry {
	if l == nil {
		return nil
	}
	out := make([]DocEntry, len(l.items))
	copy(out, l.items)
	return out
}

// Paths returns the entry paths in order.
func (l *EntryList) Paths() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.items))
	for i, e := range l.items {
		out[i] = e.Path
	}
	return out
}

// CategoryDocument is a category's landing page plus its ordered entries.
// Entries never contains the root.
type CategoryDocument struct {
	Root    DocEntry
	Entries *EntryList
}

// CategoryData is a named category document in display order.
type CategoryData struct {
	Name string
	Doc  CategoryDocument
}
