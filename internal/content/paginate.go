package content

// Page is one rendered page with its pagination neighbours. Prev and Next are
// nil at the ends of the language's reading sequence.
type Page struct {
	Entry DocEntry
	Prev  *DocEntry
	Next  *DocEntry
}

// Paginate flattens categories into one reading sequence
// (c1.root, c1.e1 .. c1.eN, c2.root, ...) and links each page to its
// neighbours. A category root's prev is the previous category's last entry
// (or its root when it has no entries); its next is its own first entry.
func Paginate(categories []CategoryData) []Page {
	var pages []Page
	for _, c := range categories {
		pages = append(pages, Page{Entry: c.Doc.Root})
		for _, e := range c.Doc.Entries.All() {
			pages = append(pages, Page{Entry: e})
		}
	}
	for i := range pages {
		if i > 0 {
			prev := pages[i-1].Entry
			pages[i].Prev = &prev
		}
		if i < len(pages)-1 {
			next := pages[i+1].Entry
			pages[i].Next = &next
		}
	}
	return pages
}
