package content

import "git.home.luguber.info/inful/vale/internal/docs"

// Index maps category titles to documents.
type Index struct {
	docs map[string]*CategoryDocument
}

// BuildIndex groups parsed category nodes into category documents. A category
// with neither entries nor a description file has no content and is skipped.
// When two categories share a title the first one read is kept.
func BuildIndex(nodes []docs.SourceNode) *Index {
	ix := &Index{docs: map[string]*CategoryDocument{}}
	for _, category := range nodes {
		if !category.IsCategory() || (len(category.Children) == 0 && !category.HasBody) {
			continue
		}
		if _, dup := ix.docs[category.Title]; dup {
			continue
		}

		doc := &CategoryDocument{
			Root: DocEntry{
				Content:     category.Body,
				Path:        category.Path,
				Title:       category.Title,
				Fingerprint: category.Fingerprint,
			},
			Entries: NewEntryList(),
		}
		for _, child := range category.Children {
			if child.IsCategory() {
				continue
			}
			doc.Entries.Set(DocEntry{
				Content:     child.Body,
				Path:        category.Path + "/" + child.Path,
				Title:       child.Title,
				Fingerprint: child.Fingerprint,
			})
		}
		ix.docs[category.Title] = doc
	}
	return ix
}

// Lookup returns the category document indexed under title.
func (ix *Index) Lookup(title string) (*CategoryDocument, bool) {
	doc, ok := ix.docs[title]
	return doc, ok
}

// Len returns the number of indexed categories.
func (ix *Index) Len() int {
	return len(ix.docs)
}
