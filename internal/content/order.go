package content

import (
	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/project"
)

// Order arranges indexed categories in sidebar order and filters each
// category's entries down to the titles the sidebar lists, in that order.
// Titles without a matching entry are skipped; on duplicate titles the first
// entry wins. A sidebar category missing from the index is fatal.
func Order(sidebar project.Sidebar, ix *Index) ([]CategoryData, error) {
	ordered := make([]CategoryData, 0, len(sidebar))
	for _, sc := range sidebar {
		doc, ok := ix.Lookup(sc.Title)
		if !ok {
			return nil, errors.ValidationError("Category '"+sc.Title+"' is not found").
				WithContext("category", sc.Title).
				Build()
		}

		entries := NewEntryList()
		for _, title := range sc.Entries {
			if e, found := doc.Entries.FindByTitle(title); found {
				entries.Set(e)
			}
		}
		ordered = append(ordered, CategoryData{
			Name: sc.Title,
			Doc:  CategoryDocument{Root: doc.Root, Entries: entries},
		})
	}
	return ordered, nil
}
