package content

// Merge overlays a language's ordered content onto the reference language's
// structure. The result has the reference's categories, entries and order;
// values come from the language wherever it has the same path, otherwise the
// reference value is kept so untranslated pages fall back to the reference.
//
// Categories are aligned by root path (the category folder name), which is the
// same in every language, rather than by position in the sidebar.
//
// A nil reference means no reference content exists yet and the language's
// own content is returned unchanged.
func Merge(reference, lang []CategoryData) []CategoryData {
	if reference == nil {
		return lang
	}

	byRoot := make(map[string]CategoryData, len(lang))
	for _, c := range lang {
		if _, dup := byRoot[c.Doc.Root.Path]; !dup {
			byRoot[c.Doc.Root.Path] = c
		}
	}

	merged := make([]CategoryData, 0, len(reference))
	for _, ref := range reference {
		out := CategoryData{
			Name: ref.Name,
			Doc:  CategoryDocument{Root: ref.Doc.Root, Entries: NewEntryList()},
		}
		own, translated := byRoot[ref.Doc.Root.Path]
		if translated {
			out.Name = own.Name
			out.Doc.Root = own.Doc.Root
		}
		for _, e := range ref.Doc.Entries.All() {
			if translated {
				if le, ok := own.Doc.Entries.Get(e.Path); ok {
					e = le
				}
			}
			out.Doc.Entries.Set(e)
		}
		merged = append(merged, out)
	}
	return merged
}
