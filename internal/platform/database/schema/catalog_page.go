package schema

// CatalogPageTable represents the 'catalog.page' table
type CatalogPageTable struct {
	Table      string
	ID         string
	ChapterID  string
	PageNumber string
	ContentURL string
}

// CatalogPage is the schema definition for catalog.page
var CatalogPage = CatalogPageTable{
	Table:      "catalog.page",
	ID:         "id",
	ChapterID:  "chapterid",
	PageNumber: "pagenumber",
	ContentURL: "contenturl",
}

func (t CatalogPageTable) Columns() []string {
	return []string{t.ID, t.ChapterID, t.PageNumber, t.ContentURL}
}
