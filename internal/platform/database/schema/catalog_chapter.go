package schema

// CatalogChapterTable represents the 'catalog.chapter' table
type CatalogChapterTable struct {
	Table     string
	ID        string
	SeriesID  string
	Title     string
	Number    string
	PageCount string
	CreatedAt string
}

// CatalogChapter is the schema definition for catalog.chapter
var CatalogChapter = CatalogChapterTable{
	Table:     "catalog.chapter",
	ID:        "id",
	SeriesID:  "seriesid",
	Title:     "title",
	Number:    "sequencenumber",
	PageCount: "pagecount",
	CreatedAt: "createdat",
}

func (t CatalogChapterTable) Columns() []string {
	return []string{t.ID, t.SeriesID, t.Title, t.Number, t.PageCount, t.CreatedAt}
}
