package schema

// CatalogSeriesTable represents the 'catalog.series' table
type CatalogSeriesTable struct {
	Table        string
	ID           string
	Title        string
	Slug         string
	Description  string
	AuthorID     string
	Genre        string
	Status       string
	CoverURL     string
	ChapterCount string
	RatingAvg    string
	RatingCount  string
	CreatedAt    string
	UpdatedAt    string
}

// CatalogSeries is the schema definition for catalog.series
var CatalogSeries = CatalogSeriesTable{
	Table:        "catalog.series",
	ID:           "id",
	Title:        "title",
	Slug:         "slug",
	Description:  "description",
	AuthorID:     "authorid",
	Genre:        "genre",
	Status:       "status",
	CoverURL:     "coverurl",
	ChapterCount: "chaptercount",
	RatingAvg:    "ratingavg",
	RatingCount:  "ratingcount",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CatalogSeriesTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.AuthorID, t.Genre, t.Status,
		t.CoverURL, t.ChapterCount, t.RatingAvg, t.RatingCount, t.CreatedAt, t.UpdatedAt,
	}
}
