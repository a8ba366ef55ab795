package schema

// SocialRatingTable represents the 'social.rating' table
type SocialRatingTable struct {
	Table     string
	ID        string
	SeriesID  string
	UserID    string
	Score     string
	Comment   string
	CreatedAt string
	UpdatedAt string
}

// SocialRating is the schema definition for social.rating
var SocialRating = SocialRatingTable{
	Table:     "social.rating",
	ID:        "id",
	SeriesID:  "seriesid",
	UserID:    "userid",
	Score:     "score",
	Comment:   "comment",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
