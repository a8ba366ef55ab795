package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	ChapterID string
	UserID    string
	Body      string
	CreatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	ChapterID: "chapterid",
	UserID:    "userid",
	Body:      "body",
	CreatedAt: "createdat",
}
