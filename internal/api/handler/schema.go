package handler

import "time"

// --- Response types ---

type postResponse struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	Tags         []string  `json:"tags"`
	PostDate     time.Time `json:"post_date"`
	ForbiddenFor []string  `json:"forbidden_for"`
	// Username is left out when the author no longer exists.
	Username *string `json:"username,omitempty"`
}

type commentResponse struct {
	ID          string    `json:"_id"`
	Text        string    `json:"text"`
	CommentDate time.Time `json:"comment_date"`
	Username    *string   `json:"username,omitempty"`
}
