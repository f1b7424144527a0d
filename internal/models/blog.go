package models

import "time"

type Blog struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Summary   string   `json:"summary"`
	ImageURL  string   `json:"image_url"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
	AuthorID  string   `json:"author_id"`
	// AuthorName is populated on reads via a join; never written directly.
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BlogUpdate carries a partial update; nil fields keep stored values.
type BlogUpdate struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Summary   *string  `json:"summary"`
	ImageURL  *string  `json:"image_url"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

// BlogPage is one page of published posts plus pagination metadata.
type BlogPage struct {
	Blogs      []*Blog `json:"blogs"`
	Page       int     `json:"page"`
	Pages      int     `json:"pages"`
	TotalBlogs int     `json:"total_blogs"`
}
