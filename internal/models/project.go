package models

import "time"

type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	RepoURL      string    `json:"repo_url"`
	DemoURL      string    `json:"demo_url"`
	ImageURL     string    `json:"image_url"`
	Technologies []string  `json:"technologies"`
	Featured     bool      `json:"featured"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectUpdate carries a partial update; nil fields keep stored values.
type ProjectUpdate struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	RepoURL      *string  `json:"repo_url"`
	DemoURL      *string  `json:"demo_url"`
	ImageURL     *string  `json:"image_url"`
	Technologies []string `json:"technologies"`
	Featured     *bool    `json:"featured"`
	DisplayOrder *int     `json:"display_order"`
}
