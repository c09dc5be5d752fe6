package model

import "time"

type NewsStatus string

const (
	NewsStatusDraft     NewsStatus = "draft"
	NewsStatusPending   NewsStatus = "pending"
	NewsStatusPublished NewsStatus = "published"
	NewsStatusRejected  NewsStatus = "rejected"
	NewsStatusArchived  NewsStatus = "archived"
)

// News — статья/новость канала
type News struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content,omitempty"`
	CoverURL    string     `json:"coverUrl,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Status      NewsStatus `json:"status"`
	Featured    bool       `json:"featured"`
	ChannelID   string     `json:"channelId,omitempty"`
	AuthorID    string     `json:"authorId"`
	Views       int        `json:"views"`
	Likes       int        `json:"likes"`
	Liked       bool       `json:"liked"`
	Bookmarked  bool       `json:"bookmarked"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateNewsRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Summary   string   `json:"summary,omitempty" validate:"max=500"`
	Content   string   `json:"content" validate:"required"`
	CoverURL  string   `json:"coverUrl,omitempty" validate:"omitempty,url"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty" validate:"max=10"`
	ChannelID string   `json:"channelId,omitempty"`
	Publish   bool     `json:"publish,omitempty"`
}

type UpdateNewsRequest struct {
	Title    *string  `json:"title,omitempty" validate:"omitempty,max=200"`
	Summary  *string  `json:"summary,omitempty" validate:"omitempty,max=500"`
	Content  *string  `json:"content,omitempty"`
	CoverURL *string  `json:"coverUrl,omitempty" validate:"omitempty,url"`
	Category *string  `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty" validate:"max=10"`
}
