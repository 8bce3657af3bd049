package models

import (
	"time"
)

// ArticleStatus is the publication state of an article
type ArticleStatus string

const (
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// ValidArticleStatuses defines allowed article statuses
var ValidArticleStatuses = map[ArticleStatus]bool{
	ArticleStatusPublished: true,
	ArticleStatusDraft:     true,
	ArticleStatusArchived:  true,
}

// ContentBlock is one heading/paragraph pair of an article body.
// Order matters: the headings double as the table of contents.
type ContentBlock struct {
	Heading   string `json:"heading"`
	Paragraph string `json:"paragraph"`
}

// Article represents a blog article
type Article struct {
	ID           string         `json:"id"`
	Slug         string         `json:"slug"`
	Title        string         `json:"title"`
	HeroImg      string         `json:"heroImg"`
	Excerpt      string         `json:"excerpt"`
	Category     string         `json:"category"`
	Author       string         `json:"author"`
	Date         string         `json:"date"`
	PublishDate  string         `json:"publishDate"`
	Likes        string         `json:"likes"`
	Shares       string         `json:"shares"`
	Views        int            `json:"views"`
	Status       ArticleStatus  `json:"status"`
	Introduction string         `json:"introduction"`
	Content      []ContentBlock `json:"content"`
	SidebarItems []string       `json:"sidebarItems"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// ArticleInput is the request body for creating or updating an article.
// Nil fields are left untouched on update and defaulted on create.
type ArticleInput struct {
	Slug         *string         `json:"slug"`
	Title        *string         `json:"title"`
	HeroImg      *string         `json:"heroImg"`
	Excerpt      *string         `json:"excerpt"`
	Category     *string         `json:"category"`
	Author       *string         `json:"author"`
	Date         *string         `json:"date"`
	PublishDate  *string         `json:"publishDate"`
	Likes        *string         `json:"likes"`
	Shares       *string         `json:"shares"`
	Views        *int            `json:"views"`
	Status       *ArticleStatus  `json:"status"`
	Introduction *string         `json:"introduction"`
	Content      *[]ContentBlock `json:"content"`
	SidebarItems *[]string       `json:"sidebarItems"`
}

// ApplyTo copies every non-nil field onto the article
func (in *ArticleInput) ApplyTo(a *Article) {
	setString(&a.Slug, in.Slug)
	setString(&a.Title, in.Title)
	setString(&a.HeroImg, in.HeroImg)
	setString(&a.Excerpt, in.Excerpt)
	setString(&a.Category, in.Category)
	setString(&a.Author, in.Author)
	setString(&a.Date, in.Date)
	setString(&a.PublishDate, in.PublishDate)
	setString(&a.Likes, in.Likes)
	setString(&a.Shares, in.Shares)
	setString(&a.Introduction, in.Introduction)
	if in.Views != nil {
		a.Views = *in.Views
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.SidebarItems != nil {
		a.SidebarItems = *in.SidebarItems
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// ArticleFilter narrows an article listing. Empty fields are ignored.
type ArticleFilter struct {
	Status   string
	Category string
	Search   string
}
