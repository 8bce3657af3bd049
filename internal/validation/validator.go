package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apparel-site-api/internal/models"
	"github.com/google/uuid"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRunes = regexp.MustCompile(`[^a-z0-9]+`)
)

// FieldError represents a single validation failure
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DeriveSlug builds a URL-safe slug from a title: lowercase, every run of
// characters outside [a-z0-9] collapsed to one hyphen, no edge hyphens.
func DeriveSlug(title string) string {
	slug := nonSlugRunes.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// IsValidSlug reports whether s is kebab-case
func IsValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// IsValidUUID reports whether s has the shape of a document id
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsValidEmail performs a shape check on an email address
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidateArticle checks required fields, slug shape and status
func ValidateArticle(article *models.Article) []FieldError {
	var errors []FieldError

	if strings.TrimSpace(article.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	}

	if article.Slug == "" {
		errors = append(errors, FieldError{Field: "slug", Message: "slug is required (could not derive one from title)"})
	} else if !IsValidSlug(article.Slug) {
		errors = append(errors, FieldError{
			Field:   "slug",
			Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)",
			Value:   article.Slug,
		})
	}

	if strings.TrimSpace(article.Category) == "" {
		errors = append(errors, FieldError{Field: "category", Message: "category is required"})
	}

	if strings.TrimSpace(article.Author) == "" {
		errors = append(errors, FieldError{Field: "author", Message: "author is required"})
	}

	if !models.ValidArticleStatuses[article.Status] {
		errors = append(errors, FieldError{
			Field:   "status",
			Message: "invalid status, must be one of: published, draft, archived",
			Value:   article.Status,
		})
	}

	if article.Views < 0 {
		errors = append(errors, FieldError{Field: "views", Message: "views cannot be negative", Value: article.Views})
	}

	for i, block := range article.Content {
		if block.Heading == "" && block.Paragraph == "" {
			errors = append(errors, FieldError{
				Field:   fmt.Sprintf("content[%d]", i),
				Message: "content block needs a heading or a paragraph",
			})
		}
	}

	return errors
}

// ValidateMessage checks the contact-form fields that must be present
func ValidateMessage(msg *models.Message) []FieldError {
	var errors []FieldError

	if msg.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !IsValidEmail(msg.Email) {
		errors = append(errors, FieldError{Field: "email", Message: "invalid email format", Value: msg.Email})
	}

	if strings.TrimSpace(msg.Subject) == "" {
		errors = append(errors, FieldError{Field: "subject", Message: "subject is required"})
	}

	if strings.TrimSpace(msg.Message) == "" {
		errors = append(errors, FieldError{Field: "message", Message: "message is required"})
	}

	if !models.ValidMessageStatuses[msg.Status] {
		errors = append(errors, FieldError{Field: "status", Message: "invalid status value", Value: msg.Status})
	}

	return errors
}

// IsValidMessageStatus reports whether status is one of new, in-progress, resolved
func IsValidMessageStatus(status models.MessageStatus) bool {
	return models.ValidMessageStatuses[status]
}
