package validation

import (
	"regexp"
	"strings"
	"testing"

	"github.com/apparel-site-api/internal/models"
)

func validArticle() *models.Article {
	return &models.Article{
		Slug:     "future-of-custom-apparel",
		Title:    "The Future of Custom Apparel",
		Category: "Fashion & Design",
		Author:   "Sarah Chen",
		Status:   models.ArticleStatusDraft,
	}
}

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World! 2024", "hello-world-2024"},
		{"The Future of Custom Apparel: Trends and Innovation", "the-future-of-custom-apparel-trends-and-innovation"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple---hyphens___and   spaces", "multiple-hyphens-and-spaces"},
		{"Café & Crème", "caf-cr-me"},
		{"!!!", ""},
		{"already-a-slug", "already-a-slug"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := DeriveSlug(tt.title); got != tt.want {
				t.Errorf("DeriveSlug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestDeriveSlug_Properties(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-z0-9-]*$`)
	titles := []string{
		"Hello, World! 2024",
		"ÜBER -- Fancy / Titles?",
		"tabs\tand\nnewlines",
		"MiXeD CaSe 123 ABC",
		"emoji 🎉 party",
		"-edge-",
	}

	for _, title := range titles {
		slug := DeriveSlug(title)
		if slug != strings.ToLower(slug) {
			t.Errorf("slug %q for %q is not lowercase", slug, title)
		}
		if !allowed.MatchString(slug) {
			t.Errorf("slug %q for %q has characters outside [a-z0-9-]", slug, title)
		}
		if strings.Contains(slug, "--") {
			t.Errorf("slug %q for %q has consecutive hyphens", slug, title)
		}
		if slug != "" && !IsValidSlug(slug) {
			t.Errorf("derived slug %q for %q fails slug validation", slug, title)
		}
	}
}

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(a *models.Article)
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid article",
			mutate:     func(a *models.Article) {},
			wantErrors: 0,
		},
		{
			name:       "missing title",
			mutate:     func(a *models.Article) { a.Title = "" },
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "invalid slug format",
			mutate:     func(a *models.Article) { a.Slug = "Not A Slug" },
			wantErrors: 1,
			wantFields: []string{"slug"},
		},
		{
			name:       "empty slug",
			mutate:     func(a *models.Article) { a.Slug = "" },
			wantErrors: 1,
			wantFields: []string{"slug"},
		},
		{
			name:       "invalid status",
			mutate:     func(a *models.Article) { a.Status = "deleted" },
			wantErrors: 1,
			wantFields: []string{"status"},
		},
		{
			name: "missing category and author",
			mutate: func(a *models.Article) {
				a.Category = ""
				a.Author = " "
			},
			wantErrors: 2,
			wantFields: []string{"category", "author"},
		},
		{
			name:       "negative views",
			mutate:     func(a *models.Article) { a.Views = -1 },
			wantErrors: 1,
			wantFields: []string{"views"},
		},
		{
			name: "empty content block",
			mutate: func(a *models.Article) {
				a.Content = []models.ContentBlock{{Heading: "Intro", Paragraph: "text"}, {}}
			},
			wantErrors: 1,
			wantFields: []string{"content[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := validArticle()
			tt.mutate(article)

			errors := ValidateArticle(article)
			if len(errors) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.wantErrors, len(errors), errors)
			}

			for _, field := range tt.wantFields {
				found := false
				for _, e := range errors {
					if e.Field == field {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected error for field %s, not found in %v", field, errors)
				}
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	base := func() *models.Message {
		return &models.Message{
			Email:   "buyer@example.com",
			Subject: "Bulk order",
			Message: "We need 500 polo shirts.",
			Status:  models.MessageStatusNew,
		}
	}

	tests := []struct {
		name       string
		mutate     func(m *models.Message)
		wantFields []string
	}{
		{"valid", func(m *models.Message) {}, nil},
		{"missing email", func(m *models.Message) { m.Email = "" }, []string{"email"}},
		{"bad email", func(m *models.Message) { m.Email = "not-an-email" }, []string{"email"}},
		{"missing message", func(m *models.Message) { m.Message = "   " }, []string{"message"}},
		{"missing subject", func(m *models.Message) { m.Subject = "" }, []string{"subject"}},
		{"bad status", func(m *models.Message) { m.Status = "closed" }, []string{"status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := base()
			tt.mutate(msg)

			errors := ValidateMessage(msg)
			if len(errors) != len(tt.wantFields) {
				t.Fatalf("Expected %d errors, got %v", len(tt.wantFields), errors)
			}
			for i, field := range tt.wantFields {
				if errors[i].Field != field {
					t.Errorf("Expected field %s, got %s", field, errors[i].Field)
				}
			}
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("550e8400-e29b-41d4-a716-446655440000") {
		t.Error("Expected valid UUID")
	}
	if IsValidUUID("future-of-custom-apparel") {
		t.Error("Slug should not parse as UUID")
	}
}

func TestIsValidMessageStatus(t *testing.T) {
	for _, s := range []models.MessageStatus{"new", "in-progress", "resolved"} {
		if !IsValidMessageStatus(s) {
			t.Errorf("Expected %s to be valid", s)
		}
	}
	for _, s := range []models.MessageStatus{"", "closed", "Resolved"} {
		if IsValidMessageStatus(s) {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}
