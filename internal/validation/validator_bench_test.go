package validation

import (
	"testing"

	"github.com/apparel-site-api/internal/models"
)

// BenchmarkDeriveSlug benchmarks slug derivation from a typical title
func BenchmarkDeriveSlug(b *testing.B) {
	title := "The Future of Custom Apparel: Trends & Innovation in 2024!"

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		DeriveSlug(title)
	}
}

// BenchmarkValidateArticle benchmarks full article validation
func BenchmarkValidateArticle(b *testing.B) {
	article := &models.Article{
		Slug:     "future-of-custom-apparel",
		Title:    "The Future of Custom Apparel",
		Category: "Fashion & Design",
		Author:   "Sarah Chen",
		Status:   models.ArticleStatusPublished,
		Content: []models.ContentBlock{
			{Heading: "Introduction", Paragraph: "Custom apparel is changing."},
			{Heading: "Conclusion", Paragraph: "It will keep changing."},
		},
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ValidateArticle(article)
	}
}
