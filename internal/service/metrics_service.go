package service

import (
	"context"

	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

type metricsService struct {
	repos *repository.Repositories
}

func newMetricsService(repos *repository.Repositories) *metricsService {
	return &metricsService{repos: repos}
}

func (s *metricsService) Stats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repos.Article.Count(gctx)
		stats.Articles = n
		return err
	})
	g.Go(func() error {
		n, err := s.repos.Catalogue.Count(gctx)
		stats.CatalogueEntries = n
		return err
	})
	g.Go(func() error {
		counts, err := s.repos.Message.CountByStatus(gctx)
		stats.Messages = counts
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
