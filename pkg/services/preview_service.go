package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"craft-gallery/pkg/config"
	"craft-gallery/pkg/models"
)

// previewConcurrency bounds the manifest fetches of one home page
const previewConcurrency = 8

// LoadPreviews paints each placeholder with the first image of its category.
// Every placeholder fetches the manifest on its own and the fetches complete
// in any order. Misses and failures fall back to a labelled neutral tile.
// Once ctx is done the remaining placeholders fall back without fetching.
func (s *Service) LoadPreviews(ctx context.Context, placeholders []*models.Placeholder) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(previewConcurrency)
	for _, p := range placeholders {
		p := p
		category := p.Category()
		if category == "" {
			continue
		}
		gen := p.Begin()
		label := "View " + FormatCategoryName(category)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				p.Fallback(gen, label)
				return err
			}

			manifest, err := s.fetcher.Fetch(gctx)
			if err != nil {
				p.Fallback(gen, label)
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Error("Error fetching manifest", zap.String("category", category), zap.Error(err))
				return nil
			}

			files := manifest.Files(category)
			if len(files) == 0 {
				p.Fallback(gen, label)
				return nil
			}
			p.Paint(gen, s.ImagePath(category, files[0]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Debug("Preview loading stopped", zap.Error(err))
	}
}

// LoadHome builds the home page. Preview categories come from configuration;
// when none are configured the manifest's categories are previewed.
func (s *Service) LoadHome(ctx context.Context) models.Home {
	home := models.Home{Title: s.config.SiteName, SiteName: s.config.SiteName}

	entries := s.config.HomeCategories
	if len(entries) == 0 {
		manifest, err := s.fetcher.Fetch(ctx)
		if err != nil {
			s.logger.Error("Error fetching manifest", zap.Error(err))
			return home
		}
		for _, name := range manifest.Categories() {
			entries = append(entries, config.HomeCategory{Name: name})
		}
	}

	placeholders := make([]*models.Placeholder, 0, len(entries))
	for _, e := range entries {
		placeholders = append(placeholders, models.NewPlaceholder(e.Name, ProductURL(e.Name, e.Price, "")))
	}
	s.LoadPreviews(ctx, placeholders)

	home.Previews = make([]models.PlaceholderView, 0, len(placeholders))
	for i, p := range placeholders {
		v := p.View()
		v.Title = FormatCategoryName(entries[i].Name)
		v.PriceText = PriceLabel(entries[i].Price)
		home.Previews = append(home.Previews, v)
	}
	return home
}
