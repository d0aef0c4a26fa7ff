package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"craft-gallery/pkg/config"
	"craft-gallery/pkg/models"
)

// PlaceholderImageURL replaces a tile image that fails to load
const PlaceholderImageURL = "https://via.placeholder.com/300x300?text=Image%20Not%20Found"

// Service handles operations related to the manifest, galleries and previews
type Service struct {
	config  *config.Config
	fetcher Fetcher
	logger  *zap.Logger
}

// NewService creates a Service reading the manifest through fetcher
func NewService(cfg *config.Config, fetcher Fetcher, logger *zap.Logger) *Service {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{config: cfg, fetcher: fetcher, logger: logger}
}

// Config returns the configuration the service was built with
func (s *Service) Config() *config.Config {
	return s.config
}

// FetchManifest performs one fresh manifest read
func (s *Service) FetchManifest(ctx context.Context) (models.Manifest, error) {
	return s.fetcher.Fetch(ctx)
}

// ImagePath resolves a file of category under the configured image base
func (s *Service) ImagePath(category, file string) string {
	base := strings.TrimSuffix(s.config.ImageBase, "/")
	if base == "" {
		return category + "/" + file
	}
	return base + "/" + category + "/" + file
}

// BuildTiles creates one tile per file, keeping manifest order
func (s *Service) BuildTiles(category string, files []string) []models.Tile {
	tiles := make([]models.Tile, 0, len(files))
	for i, file := range files {
		tiles = append(tiles, models.Tile{
			ID:          fmt.Sprintf("image-%d", i),
			Index:       i,
			Category:    category,
			Src:         s.ImagePath(category, file),
			FallbackSrc: PlaceholderImageURL,
		})
	}
	return tiles
}

// BuildGallery clears c, shows the loading message, fetches the manifest and
// fills c with the tiles of category. Failures are rendered into c; the
// returned error only describes what happened.
func (s *Service) BuildGallery(ctx context.Context, c *models.Container, category string) error {
	gen := c.Begin()

	manifest, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Error("Error fetching manifest", zap.String("category", category), zap.Error(err))
		s.publish(c.Fail(gen, "Error loading images: "+err.Error()), category)
		return err
	}

	files := manifest.Files(category)
	if len(files) == 0 {
		s.publish(c.Message(gen, fmt.Sprintf("No images found for %s.", FormatCategoryName(category))), category)
		return fmt.Errorf("%w: %s", ErrMissingCategory, category)
	}

	s.publish(c.Fill(gen, s.BuildTiles(category, files)), category)
	return nil
}

func (s *Service) publish(applied bool, category string) {
	if !applied {
		s.logger.Debug("Discarding stale gallery load", zap.String("category", category))
	}
}

// GetCategories returns every manifest category with its images, sorted by name
func (s *Service) GetCategories(ctx context.Context) ([]models.CategorySummary, error) {
	manifest, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]models.CategorySummary, 0, len(manifest))
	for _, name := range manifest.Categories() {
		categories = append(categories, models.CategorySummary{
			Name:   name,
			Title:  FormatCategoryName(name),
			Images: manifest.Files(name),
		})
	}
	return categories, nil
}

// GetCategory returns one category, or ErrMissingCategory when it has no images
func (s *Service) GetCategory(ctx context.Context, name string) (models.CategorySummary, error) {
	manifest, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return models.CategorySummary{}, err
	}
	files := manifest.Files(name)
	if len(files) == 0 {
		return models.CategorySummary{}, fmt.Errorf("%w: %s", ErrMissingCategory, name)
	}
	return models.CategorySummary{Name: name, Title: FormatCategoryName(name), Images: files}, nil
}
