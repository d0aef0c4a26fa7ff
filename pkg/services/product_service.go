package services

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"craft-gallery/pkg/lightbox"
	"craft-gallery/pkg/models"
)

// LoadCategoryPage builds the product page for the category and price query
// parameters of u. Without a category no gallery is loaded. An image
// parameter naming a tile opens the lightbox on it.
func (s *Service) LoadCategoryPage(ctx context.Context, u *url.URL) models.ProductPage {
	q := u.Query()
	category := q.Get("category")
	price := q.Get("price")

	page := models.ProductPage{
		Title:    s.config.SiteName,
		SiteName: s.config.SiteName,
	}
	if category == "" {
		return page
	}

	page.Category = category
	page.CategoryTitle = FormatCategoryName(category)
	page.PriceText = PriceLabel(price)
	page.Title = PageTitle(category, s.config.SiteName)

	container := models.NewContainer()
	if err := s.BuildGallery(ctx, container, category); err != nil && !errors.Is(err, ErrMissingCategory) {
		s.logger.Warn("Gallery rendered with error", zap.String("category", category), zap.Error(err))
	}
	page.Gallery = container.View()
	for i := range page.Gallery.Tiles {
		page.Gallery.Tiles[i].Href = ProductURL(category, price, page.Gallery.Tiles[i].ID)
	}

	if image := q.Get("image"); image != "" {
		page.Lightbox = s.lightboxView(page.Gallery.Tiles, category, price, image)
	}
	return page
}

// OpenLightbox loads the tiles of category and opens a lightbox session on id
func (s *Service) OpenLightbox(ctx context.Context, store *lightbox.Store, category, id string) (*lightbox.Session, error) {
	container := models.NewContainer()
	if err := s.BuildGallery(ctx, container, category); err != nil && !errors.Is(err, ErrMissingCategory) {
		return nil, err
	}
	return store.Create(container.Tiles(), id)
}

func (s *Service) lightboxView(tiles []models.Tile, category, price, id string) *models.LightboxView {
	v := lightbox.NewViewer()
	if err := v.Open(tiles, id); err != nil {
		s.logger.Debug("Lightbox tile not in gallery", zap.String("category", category), zap.String("id", id))
		return nil
	}

	cur, _ := v.Current()
	prev, next, _ := v.Neighbours()
	return &models.LightboxView{
		ID:       cur.ID,
		Src:      cur.Src,
		Position: v.Index() + 1,
		Count:    v.Len(),
		NextURL:  ProductURL(category, price, next.ID),
		PrevURL:  ProductURL(category, price, prev.ID),
		CloseURL: ProductURL(category, price, ""),
	}
}
