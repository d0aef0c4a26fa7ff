package models

import "sort"

// Manifest maps a category name to the ordered file names of its images
type Manifest map[string][]string

// Files returns the file names listed for category, nil when absent
func (m Manifest) Files(category string) []string {
	return m[category]
}

// Categories returns the category names in sorted order
func (m Manifest) Categories() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tile represents one displayed gallery image
type Tile struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Category    string `json:"category"`
	Src         string `json:"src"`
	FallbackSrc string `json:"fallbackSrc"`
	// Href opens the lightbox on this tile
	Href        string `json:"href,omitempty"`
}

// CategorySummary is a category with its image count, used by the CLI listings
type CategorySummary struct {
	Name   string   `json:"name"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

// Home represents the home page data
type Home struct {
	Title    string
	SiteName string
	Previews []PlaceholderView
}

// ProductPage represents the product page data
type ProductPage struct {
	Title         string
	SiteName      string
	Category      string
	CategoryTitle string
	PriceText     string
	Gallery       GalleryView
	Lightbox      *LightboxView
}

// BodyClass disables background scroll while the lightbox is open
func (p ProductPage) BodyClass() string {
	if p.Lightbox != nil {
		return "no-scroll"
	}
	return ""
}

// LightboxView is the overlay as rendered on a product page deep link
type LightboxView struct {
	ID       string
	Src      string
	Position int
	Count    int
	NextURL  string
	PrevURL  string
	CloseURL string
}
