package models

import (
	"html/template"
	"strings"
	"sync"
)

// Generation identifies one load of a container or placeholder. Only the
// latest generation may change what is displayed.
type Generation uint64

// LoadingMessage is shown while a gallery load is in flight
const LoadingMessage = "Loading images..."

// GalleryView is a point-in-time copy of a Container's content
type GalleryView struct {
	Tiles   []Tile
	Message string
	Loading bool
	Error   bool
}

// HasTiles reports whether the view shows any tiles
func (v GalleryView) HasTiles() bool {
	return len(v.Tiles) > 0
}

// Container is the gallery container a page renders. Loads against it are
// tagged with a Generation so a late completion cannot clobber newer content.
type Container struct {
	mu   sync.Mutex
	gen  Generation
	view GalleryView
}

// NewContainer returns an empty container
func NewContainer() *Container {
	return &Container{}
}

// Begin clears the container, shows the loading message and returns the
// generation that the caller must present to publish its result.
func (c *Container) Begin() Generation {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.view = GalleryView{Message: LoadingMessage, Loading: true}
	return c.gen
}

// Fill replaces the content with tiles, in order
func (c *Container) Fill(gen Generation, tiles []Tile) bool {
	cp := make([]Tile, len(tiles))
	copy(cp, tiles)
	return c.publish(gen, GalleryView{Tiles: cp})
}

// Message replaces the content with an informational message
func (c *Container) Message(gen Generation, text string) bool {
	return c.publish(gen, GalleryView{Message: text})
}

// Fail replaces the content with an error message
func (c *Container) Fail(gen Generation, text string) bool {
	return c.publish(gen, GalleryView{Message: text, Error: true})
}

func (c *Container) publish(gen Generation, v GalleryView) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.view = v
	return true
}

// Current returns the latest generation handed out by Begin
func (c *Container) Current() Generation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// View returns a copy of the displayed content
func (c *Container) View() GalleryView {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.view
	v.Tiles = append([]Tile(nil), c.view.Tiles...)
	return v
}

// Tiles returns the tiles currently displayed, in gallery order
func (c *Container) Tiles() []Tile {
	return c.View().Tiles
}

// NeutralBackground is painted behind a preview with no image
const NeutralBackground = "#f5f5f5"

// PlaceholderView is what a home page preview tile renders
type PlaceholderView struct {
	Category           string
	Title              string
	PriceText          string
	Href               string
	BackgroundImage    string
	BackgroundSize     string
	BackgroundPosition string
	BackgroundColor    string
	Label              string
}

// Style returns the inline CSS for the preview background. The image path
// is written as an escaped CSS string.
func (v PlaceholderView) Style() template.CSS {
	if v.BackgroundImage != "" {
		return template.CSS("background-image: url(" + cssString(v.BackgroundImage) + "); background-size: " +
			v.BackgroundSize + "; background-position: " + v.BackgroundPosition + ";")
	}
	if v.BackgroundColor != "" {
		return template.CSS("background-color: " + v.BackgroundColor + ";")
	}
	return ""
}

var cssEscaper = strings.NewReplacer(
	`\`, `\5c `,
	`"`, `\22 `,
	`'`, `\27 `,
	"\n", `\a `,
	"\r", `\d `,
	"<", `\3c `,
	">", `\3e `,
)

// cssString quotes s as a double-quoted CSS string
func cssString(s string) string {
	return `"` + cssEscaper.Replace(s) + `"`
}

// Placeholder is a home page preview tile tagged with a category
type Placeholder struct {
	mu   sync.Mutex
	gen  Generation
	view PlaceholderView
}

// NewPlaceholder returns a placeholder for category linking to href
func NewPlaceholder(category, href string) *Placeholder {
	return &Placeholder{view: PlaceholderView{Category: category, Href: href}}
}

// Category returns the category the placeholder is tagged with
func (p *Placeholder) Category() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view.Category
}

// Begin starts a new load of the placeholder
func (p *Placeholder) Begin() Generation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	return p.gen
}

// Paint shows image as a cover-fit background
func (p *Placeholder) Paint(gen Generation, image string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return false
	}
	p.view.BackgroundImage = image
	p.view.BackgroundSize = "cover"
	p.view.BackgroundPosition = "center"
	p.view.BackgroundColor = ""
	p.view.Label = ""
	return true
}

// Fallback shows the neutral background with label
func (p *Placeholder) Fallback(gen Generation, label string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return false
	}
	p.view.BackgroundImage = ""
	p.view.BackgroundSize = ""
	p.view.BackgroundPosition = ""
	p.view.BackgroundColor = NeutralBackground
	p.view.Label = label
	return true
}

// View returns a copy of what the placeholder displays
func (p *Placeholder) View() PlaceholderView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}
