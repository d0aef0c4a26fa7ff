// Package lightbox implements the image overlay of a product gallery: a
// two-state machine over a snapshot of the gallery tiles, with wraparound
// navigation and keyboard and pointer routing.
package lightbox

import (
	"errors"

	"craft-gallery/pkg/models"
)

// ErrTileNotFound is returned by Open when the tile id is not in the snapshot
var ErrTileNotFound = errors.New("tile not found")

// State of a Viewer
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Keys routed while the viewer is open
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeyEscape     = "Escape"
)

// Target is the element a pointer click landed on
type Target string

const (
	TargetClose   Target = "close"
	TargetOverlay Target = "overlay"
	TargetImage   Target = "image"
	TargetNext    Target = "next"
	TargetPrev    Target = "prev"
)

// Frame is what the overlay displays
type Frame struct {
	State        string `json:"state"`
	ID           string `json:"id,omitempty"`
	Src          string `json:"src,omitempty"`
	Index        int    `json:"index"`
	Count        int    `json:"count"`
	ScrollLocked bool   `json:"scrollLocked"`
}

// Viewer is one lightbox overlay. The zero value is a closed viewer.
// It is not safe for concurrent use; Session serializes access.
type Viewer struct {
	state        State
	tiles        []models.Tile
	index        int
	scrollLocked bool
}

// NewViewer returns a closed viewer
func NewViewer() *Viewer {
	return &Viewer{}
}

// Open snapshots tiles and shows the tile whose id matches. When id is not
// in the snapshot the viewer is left untouched and ErrTileNotFound returned.
func (v *Viewer) Open(tiles []models.Tile, id string) error {
	index := -1
	for i, t := range tiles {
		if t.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrTileNotFound
	}

	v.tiles = append([]models.Tile(nil), tiles...)
	v.index = index
	v.state = Open
	v.scrollLocked = true
	return nil
}

// Close hides the overlay and restores background scroll
func (v *Viewer) Close() {
	v.state = Closed
	v.tiles = nil
	v.index = 0
	v.scrollLocked = false
}

// Next shows the following tile, wrapping to the first
func (v *Viewer) Next() {
	n := len(v.tiles)
	if v.state != Open || n == 0 {
		return
	}
	v.index = (v.index + 1) % n
}

// Previous shows the preceding tile, wrapping to the last
func (v *Viewer) Previous() {
	n := len(v.tiles)
	if v.state != Open || n == 0 {
		return
	}
	v.index = (v.index - 1 + n) % n
}

// HandleKey routes a keyboard key. Keys are ignored while closed; the result
// reports whether the key did anything.
func (v *Viewer) HandleKey(key string) bool {
	if v.state != Open {
		return false
	}
	switch key {
	case KeyArrowRight:
		v.Next()
	case KeyArrowLeft:
		v.Previous()
	case KeyEscape:
		v.Close()
	default:
		return false
	}
	return true
}

// HandleClick routes a pointer click. Only a click on the close control or
// on the bare overlay closes; clicks on the image are ignored.
func (v *Viewer) HandleClick(target Target) bool {
	if v.state != Open {
		return false
	}
	switch target {
	case TargetClose, TargetOverlay:
		v.Close()
	case TargetNext:
		v.Next()
	case TargetPrev:
		v.Previous()
	default:
		return false
	}
	return true
}

// State returns the current state
func (v *Viewer) State() State {
	return v.state
}

// Index returns the index of the displayed tile in the snapshot
func (v *Viewer) Index() int {
	return v.index
}

// Len returns the size of the snapshot
func (v *Viewer) Len() int {
	return len(v.tiles)
}

// Current returns the displayed tile
func (v *Viewer) Current() (models.Tile, bool) {
	if v.state != Open || len(v.tiles) == 0 {
		return models.Tile{}, false
	}
	return v.tiles[v.index], true
}

// ScrollLocked reports whether background scroll is disabled
func (v *Viewer) ScrollLocked() bool {
	return v.scrollLocked
}

// Frame returns what the overlay displays
func (v *Viewer) Frame() Frame {
	f := Frame{State: v.state.String(), Count: len(v.tiles), ScrollLocked: v.scrollLocked}
	if t, ok := v.Current(); ok {
		f.ID = t.ID
		f.Src = t.Src
		f.Index = v.index
	}
	return f
}

// Neighbours returns the tiles before and after the displayed one
func (v *Viewer) Neighbours() (prev, next models.Tile, ok bool) {
	n := len(v.tiles)
	if v.state != Open || n == 0 {
		return models.Tile{}, models.Tile{}, false
	}
	return v.tiles[(v.index-1+n)%n], v.tiles[(v.index+1)%n], true
}
