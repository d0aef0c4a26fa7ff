package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/eknkc/pug"
	"go.uber.org/zap"

	"craft-gallery/pkg/lightbox"
	"craft-gallery/pkg/services"
)

// Renderer writes a named page template with data
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// PugRenderer compiles views/<name>.pug on every render so template edits
// show up without a restart. Dir may be relative, parent-relative or absolute.
type PugRenderer struct {
	Dir string
}

// Render compiles and executes the template
func (p PugRenderer) Render(w io.Writer, name string, data any) error {
	template, err := pug.CompileFile(name+".pug", pug.Options{Dir: viewDir(p.Dir)})
	if err != nil {
		return err
	}
	return template.Execute(w, data)
}

// viewDir opens template files below a directory. Names are cleaned as if
// rooted so includes cannot climb out of it.
type viewDir string

func (d viewDir) Open(name string) (io.Reader, error) {
	data, err := os.ReadFile(filepath.Join(string(d), filepath.Clean("/"+name)))
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Handlers serves the gallery pages and the lightbox API
type Handlers struct {
	svc      *services.Service
	sessions *lightbox.Store
	renderer Renderer
	logger   *zap.Logger
}

// New creates the handlers
func New(svc *services.Service, sessions *lightbox.Store, renderer Renderer, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{svc: svc, sessions: sessions, renderer: renderer, logger: logger}
}

// HomeHandler handles requests for the home page
func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Generating Home Page")
	h.render(w, "index", h.svc.LoadHome(r.Context()))
}

// ProductHandler handles requests for a category's product page
func (h *Handlers) ProductHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Generating Product Page", zap.String("query", r.URL.RawQuery))
	h.render(w, "product", h.svc.LoadCategoryPage(r.Context(), r.URL))
}

// ManifestHandler serves a freshly fetched manifest as JSON
func (h *Handlers) ManifestHandler(w http.ResponseWriter, r *http.Request) {
	manifest, err := h.svc.FetchManifest(r.Context())
	if err != nil {
		h.logger.Error("Error fetching manifest", zap.Error(err))
		http.Error(w, "manifest unavailable", http.StatusBadGateway)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, manifest)
}

// HealthHandler reports liveness
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, data); err != nil {
		h.logger.Error("Template error", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
