package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"craft-gallery/pkg/logging"
)

// Router wires every route; static files come from publicDir
func (h *Handlers) Router(publicDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", HealthHandler)

	r.Get("/", h.HomeHandler)
	r.Get("/index.html", h.HomeHandler)
	r.Get("/product", h.ProductHandler)
	r.Get("/product-page.html", h.ProductHandler)
	r.Get("/images.json", h.ManifestHandler)

	r.Route("/api/lightbox", func(r chi.Router) {
		r.Post("/", h.OpenLightboxHandler)
		r.Get("/{session}", h.FrameHandler)
		r.Post("/{session}/next", h.NextHandler)
		r.Post("/{session}/prev", h.PrevHandler)
		r.Post("/{session}/close", h.CloseHandler)
		r.Post("/{session}/key", h.KeyHandler)
		r.Post("/{session}/click", h.ClickHandler)
	})

	r.Handle("/*", http.FileServer(http.Dir(publicDir)))
	return r
}
