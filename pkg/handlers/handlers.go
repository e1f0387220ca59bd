package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/eknkc/pug"
	"github.com/google/uuid"

	"school-gallery/pkg/config"
	"school-gallery/pkg/models"
	"school-gallery/pkg/services"
)

// Handler serves the gallery pages, images and exports
type Handler struct {
	svc       *services.Service
	viewsDir  string
	publicDir string
	started   time.Time
}

// New creates gallery handlers over a service
func New(svc *services.Service, cfg *config.Config) *Handler {
	return &Handler{
		svc:       svc,
		viewsDir:  cfg.ViewsDir,
		publicDir: cfg.PublicDir,
		started:   time.Now(),
	}
}

// Routes registers every gallery route on a new mux
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServer(http.Dir(h.publicDir)))
	mux.HandleFunc("GET /gallery/{$}", h.CategoriesHandler)
	mux.HandleFunc("GET /gallery/{category}", h.SubcategoriesHandler)
	mux.HandleFunc("GET /gallery/{category}/{subcategory}", h.PhotosHandler)
	mux.HandleFunc("GET /gallery/{category}/{subcategory}/photo/{number}", h.PhotoHandler)
	mux.HandleFunc("GET /gallery/{category}/{subcategory}/download", h.DownloadHandler)
	mux.HandleFunc("GET /images/", h.ImageHandler)
	mux.HandleFunc("GET /placeholder/{file}", h.PlaceholderHandler)
	mux.HandleFunc("GET /feed", h.FeedHandler)
	mux.HandleFunc("GET /health", h.HealthHandler)
	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// CategoriesHandler renders the main categories view
func (h *Handler) CategoriesHandler(w http.ResponseWriter, _ *http.Request) {
	ctrl := h.svc.NewController()
	h.renderPage(w, services.Render(ctrl, services.ExportStatus{Label: services.MsgDownloadAll}))
}

// SubcategoriesHandler renders the subcategories of one category
func (h *Handler) SubcategoriesHandler(w http.ResponseWriter, r *http.Request) {
	ctrl := h.svc.NewController()
	if err := ctrl.EnterSubcategories(r.PathValue("category")); err != nil {
		h.notFound(w, err)
		return
	}
	h.renderPage(w, services.Render(ctrl, services.ExportStatus{Label: services.MsgDownloadAll}))
}

// PhotosHandler renders the photo grid of one subcategory
func (h *Handler) PhotosHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.enterPhotos(w, r)
	if !ok {
		return
	}
	client := ensureClient(w, r)
	status := h.svc.ExportStatus(client, r.PathValue("category"), r.PathValue("subcategory"))
	h.renderPage(w, services.Render(ctrl, status))
}

// PhotoHandler renders the photo grid with the modal open on one photo
func (h *Handler) PhotoHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.enterPhotos(w, r)
	if !ok {
		return
	}

	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil || !ctrl.OpenPhoto(number-1) {
		log.Printf("Photo not found: %s", r.URL.Path)
		http.NotFound(w, r)
		return
	}

	client := ensureClient(w, r)
	status := h.svc.ExportStatus(client, r.PathValue("category"), r.PathValue("subcategory"))
	h.renderPage(w, services.Render(ctrl, status))
}

// DownloadHandler streams every photo of a subcategory as one ZIP. A visitor
// can run one download per folder at a time.
func (h *Handler) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.enterPhotos(w, r)
	if !ok {
		return
	}

	tw := &trackingWriter{ResponseWriter: w}
	_, err := h.svc.Export(r.Context(), clientKey(r), ctrl.Selection(), services.HTTPSink{W: tw})
	if err == nil {
		return
	}
	if tw.wroteHeader {
		log.Printf("Export interrupted after headers were sent: %v", err)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrExportInProgress):
		status = http.StatusConflict
	case errors.Is(err, services.ErrEmptyCollection):
		status = http.StatusNotFound
	}
	http.Error(w, services.UserMessage(err).String(), status)
}

// ImageHandler serves gallery images from the configured image source
func (h *Handler) ImageHandler(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if !strings.HasPrefix(path, "images/gallery/") {
		http.NotFound(w, r)
		return
	}

	data, err := h.svc.Source().Fetch(r.Context(), path)
	if errors.Is(err, services.ErrImageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error fetching image %s: %v", path, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing image %s: %v", path, err)
	}
}

// PlaceholderHandler serves the numbered fallback image
func (h *Handler) PlaceholderHandler(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	number, err := strconv.Atoi(strings.TrimSuffix(file, ".jpg"))
	if err != nil || filepath.Ext(file) != ".jpg" || number < 1 {
		http.NotFound(w, r)
		return
	}

	data, err := h.svc.Placeholder(number)
	if errors.Is(err, services.ErrImageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Placeholder error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing placeholder %d: %v", number, err)
	}
}

// FeedHandler returns the catalog as JSON
func (h *Handler) FeedHandler(w http.ResponseWriter, _ *http.Request) {
	log.Println("Generating Feed")
	writeJSON(w, h.svc.Catalog())
}

// HealthHandler reports that the server is up
func (h *Handler) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":     "OK",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"uptime":     time.Since(h.started).Seconds(),
		"categories": len(h.svc.Catalog().Categories),
	})
}

func (h *Handler) enterPhotos(w http.ResponseWriter, r *http.Request) (*services.Controller, bool) {
	category := r.PathValue("category")
	subcategory := r.PathValue("subcategory")

	// Replay the clicks that lead to this folder
	ctrl := h.svc.NewController()
	if err := ctrl.EnterSubcategories(category); err != nil {
		h.notFound(w, err)
		return nil, false
	}
	if err := ctrl.EnterPhotos(category, subcategory); err != nil {
		h.notFound(w, err)
		return nil, false
	}
	return ctrl, true
}

func (h *Handler) notFound(w http.ResponseWriter, err error) {
	log.Printf("Gallery not found: %v", err)
	http.Error(w, services.UserMessage(err).String(), http.StatusNotFound)
}

// renderPage compiles the template from its contents so VIEWS_DIR may be
// absolute or point outside the working directory
func (h *Handler) renderPage(w http.ResponseWriter, page models.Page) {
	source, err := os.ReadFile(filepath.Join(h.viewsDir, "gallery.pug"))
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		log.Printf("Template error: %v", err)
		return
	}

	template, err := pug.CompileString(string(source), pug.Options{})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		log.Printf("Template error: %v", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := template.Execute(w, page); err != nil {
		log.Printf("Template execution error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	jsonString, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		log.Printf("JSON error: %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(jsonString); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

const clientCookie = "gallery_client"

// clientKey identifies the visitor for export tracking: the gallery cookie
// when present, otherwise the remote host
func clientKey(r *http.Request) string {
	if c, err := r.Cookie(clientCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ensureClient returns the visitor id, issuing a cookie on the first visit
func ensureClient(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(clientCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// trackingWriter records whether a response has been started
type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (t *trackingWriter) WriteHeader(status int) {
	t.wroteHeader = true
	t.ResponseWriter.WriteHeader(status)
}

func (t *trackingWriter) Write(b []byte) (int, error) {
	t.wroteHeader = true
	return t.ResponseWriter.Write(b)
}
