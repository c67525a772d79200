// Package web sirve las páginas HTML (dashboard, detalle, formularios) y
// las imágenes subidas.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"herptracker/internal/adapters/blob/core"
	"herptracker/internal/domain/records"
	"herptracker/internal/domain/reptiles"
	"herptracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ImageReader lee imágenes guardadas (core.Store lo cumple).
type ImageReader interface {
	Get(ctx context.Context, key string) (core.Info, io.ReadCloser, error)
}

type Handler struct {
	reptiles     *reptiles.Service
	images       ImageReader
	log          logger.Logger
	recordsLimit int
	pages        map[string]*template.Template
}

func New(svc *reptiles.Service, images ImageReader, log logger.Logger, recordsLimit int) (*Handler, error) {
	if log == nil {
		log = logger.Nop()
	}
	if recordsLimit <= 0 {
		recordsLimit = 50
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"index", "reptile", "form"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	return &Handler{
		reptiles:     svc,
		images:       images,
		log:          log,
		recordsLimit: recordsLimit,
		pages:        pages,
	}, nil
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.index)
	r.Get("/reptile/new", h.newForm)
	r.Get("/reptile/{id}", h.detail)
	r.Get("/reptile/{id}/edit", h.editForm)
	r.Get("/uploads/{name}", h.upload)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

var funcs = template.FuncMap{
	"imageURL": func(key *string) string {
		if key == nil {
			return ""
		}
		return reptiles.ImageURL(*key)
	},
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"datetime": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04") },
	"days": func(n *int) string {
		switch {
		case n == nil:
			return "-"
		case *n == 1:
			return "1 day"
		default:
			return strconv.Itoa(*n) + " days"
		}
	},
	"float": func(f *float64) string {
		if f == nil {
			return "-"
		}
		return strconv.FormatFloat(*f, 'f', -1, 64)
	},
}

type dashboardRow struct {
	Reptile reptiles.Reptile
	Status  reptiles.Status
}

type recordSection struct {
	Category records.Category
	Title    string
	Records  []records.Record
}

type formPage struct {
	Mode    string // create | edit
	Reptile *reptiles.Reptile
	Gender  string
	Genders []string
	Accept  string
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	items, err := h.reptiles.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	rows := make([]dashboardRow, 0, len(items))
	for _, it := range items {
		st, err := h.reptiles.Status(r.Context(), it)
		if err != nil {
			h.fail(w, err)
			return
		}
		rows = append(rows, dashboardRow{Reptile: it, Status: st})
	}
	h.render(w, "index", map[string]any{"Rows": rows})
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.lookup(w, r)
	if !ok {
		return
	}

	st, err := h.reptiles.Status(r.Context(), rep)
	if err != nil {
		h.fail(w, err)
		return
	}
	byCat, err := h.reptiles.Recent(r.Context(), rep.ID, h.recordsLimit)
	if err != nil {
		h.fail(w, err)
		return
	}

	sections := make([]recordSection, 0, len(records.Categories))
	for _, c := range records.Categories {
		title := string(c)
		sections = append(sections, recordSection{
			Category: c,
			Title:    strings.ToUpper(title[:1]) + title[1:],
			Records:  byCat[c],
		})
	}

	h.render(w, "reptile", map[string]any{
		"Reptile":  rep,
		"Status":   st,
		"Sections": sections,
	})
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "form", newFormPage(nil))
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.render(w, "form", newFormPage(&rep))
}

// upload sirve /uploads/{name} desde el image store.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	info, body, err := h.images.Get(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrInvalidKey) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	defer body.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, body); err != nil {
		h.log.Warn("upload stream interrupted", map[string]any{"key": info.Key, "error": err.Error()})
	}
}

func newFormPage(rep *reptiles.Reptile) formPage {
	p := formPage{
		Mode:    "create",
		Reptile: rep,
		Genders: []string{string(reptiles.GenderMale), string(reptiles.GenderFemale), string(reptiles.GenderUnknown)},
	}
	for i, ext := range reptiles.AllowedImageExtensions {
		if i > 0 {
			p.Accept += ","
		}
		p.Accept += "." + ext
	}
	if rep != nil {
		p.Mode = "edit"
		if rep.Gender != nil {
			p.Gender = *rep.Gender
		}
	}
	return p
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (reptiles.Reptile, bool) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return reptiles.Reptile{}, false
	}
	rep, err := h.reptiles.GetByID(r.Context(), id)
	if errors.Is(err, reptiles.ErrNotFound) {
		http.NotFound(w, r)
		return reptiles.Reptile{}, false
	}
	if err != nil {
		h.fail(w, err)
		return reptiles.Reptile{}, false
	}
	return rep, true
}

// render ejecuta a un buffer para no mandar HTML a medias si falla.
// parseID: ids válidos son enteros positivos; el resto es 404.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.log.Error("page render failed", map[string]any{"error": err.Error()})
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
