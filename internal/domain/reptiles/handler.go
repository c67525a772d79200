package reptiles

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"herptracker/internal/domain/records"
	"herptracker/internal/platform/httpform"
	"herptracker/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

type HandlerOptions struct {
	MaxUploadBytes int64
	RecordsLimit   int // máximo por categoría en /records
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	if opts.RecordsLimit <= 0 {
		opts.RecordsLimit = 50
	}

	// rutas planas: records cuelga POST /api/reptile/{id}/{category} del mismo prefijo
	r.Post("/api/reptile", createReptileHandler(svc, opts))
	r.Get("/api/reptile", listReptilesHandler(svc))

	r.Get("/api/reptile/{id}", getReptileHandler(svc))
	r.Put("/api/reptile/{id}", updateReptileHandler(svc, opts))
	r.Delete("/api/reptile/{id}", deleteReptileHandler(svc))

	r.Get("/api/reptile/{id}/records", listRecordsHandler(svc, opts.RecordsLimit))
}

type reptileResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Mutation    *string   `json:"mutation"`
	Gender      *string   `json:"gender"`
	DateOfBirth *string   `json:"date_of_birth"` // YYYY-MM-DD
	ImagePath   *string   `json:"image_path"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Estado derivado, calculado en cada lectura
	DaysSinceFeeding    *int           `json:"days_since_feeding"`
	DaysSinceShedding   *int           `json:"days_since_shedding"`
	DaysSinceDefecation *int           `json:"days_since_defecation"`
	DaysSinceFullClean  *int           `json:"days_since_full_clean"`
	AgeDays             *int           `json:"age_days"`
	LatestMeasurement   map[string]any `json:"latest_measurement"`
}

// @Summary Crear reptil
// @Description Alta de un reptil. name y species son obligatorios; la imagen es opcional (png, jpg, jpeg, gif, webp).
// @Tags reptiles
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Nombre"
// @Param species formData string true "Especie"
// @Param mutation formData string false "Mutación / morph"
// @Param gender formData string false "Sexo"
// @Param date_of_birth formData string false "YYYY-MM-DD"
// @Param image formData file false "Foto"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string "name and species are required"
// @Failure 413 {object} map[string]string "request body too large"
// @Failure 500 {object} map[string]string
// @Router /api/reptile [post]
func createReptileHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := httpform.Parse(w, r, opts.MaxUploadBytes); err != nil {
			writeFormError(w, err)
			return
		}

		name, _ := httpform.Value(r, "name")
		species, _ := httpform.Value(r, "species")
		in := CreateInput{Name: name, Species: species}

		if v, ok := httpform.Value(r, "mutation"); ok {
			in.Mutation = &v
		}
		if v, ok := httpform.Value(r, "gender"); ok {
			in.Gender = &v
		}
		if v, _ := httpform.Value(r, "date_of_birth"); v != "" {
			d, err := httpform.Date(v)
			if err != nil {
				httpjson.WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			in.DateOfBirth = &d
		}

		up, closeFn, err := uploadFromForm(r)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid image upload")
			return
		}
		defer closeFn()
		in.Image = up

		created, err := svc.Create(r.Context(), in)
		if err != nil {
			httpjson.WriteError(w, statusFor(err), err.Error())
			return
		}

		resp, err := svc.response(r.Context(), created)
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		httpjson.WriteSuccess(w, http.StatusCreated, "reptile", resp)
	}
}

// @Summary Listar reptiles
// @Description Lista por nombre ascendente con su estado derivado.
// @Tags reptiles
// @Produce json
// @Success 200 {array} reptileResponse
// @Router /api/reptile [get]
func listReptilesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]reptileResponse, 0, len(items))
		for _, it := range items {
			resp, err := svc.response(r.Context(), it)
			if err != nil {
				httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
				return
			}
			out = append(out, resp)
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

// @Summary Obtener reptil
// @Description Incluye estado derivado: días desde la última alimentación, muda, defecación y limpieza completa, edad y última medición.
// @Tags reptiles
// @Produce json
// @Param id path int true "ID del reptil"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string "reptile not found"
// @Router /api/reptile/{id} [get]
func getReptileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "id"))
		if !ok {
			httpjson.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		rep, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpjson.WriteError(w, statusFor(err), err.Error())
			return
		}
		resp, err := svc.response(r.Context(), rep)
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		httpjson.WriteSuccess(w, http.StatusOK, "reptile", resp)
	}
}

// @Summary Actualizar reptil
// @Description Actualización parcial: solo cambian los campos enviados. mutation/gender vacíos limpian el valor; date_of_birth vacío se ignora. Una imagen nueva reemplaza (y borra) la anterior.
// @Tags reptiles
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID del reptil"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "reptile not found"
// @Router /api/reptile/{id} [put]
func updateReptileHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "id"))
		if !ok {
			httpjson.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		if err := httpform.Parse(w, r, opts.MaxUploadBytes); err != nil {
			writeFormError(w, err)
			return
		}

		var in UpdateInput
		for key, dst := range map[string]**string{
			"name":     &in.Name,
			"species":  &in.Species,
			"mutation": &in.Mutation,
			"gender":   &in.Gender,
		} {
			if v, ok := httpform.Value(r, key); ok {
				*dst = &v
			}
		}
		if v, _ := httpform.Value(r, "date_of_birth"); v != "" {
			d, err := httpform.Date(v)
			if err != nil {
				httpjson.WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			in.DateOfBirth = &d
		}

		up, closeFn, err := uploadFromForm(r)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid image upload")
			return
		}
		defer closeFn()
		in.Image = up

		updated, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpjson.WriteError(w, statusFor(err), err.Error())
			return
		}
		resp, err := svc.response(r.Context(), updated)
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		httpjson.WriteSuccess(w, http.StatusOK, "reptile", resp)
	}
}

// @Summary Eliminar reptil
// @Description Borra el reptil, todos sus registros y su imagen.
// @Tags reptiles
// @Produce json
// @Param id path int true "ID del reptil"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "reptile not found"
// @Router /api/reptile/{id} [delete]
func deleteReptileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "id"))
		if !ok {
			httpjson.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpjson.WriteError(w, statusFor(err), err.Error())
			return
		}
		httpjson.WriteSuccess(w, http.StatusOK, "", nil)
	}
}

// @Summary Registros recientes
// @Description Hasta N registros por categoría (default 50), más recientes primero.
// @Tags reptiles
// @Produce json
// @Param id path int true "ID del reptil"
// @Success 200 {object} map[string][]map[string]any
// @Failure 404 {object} map[string]string "reptile not found"
// @Router /api/reptile/{id}/records [get]
func listRecordsHandler(svc *Service, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "id"))
		if !ok {
			httpjson.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		byCat, err := svc.Recent(r.Context(), id, limit)
		if err != nil {
			httpjson.WriteError(w, statusFor(err), err.Error())
			return
		}

		out := make(map[string][]map[string]any, len(records.Categories))
		for _, c := range records.Categories {
			items := make([]map[string]any, 0, len(byCat[c]))
			for _, rec := range byCat[c] {
				items = append(items, records.ToResponse(rec))
			}
			out[c.Plural()] = items
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

// response arma el JSON con el estado derivado.
func (s *Service) response(ctx context.Context, rep Reptile) (reptileResponse, error) {
	st, err := s.Status(ctx, rep)
	if err != nil {
		return reptileResponse{}, err
	}
	return toReptileResponse(rep, st), nil
}

func toReptileResponse(rep Reptile, st Status) reptileResponse {
	out := reptileResponse{
		ID:                  rep.ID,
		Name:                rep.Name,
		Species:             rep.Species,
		Mutation:            rep.Mutation,
		Gender:              rep.Gender,
		ImagePath:           rep.ImagePath,
		CreatedAt:           rep.CreatedAt.UTC(),
		UpdatedAt:           rep.UpdatedAt.UTC(),
		DaysSinceFeeding:    st.DaysSinceFeeding,
		DaysSinceShedding:   st.DaysSinceShedding,
		DaysSinceDefecation: st.DaysSinceDefecation,
		DaysSinceFullClean:  st.DaysSinceFullClean,
		AgeDays:             st.AgeDays,
	}
	if rep.DateOfBirth != nil {
		d := rep.DateOfBirth.Format(httpform.DateLayout)
		out.DateOfBirth = &d
	}
	if rep.ImagePath != nil {
		u := ImageURL(*rep.ImagePath)
		out.ImageURL = &u
	}
	if st.LatestMeasurement != nil {
		out.LatestMeasurement = records.ToResponse(*st.LatestMeasurement)
	}
	return out
}

// ImageURL es la ruta pública de una imagen guardada.
func ImageURL(key string) string { return "/uploads/" + key }

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func uploadFromForm(r *http.Request) (*Upload, func(), error) {
	f, h, err := httpform.File(r, "image")
	if err != nil {
		return nil, func() {}, err
	}
	if f == nil {
		return nil, func() {}, nil
	}
	up := &Upload{Filename: h.Filename, ContentType: h.Header.Get("Content-Type"), Body: f}
	return up, func() { _ = f.Close() }, nil
}

func writeFormError(w http.ResponseWriter, err error) {
	if httpform.TooLarge(err) {
		httpjson.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	httpjson.WriteError(w, http.StatusBadRequest, "invalid form body")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, httpform.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
