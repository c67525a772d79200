package records

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"herptracker/internal/platform/httpform"
	"herptracker/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

type HandlerOptions struct {
	Location       *time.Location // para interpretar recorded_at
	MaxUploadBytes int64
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	r.Post("/api/reptile/{id}/{category}", createRecordHandler(svc, opts))

	// /api/reptile/... es estático y tiene prioridad sobre {category}
	r.Get("/api/{category}/{recordID}", getRecordHandler(svc))
	r.Put("/api/{category}/{recordID}", updateRecordHandler(svc, opts))
	r.Delete("/api/{category}/{recordID}", deleteRecordHandler(svc))
}

// @Summary Crear registro de cuidado
// @Description Crea un registro (feeding, shedding, measurement, defecation, breeding, cleaning) para el reptil. recorded_at es opcional (YYYY-MM-DDTHH:MM); si falta se usa la hora actual.
// @Tags records
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID del reptil"
// @Param category path string true "Categoría" Enums(feeding, shedding, measurement, defecation, breeding, cleaning)
// @Param recorded_at formData string false "YYYY-MM-DDTHH:MM"
// @Param notes formData string false "Notas"
// @Param food_type formData string false "Solo feeding"
// @Param complete formData bool false "Solo shedding (default true)"
// @Param length_cm formData number false "Solo measurement"
// @Param weight_g formData number false "Solo measurement"
// @Param cleaning_type formData string false "Solo cleaning (full|spot, default spot)"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string "fecha o número inválido"
// @Failure 404 {object} map[string]string "reptile not found"
// @Router /api/reptile/{id}/{category} [post]
func createRecordHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := ParseCategory(chi.URLParam(r, "category"))
		if !ok {
			httpjson.WriteError(w, http.StatusNotFound, "unknown record category")
			return
		}
		reptileID, ok := parseID(chi.URLParam(r, "id"))
		if !ok {
			httpjson.WriteError(w, http.StatusNotFound, ErrReptileNotFound.Error())
			return
		}

		if err := httpform.Parse(w, r, opts.MaxUploadBytes); err != nil {
			writeFormError(w, err)
			return
		}

		in, err := createInputFromForm(r, c, opts.Location)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := svc.Create(r.Context(), c, reptileID, in)
		if err != nil {
			httpjson.WriteError(w, statusFor(err), err.Error())
			return
		}

		httpjson.WriteSuccess(w, http.StatusCreated, string(c), ToResponse(rec))
	}
}

// @Summary Obtener registro
// @Tags records
// @Produce json
// @Param category path string true "Categoría"
// @Param recordID path int true "ID del registro"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string "record not found"
// @Router /api/{category}/{recordID} [get]
func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, id, ok := recordRef(w, r)
		if !ok {
			return
		}

		rec, err := svc.GetByID(r.Context(), c, id)
		if err != nil {
			httpjson.WriteError(w, statusFor(err), err.Error())
			return
		}
		httpjson.WriteSuccess(w, http.StatusOK, string(c), ToResponse(rec))
	}
}

// @Summary Actualizar registro
// @Description Actualización parcial: solo cambian los campos enviados. recorded_at y cleaning_type vacíos se ignoran; length_cm/weight_g vacíos limpian el valor.
// @Tags records
// @Accept multipart/form-data
// @Produce json
// @Param category path string true "Categoría"
// @Param recordID path int true "ID del registro"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "record not found"
// @Router /api/{category}/{recordID} [put]
func updateRecordHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, id, ok := recordRef(w, r)
		if !ok {
			return
		}

		if err := httpform.Parse(w, r, opts.MaxUploadBytes); err != nil {
			writeFormError(w, err)
			return
		}

		in, err := updateInputFromForm(r, c, opts.Location)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := svc.Update(r.Context(), c, id, in)
		if err != nil {
			httpjson.WriteError(w, statusFor(err), err.Error())
			return
		}
		httpjson.WriteSuccess(w, http.StatusOK, string(c), ToResponse(rec))
	}
}

// @Summary Eliminar registro
// @Tags records
// @Produce json
// @Param category path string true "Categoría"
// @Param recordID path int true "ID del registro"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "record not found"
// @Router /api/{category}/{recordID} [delete]
func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, id, ok := recordRef(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), c, id); err != nil {
			httpjson.WriteError(w, statusFor(err), err.Error())
			return
		}
		httpjson.WriteSuccess(w, http.StatusOK, "", nil)
	}
}

func recordRef(w http.ResponseWriter, r *http.Request) (Category, int64, bool) {
	c, ok := ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		httpjson.WriteError(w, http.StatusNotFound, "unknown record category")
		return "", 0, false
	}
	id, ok := parseID(chi.URLParam(r, "recordID"))
	if !ok {
		httpjson.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
		return "", 0, false
	}
	return c, id, true
}

func createInputFromForm(r *http.Request, c Category, loc *time.Location) (CreateInput, error) {
	var in CreateInput

	if v, _ := httpform.Value(r, "recorded_at"); v != "" {
		t, err := httpform.DateTime(v, loc)
		if err != nil {
			return CreateInput{}, err
		}
		in.RecordedAt = &t
	}
	if v, ok := httpform.Value(r, "notes"); ok {
		in.Notes = &v
	}

	switch c {
	case CategoryFeeding:
		if v, ok := httpform.Value(r, "food_type"); ok {
			in.FoodType = &v
		}
	case CategoryShedding:
		if v, ok := httpform.Value(r, "complete"); ok {
			b := httpform.Bool(v)
			in.Complete = &b
		}
	case CategoryMeasurement:
		var err error
		v, _ := httpform.Value(r, "length_cm")
		if in.LengthCM, err = httpform.Float("length_cm", v); err != nil {
			return CreateInput{}, err
		}
		v, _ = httpform.Value(r, "weight_g")
		if in.WeightG, err = httpform.Float("weight_g", v); err != nil {
			return CreateInput{}, err
		}
	case CategoryCleaning:
		if v, _ := httpform.Value(r, "cleaning_type"); v != "" {
			in.CleaningType = CleaningType(strings.ToLower(v))
		}
	}
	return in, nil
}

func updateInputFromForm(r *http.Request, c Category, loc *time.Location) (UpdateInput, error) {
	var in UpdateInput

	if v, _ := httpform.Value(r, "recorded_at"); v != "" {
		t, err := httpform.DateTime(v, loc)
		if err != nil {
			return UpdateInput{}, err
		}
		in.RecordedAt = &t
	}
	if v, ok := httpform.Value(r, "notes"); ok {
		in.Notes = &v
	}

	switch c {
	case CategoryFeeding:
		if v, ok := httpform.Value(r, "food_type"); ok {
			in.FoodType = &v
		}
	case CategoryShedding:
		if v, ok := httpform.Value(r, "complete"); ok {
			b := httpform.Bool(v)
			in.Complete = &b
		}
	case CategoryMeasurement:
		for _, f := range []struct {
			name  string
			patch *FloatPatch
		}{{"length_cm", &in.LengthCM}, {"weight_g", &in.WeightG}} {
			v, ok := httpform.Value(r, f.name)
			if !ok {
				continue
			}
			n, err := httpform.Float(f.name, v)
			if err != nil {
				return UpdateInput{}, err
			}
			*f.patch = FloatPatch{Present: true, Value: n}
		}
	case CategoryCleaning:
		if v, _ := httpform.Value(r, "cleaning_type"); v != "" {
			ct := CleaningType(strings.ToLower(v))
			in.CleaningType = &ct
		}
	}
	return in, nil
}

// ToResponse arma el JSON de un registro con las claves de su categoría.
func ToResponse(rec Record) map[string]any {
	out := map[string]any{
		"id":          rec.ID,
		"reptile_id":  rec.ReptileID,
		"recorded_at": rec.RecordedAt.UTC(),
		"notes":       rec.Notes,
	}
	switch rec.Category {
	case CategoryFeeding:
		out["food_type"] = rec.FoodType
	case CategoryShedding:
		out["complete"] = rec.Complete
	case CategoryMeasurement:
		out["length_cm"] = rec.LengthCM
		out["weight_g"] = rec.WeightG
	case CategoryCleaning:
		out["cleaning_type"] = rec.CleaningType
	}
	return out
}

// parseID acepta ids enteros positivos.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
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
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrReptileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
