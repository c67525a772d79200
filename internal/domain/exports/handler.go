package exports

import (
	"net/http"
	"strconv"

	"herptracker/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/export", exportHandler(svc))
}

// @Summary Exportar datos
// @Description ZIP con un CSV por tabla (reptiles y las seis categorías de registros). Incluye todas las filas.
// @Tags export
// @Produce application/zip
// @Success 200 {file} binary
// @Failure 500 {object} map[string]string
// @Router /export [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.Build(r.Context())
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+b.Filename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(b.Data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b.Data)
	}
}
