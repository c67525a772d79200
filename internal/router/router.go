package router

import (
	"database/sql"
	"net/http"
	"time"

	blobmem "herptracker/internal/adapters/blob/memory"
	mem "herptracker/internal/adapters/storage/memory"
	"herptracker/internal/adapters/storage/sqlstore"
	"herptracker/internal/domain/exports"
	"herptracker/internal/domain/records"
	"herptracker/internal/domain/reptiles"
	"herptracker/internal/middleware"
	"herptracker/internal/platform/logger"
	"herptracker/internal/platform/metrics"
	"herptracker/internal/web"

	_ "herptracker/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// ImageStore es lo que el router necesita del almacenamiento de imágenes
// (escritura para reptiles, lectura para /uploads).
type ImageStore interface {
	reptiles.ImageStore
	web.ImageReader
}

type Options struct {
	// Opcional: si viene, usa SQL (Dialect indica el motor). Si no, in-memory.
	DB      *sql.DB
	Dialect sqlstore.Dialect

	Images  ImageStore       // nil = memoria
	Logger  logger.Logger    // nil = nop
	Metrics *metrics.Metrics // nil = sin /metrics

	Location       *time.Location // TIMEZONE; nil = UTC
	MaxUploadBytes int64
	RecordsLimit   int

	Now func() time.Time // tests
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 16 << 20
	}
	images := opts.Images
	if images == nil {
		images = blobmem.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		reptileRepo reptiles.Repository
		recordRepo  records.Repository
	)
	if opts.DB != nil {
		reptileRepo = sqlstore.NewReptilesRepo(opts.DB, opts.Dialect)
		recordRepo = sqlstore.NewRecordsRepo(opts.DB, opts.Dialect)
	} else {
		store := mem.NewStore()
		reptileRepo = store.Reptiles()
		recordRepo = store.Records()
	}

	// Services por módulo
	recordsSvc := records.NewService(recordRepo).WithClock(opts.Now)
	if opts.Metrics != nil {
		recordsSvc.WithObserver(opts.Metrics)
	}

	reptileOpts := []reptiles.Option{
		reptiles.WithLogger(log.With(map[string]any{"component": "reptiles"})),
		reptiles.WithLocation(loc),
	}
	if opts.Now != nil {
		reptileOpts = append(reptileOpts, reptiles.WithClock(opts.Now))
	}
	reptilesSvc := reptiles.NewService(reptileRepo, recordsSvc, images, reptileOpts...)

	exportsSvc := exports.NewService(reptileRepo, recordsSvc).WithClock(opts.Now)
	if opts.Metrics != nil {
		exportsSvc.WithObserver(opts.Metrics)
	}

	pages, err := web.New(reptilesSvc, images, log.With(map[string]any{"component": "web"}), opts.RecordsLimit)
	if err != nil {
		return nil, err
	}

	// Rutas por módulo
	web.RegisterRoutes(r, pages)
	exports.RegisterRoutes(r, exportsSvc)
	reptiles.RegisterRoutes(r, reptilesSvc, reptiles.HandlerOptions{
		MaxUploadBytes: opts.MaxUploadBytes,
		RecordsLimit:   opts.RecordsLimit,
	})
	records.RegisterRoutes(r, recordsSvc, records.HandlerOptions{
		Location:       loc,
		MaxUploadBytes: opts.MaxUploadBytes,
	})

	return r, nil
}
