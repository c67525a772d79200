package reptiles

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"herptracker/internal/domain/records"
	"herptracker/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo    Repository
	records RecordLister
	images  ImageStore
	log     logger.Logger

	now    func() time.Time
	loc    *time.Location // para "hoy" en AgeDays
	newKey func(ext string) string
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, recs RecordLister, images ImageStore, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		records: recs,
		images:  images,
		log:     logger.Nop(),
		now:     time.Now,
		loc:     time.UTC,
		newKey: func(ext string) string {
			id := uuid.New()
			return hex.EncodeToString(id[:]) + "." + ext
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload es una imagen recibida del cliente.
type Upload struct {
	Filename    string // solo se usa la extensión
	ContentType string
	Body        io.Reader
}

type CreateInput struct {
	Name        string
	Species     string
	Mutation    *string
	Gender      *string
	DateOfBirth *time.Time
	Image       *Upload
}

// UpdateInput: nil = no tocar. Mutation/Gender vacíos limpian el valor.
// Name/Species, si vienen, no pueden quedar vacíos.
type UpdateInput struct {
	Name        *string
	Species     *string
	Mutation    *string
	Gender      *string
	DateOfBirth *time.Time
	Image       *Upload
}

func (s *Service) Create(ctx context.Context, in CreateInput) (r Reptile, err error) {
	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	if name == "" || species == "" {
		return Reptile{}, fmt.Errorf("%w: name and species are required", ErrInvalidInput)
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	r = Reptile{
		Name:        name,
		Species:     species,
		Mutation:    trimmedOrNil(in.Mutation),
		Gender:      trimmedOrNil(in.Gender),
		DateOfBirth: civilDatePtr(in.DateOfBirth),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.Image != nil {
		key, saveErr := s.saveImage(ctx, in.Image)
		if saveErr != nil {
			return Reptile{}, saveErr
		}
		// si el insert falla la imagen queda huérfana: se borra
		defer func() {
			if err != nil {
				s.removeImage(ctx, key)
			}
		}()
		r.ImagePath = &key
	}

	if err = s.repo.Create(ctx, &r); err != nil {
		return Reptile{}, err
	}
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Reptile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Reptile, error) {
	return s.repo.List(ctx)
}

// Update aplica solo los campos presentes y refresca UpdatedAt.
// Con imagen nueva: se guarda primero, luego se commitea la fila; la
// imagen anterior se borra (best effort) solo si el commit fue ok.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (r Reptile, err error) {
	r, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return Reptile{}, err
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Reptile{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		r.Name = v
	}
	if in.Species != nil {
		v := strings.TrimSpace(*in.Species)
		if v == "" {
			return Reptile{}, fmt.Errorf("%w: species cannot be empty", ErrInvalidInput)
		}
		r.Species = v
	}
	if in.Mutation != nil {
		r.Mutation = trimmedOrNil(in.Mutation)
	}
	if in.Gender != nil {
		r.Gender = trimmedOrNil(in.Gender)
	}
	if in.DateOfBirth != nil {
		r.DateOfBirth = civilDatePtr(in.DateOfBirth)
	}

	oldImage := r.ImagePath
	if in.Image != nil {
		key, saveErr := s.saveImage(ctx, in.Image)
		if saveErr != nil {
			return Reptile{}, saveErr
		}
		defer func() {
			if err != nil {
				s.removeImage(ctx, key)
			}
		}()
		r.ImagePath = &key
	}

	r.UpdatedAt = s.now().UTC().Truncate(time.Microsecond)
	if err = s.repo.Update(ctx, r); err != nil {
		return Reptile{}, err
	}

	if in.Image != nil && oldImage != nil {
		s.removeImage(ctx, *oldImage)
	}
	return r, nil
}

// Delete borra el reptil y sus registros (transacción en el repo) y
// después, best effort, su imagen.
func (s *Service) Delete(ctx context.Context, id int64) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if r.ImagePath != nil {
		s.removeImage(ctx, *r.ImagePath)
	}
	return nil
}

// Status es el estado derivado de un reptil al momento de la lectura.
type Status struct {
	DaysSinceFeeding    *int
	DaysSinceShedding   *int
	DaysSinceDefecation *int
	DaysSinceFullClean  *int
	AgeDays             *int
	LatestMeasurement   *records.Record
}

// Status consulta el último registro de cada categoría relevante y
// calcula los días transcurridos. Siempre se recalcula.
func (s *Service) Status(ctx context.Context, r Reptile) (Status, error) {
	now := s.now()

	latest := func(c records.Category, f records.ListFilter) ([]records.Record, error) {
		f.Limit = 1
		recs, err := s.records.ListByReptile(ctx, c, r.ID, f)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", c.Plural(), err)
		}
		return recs, nil
	}

	var st Status
	feedings, err := latest(records.CategoryFeeding, records.ListFilter{})
	if err != nil {
		return Status{}, err
	}
	sheddings, err := latest(records.CategoryShedding, records.ListFilter{})
	if err != nil {
		return Status{}, err
	}
	defecations, err := latest(records.CategoryDefecation, records.ListFilter{})
	if err != nil {
		return Status{}, err
	}
	fullCleans, err := latest(records.CategoryCleaning, records.ListFilter{CleaningType: records.CleaningFull})
	if err != nil {
		return Status{}, err
	}
	measurements, err := latest(records.CategoryMeasurement, records.ListFilter{})
	if err != nil {
		return Status{}, err
	}

	st.DaysSinceFeeding = DaysSinceLastFeeding(feedings, now)
	st.DaysSinceShedding = DaysSinceLastShedding(sheddings, now)
	st.DaysSinceDefecation = DaysSinceLastDefecation(defecations, now)
	st.DaysSinceFullClean = DaysSinceLastFullClean(fullCleans, now)
	st.LatestMeasurement = LatestMeasurement(measurements)
	st.AgeDays = AgeDays(r, now.In(s.loc))
	return st, nil
}

// Recent devuelve hasta limit registros por categoría. ErrNotFound si
// el reptil no existe.
func (s *Service) Recent(ctx context.Context, id int64, limit int) (map[records.Category][]records.Record, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.records.Recent(ctx, id, limit)
}

// ImageExtension devuelve la extensión (minúsculas, sin punto) si está permitida.
func ImageExtension(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" || !slices.Contains(AllowedImageExtensions, ext) {
		return "", false
	}
	return ext, true
}

func (s *Service) saveImage(ctx context.Context, up *Upload) (string, error) {
	ext, ok := ImageExtension(up.Filename)
	if !ok {
		return "", fmt.Errorf("%w: image must be one of %s", ErrInvalidInput, strings.Join(AllowedImageExtensions, ", "))
	}
	key := s.newKey(ext)
	if err := s.images.Put(ctx, key, up.Body, up.ContentType); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return key, nil
}

func (s *Service) removeImage(ctx context.Context, key string) {
	if _, err := s.images.Delete(ctx, key); err != nil {
		s.log.Warn("image delete failed", map[string]any{"key": key, "error": err.Error()})
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func civilDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := civilDate(*t)
	return &d
}
