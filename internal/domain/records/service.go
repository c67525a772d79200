package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Observer recibe las mutaciones exitosas (métricas).
type Observer interface {
	RecordMutation(category, op string)
}

type Service struct {
	repo Repository
	now  func() time.Time
	obs  Observer
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock reemplaza time.Now (tests). nil no cambia nada.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithObserver registra un observer opcional.
func (s *Service) WithObserver(obs Observer) *Service {
	s.obs = obs
	return s
}

type CreateInput struct {
	RecordedAt *time.Time // nil = ahora
	Notes      *string

	FoodType     *string
	Complete     *bool // nil = true
	LengthCM     *float64
	WeightG      *float64
	CleaningType CleaningType // vacío = spot
}

// FloatPatch distingue "no enviado" (Present=false) de "enviado vacío"
// (Present=true, Value=nil) para poder limpiar medidas.
type FloatPatch struct {
	Present bool
	Value   *float64
}

// UpdateInput: nil/Present=false = no tocar.
type UpdateInput struct {
	RecordedAt *time.Time
	Notes      *string

	FoodType     *string
	Complete     *bool
	LengthCM     FloatPatch
	WeightG      FloatPatch
	CleaningType *CleaningType
}

func (s *Service) Create(ctx context.Context, c Category, reptileID int64, in CreateInput) (Record, error) {
	if _, ok := ParseCategory(string(c)); !ok {
		return Record{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, c)
	}
	if reptileID <= 0 {
		return Record{}, ErrReptileNotFound
	}

	rec := Record{
		ReptileID:  reptileID,
		Category:   c,
		RecordedAt: normalizeTime(s.now()),
		Notes:      cleanText(in.Notes),
	}
	if in.RecordedAt != nil {
		rec.RecordedAt = normalizeTime(*in.RecordedAt)
	}

	switch c {
	case CategoryFeeding:
		rec.FoodType = cleanText(in.FoodType)
	case CategoryShedding:
		rec.Complete = true
		if in.Complete != nil {
			rec.Complete = *in.Complete
		}
	case CategoryMeasurement:
		rec.LengthCM = in.LengthCM
		rec.WeightG = in.WeightG
	case CategoryCleaning:
		rec.CleaningType = CleaningSpot
		if in.CleaningType != "" {
			if !in.CleaningType.Valid() {
				return Record{}, fmt.Errorf("%w: cleaning_type must be full or spot", ErrInvalidInput)
			}
			rec.CleaningType = in.CleaningType
		}
	}

	if err := s.repo.Create(ctx, &rec); err != nil {
		return Record{}, err
	}
	s.observe(c, "create")
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, c Category, id int64) (Record, error) {
	return s.repo.GetByID(ctx, c, id)
}

// Update aplica solo los campos presentes en in.
func (s *Service) Update(ctx context.Context, c Category, id int64, in UpdateInput) (Record, error) {
	rec, err := s.repo.GetByID(ctx, c, id)
	if err != nil {
		return Record{}, err
	}

	if in.RecordedAt != nil {
		rec.RecordedAt = normalizeTime(*in.RecordedAt)
	}
	if in.Notes != nil {
		rec.Notes = cleanText(in.Notes)
	}

	switch c {
	case CategoryFeeding:
		if in.FoodType != nil {
			rec.FoodType = cleanText(in.FoodType)
		}
	case CategoryShedding:
		if in.Complete != nil {
			rec.Complete = *in.Complete
		}
	case CategoryMeasurement:
		if in.LengthCM.Present {
			rec.LengthCM = in.LengthCM.Value
		}
		if in.WeightG.Present {
			rec.WeightG = in.WeightG.Value
		}
	case CategoryCleaning:
		if in.CleaningType != nil {
			if !in.CleaningType.Valid() {
				return Record{}, fmt.Errorf("%w: cleaning_type must be full or spot", ErrInvalidInput)
			}
			rec.CleaningType = *in.CleaningType
		}
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	s.observe(c, "update")
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, c Category, id int64) error {
	if err := s.repo.Delete(ctx, c, id); err != nil {
		return err
	}
	s.observe(c, "delete")
	return nil
}

// ListByReptile devuelve los más recientes primero.
func (s *Service) ListByReptile(ctx context.Context, c Category, reptileID int64, f ListFilter) ([]Record, error) {
	return s.repo.ListByReptile(ctx, c, reptileID, f)
}

// Recent agrupa hasta limit registros por categoría para un reptil.
func (s *Service) Recent(ctx context.Context, reptileID int64, limit int) (map[Category][]Record, error) {
	out := make(map[Category][]Record, len(Categories))
	for _, c := range Categories {
		items, err := s.repo.ListByReptile(ctx, c, reptileID, ListFilter{Limit: limit})
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", c.Plural(), err)
		}
		out[c] = items
	}
	return out, nil
}

func (s *Service) ListAll(ctx context.Context, c Category) ([]Record, error) {
	return s.repo.ListAll(ctx, c)
}

func (s *Service) observe(c Category, op string) {
	if s.obs != nil {
		s.obs.RecordMutation(string(c), op)
	}
}

// normalizeTime: UTC con precisión de microsegundos (lo que guardan sqlite y postgres).
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// cleanText: trim; vacío = nil.
func cleanText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
