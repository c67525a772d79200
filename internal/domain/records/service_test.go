package records

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	reptiles map[int64]bool
	byID     map[int64]Record
	nextID   int64
}

func newTestRepo(reptileIDs ...int64) *testRepo {
	r := &testRepo{reptiles: map[int64]bool{}, byID: map[int64]Record{}}
	for _, id := range reptileIDs {
		r.reptiles[id] = true
	}
	return r
}

func (r *testRepo) Create(ctx context.Context, rec *Record) error {
	if !r.reptiles[rec.ReptileID] {
		return ErrReptileNotFound
	}
	r.nextID++
	rec.ID = r.nextID
	r.byID[rec.ID] = *rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, c Category, id int64) (Record, error) {
	rec, ok := r.byID[id]
	if !ok || rec.Category != c {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) Update(ctx context.Context, rec Record) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Delete(ctx context.Context, c Category, id int64) error {
	if _, err := r.GetByID(ctx, c, id); err != nil {
		return err
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ListByReptile(ctx context.Context, c Category, reptileID int64, f ListFilter) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.Category == c && rec.ReptileID == reptileID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) ListAll(ctx context.Context, c Category) ([]Record, error) {
	return r.ListByReptile(ctx, c, 0, ListFilter{})
}

type countingObserver struct{ ops []string }

func (o *countingObserver) RecordMutation(category, op string) {
	o.ops = append(o.ops, category+":"+op)
}

func fixedNow(t time.Time) func() time.Time { return func() time.Time { return t } }

func strPtr(s string) *string { return &s }

// -------------------------
// Tests
// -------------------------

func TestCreate_DefaultsTimestampAndCategoryFields(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 123456789, time.UTC)
	svc := NewService(newTestRepo(1))
	svc.now = fixedNow(now)

	feed, err := svc.Create(context.Background(), CategoryFeeding, 1, CreateInput{FoodType: strPtr("  mouse "), Notes: strPtr("")})
	if err != nil {
		t.Fatalf("create feeding: %v", err)
	}
	if !feed.RecordedAt.Equal(now.Truncate(time.Microsecond)) {
		t.Fatalf("recorded_at should default to now, got %v", feed.RecordedAt)
	}
	if feed.FoodType == nil || *feed.FoodType != "mouse" {
		t.Fatalf("food_type not trimmed: %v", feed.FoodType)
	}
	if feed.Notes != nil {
		t.Fatalf("empty notes should be nil")
	}

	shed, err := svc.Create(context.Background(), CategoryShedding, 1, CreateInput{})
	if err != nil {
		t.Fatalf("create shedding: %v", err)
	}
	if !shed.Complete {
		t.Fatalf("shedding complete should default to true")
	}

	clean, err := svc.Create(context.Background(), CategoryCleaning, 1, CreateInput{})
	if err != nil {
		t.Fatalf("create cleaning: %v", err)
	}
	if clean.CleaningType != CleaningSpot {
		t.Fatalf("cleaning_type should default to spot, got %q", clean.CleaningType)
	}

	// campos de otra categoría se ignoran
	def, err := svc.Create(context.Background(), CategoryDefecation, 1, CreateInput{FoodType: strPtr("x")})
	if err != nil {
		t.Fatalf("create defecation: %v", err)
	}
	if def.FoodType != nil {
		t.Fatalf("food_type must not leak into defecation")
	}
}

func TestCreate_ExplicitTimestampAndValidation(t *testing.T) {
	svc := NewService(newTestRepo(1))

	at := time.Date(2024, 1, 2, 3, 4, 0, 0, time.FixedZone("X", 3600))
	rec, err := svc.Create(context.Background(), CategoryBreeding, 1, CreateInput{RecordedAt: &at})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !rec.RecordedAt.Equal(at) || rec.RecordedAt.Location() != time.UTC {
		t.Fatalf("expected explicit timestamp normalized to UTC, got %v", rec.RecordedAt)
	}

	if _, err := svc.Create(context.Background(), CategoryCleaning, 1, CreateInput{CleaningType: "deep"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad cleaning_type, got %v", err)
	}
	if _, err := svc.Create(context.Background(), Category("bath"), 1, CreateInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
}

func TestCreate_MissingReptile(t *testing.T) {
	repo := newTestRepo(1)
	svc := NewService(repo)

	for _, c := range Categories {
		if _, err := svc.Create(context.Background(), c, 99, CreateInput{}); !errors.Is(err, ErrReptileNotFound) {
			t.Fatalf("%s: expected ErrReptileNotFound, got %v", c, err)
		}
	}
	if len(repo.byID) != 0 {
		t.Fatalf("no rows should be created, got %d", len(repo.byID))
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	svc := NewService(newTestRepo(1))
	ctx := context.Background()

	length, weight := 90.5, 1200.0
	m, err := svc.Create(ctx, CategoryMeasurement, 1, CreateInput{LengthCM: &length, WeightG: &weight, Notes: strPtr("fat")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// solo weight enviado vacío: se limpia; length y notes quedan
	updated, err := svc.Update(ctx, CategoryMeasurement, m.ID, UpdateInput{WeightG: FloatPatch{Present: true}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.WeightG != nil {
		t.Fatalf("weight should be cleared")
	}
	if updated.LengthCM == nil || *updated.LengthCM != 90.5 {
		t.Fatalf("length should be untouched: %v", updated.LengthCM)
	}
	if updated.Notes == nil || *updated.Notes != "fat" {
		t.Fatalf("notes should be untouched")
	}
	if !updated.RecordedAt.Equal(m.RecordedAt) {
		t.Fatalf("recorded_at should be untouched")
	}

	full := CleaningFull
	c, _ := svc.Create(ctx, CategoryCleaning, 1, CreateInput{})
	c, err = svc.Update(ctx, CategoryCleaning, c.ID, UpdateInput{CleaningType: &full})
	if err != nil || c.CleaningType != CleaningFull {
		t.Fatalf("cleaning type update: %v %q", err, c.CleaningType)
	}

	if _, err := svc.Update(ctx, CategoryFeeding, 404, UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// id de otra categoría
	if _, err := svc.Update(ctx, CategoryFeeding, m.ID, UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong category, got %v", err)
	}
}

func TestDelete_And_Observer(t *testing.T) {
	obs := &countingObserver{}
	svc := NewService(newTestRepo(1)).WithObserver(obs)
	ctx := context.Background()

	rec, _ := svc.Create(ctx, CategoryFeeding, 1, CreateInput{})
	if err := svc.Delete(ctx, CategoryFeeding, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, CategoryFeeding, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	want := []string{"feeding:create", "feeding:delete"}
	if len(obs.ops) != len(want) || obs.ops[0] != want[0] || obs.ops[1] != want[1] {
		t.Fatalf("unexpected observer calls %v", obs.ops)
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory("feeding"); !ok || c != CategoryFeeding {
		t.Fatalf("expected feeding, got %q %v", c, ok)
	}
	for _, s := range []string{"FEEDING", "Feeding", " feeding", "feedings"} {
		if _, ok := ParseCategory(s); ok {
			t.Fatalf("%q should not be a category", s)
		}
	}
	if _, ok := ParseCategory("records"); ok {
		t.Fatalf("records is not a category")
	}
	if CategoryMeasurement.Plural() != "measurements" {
		t.Fatalf("unexpected plural %q", CategoryMeasurement.Plural())
	}
}
