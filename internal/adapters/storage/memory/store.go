// Package memory implementa los repositorios en memoria (dev y tests).
// Reptiles y registros comparten un Store para poder verificar el reptil
// padre y borrar en cascada bajo un mismo lock.
package memory

import (
	"context"
	"sort"
	"sync"

	"herptracker/internal/domain/records"
	"herptracker/internal/domain/reptiles"
)

type Store struct {
	mu       sync.RWMutex
	reptiles map[int64]reptiles.Reptile
	records  map[records.Category]map[int64]records.Record
	nextRep  int64
	nextRec  map[records.Category]int64
}

func NewStore() *Store {
	s := &Store{
		reptiles: make(map[int64]reptiles.Reptile),
		records:  make(map[records.Category]map[int64]records.Record),
		nextRec:  make(map[records.Category]int64),
	}
	for _, c := range records.Categories {
		s.records[c] = make(map[int64]records.Record)
	}
	return s
}

func (s *Store) Reptiles() *ReptilesRepo { return &ReptilesRepo{s: s} }

func (s *Store) Records() *RecordsRepo { return &RecordsRepo{s: s} }

type ReptilesRepo struct{ s *Store }

func (r *ReptilesRepo) Create(ctx context.Context, rep *reptiles.Reptile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextRep++
	rep.ID = r.s.nextRep
	r.s.reptiles[rep.ID] = cloneReptile(*rep)
	return nil
}

func (r *ReptilesRepo) GetByID(ctx context.Context, id int64) (reptiles.Reptile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rep, ok := r.s.reptiles[id]
	if !ok {
		return reptiles.Reptile{}, reptiles.ErrNotFound
	}
	return cloneReptile(rep), nil
}

func (r *ReptilesRepo) Update(ctx context.Context, rep reptiles.Reptile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.reptiles[rep.ID]
	if !ok {
		return reptiles.ErrNotFound
	}
	rep.CreatedAt = old.CreatedAt
	r.s.reptiles[rep.ID] = cloneReptile(rep)
	return nil
}

// Delete quita el reptil y todos sus registros.
func (r *ReptilesRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reptiles[id]; !ok {
		return reptiles.ErrNotFound
	}
	for _, byID := range r.s.records {
		for recID, rec := range byID {
			if rec.ReptileID == id {
				delete(byID, recID)
			}
		}
	}
	delete(r.s.reptiles, id)
	return nil
}

func (r *ReptilesRepo) List(ctx context.Context) ([]reptiles.Reptile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]reptiles.Reptile, 0, len(r.s.reptiles))
	for _, rep := range r.s.reptiles {
		out = append(out, cloneReptile(rep))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type RecordsRepo struct{ s *Store }

func (r *RecordsRepo) table(c records.Category) (map[int64]records.Record, bool) {
	byID, ok := r.s.records[c]
	return byID, ok
}

func (r *RecordsRepo) Create(ctx context.Context, rec *records.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byID, ok := r.table(rec.Category)
	if !ok {
		return records.ErrNotFound
	}
	if _, ok := r.s.reptiles[rec.ReptileID]; !ok {
		return records.ErrReptileNotFound
	}
	r.s.nextRec[rec.Category]++
	rec.ID = r.s.nextRec[rec.Category]
	byID[rec.ID] = cloneRecord(*rec)
	return nil
}

func (r *RecordsRepo) GetByID(ctx context.Context, c records.Category, id int64) (records.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byID, ok := r.table(c)
	if !ok {
		return records.Record{}, records.ErrNotFound
	}
	rec, ok := byID[id]
	if !ok {
		return records.Record{}, records.ErrNotFound
	}
	return cloneRecord(rec), nil
}

// Update no permite mover el registro a otro reptil.
func (r *RecordsRepo) Update(ctx context.Context, rec records.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byID, ok := r.table(rec.Category)
	if !ok {
		return records.ErrNotFound
	}
	old, ok := byID[rec.ID]
	if !ok {
		return records.ErrNotFound
	}
	rec.ReptileID = old.ReptileID
	byID[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *RecordsRepo) Delete(ctx context.Context, c records.Category, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byID, ok := r.table(c)
	if !ok {
		return records.ErrNotFound
	}
	if _, ok := byID[id]; !ok {
		return records.ErrNotFound
	}
	delete(byID, id)
	return nil
}

func (r *RecordsRepo) ListByReptile(ctx context.Context, c records.Category, reptileID int64, f records.ListFilter) ([]records.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byID, ok := r.table(c)
	if !ok {
		return nil, records.ErrNotFound
	}
	out := make([]records.Record, 0)
	for _, rec := range byID {
		if rec.ReptileID != reptileID {
			continue
		}
		if c == records.CategoryCleaning && f.CleaningType != "" && rec.CleaningType != f.CleaningType {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RecordedAt.Equal(out[j].RecordedAt) {
			return out[i].RecordedAt.After(out[j].RecordedAt)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *RecordsRepo) ListAll(ctx context.Context, c records.Category) ([]records.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byID, ok := r.table(c)
	if !ok {
		return nil, records.ErrNotFound
	}
	out := make([]records.Record, 0, len(byID))
	for _, rec := range byID {
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneReptile(r reptiles.Reptile) reptiles.Reptile {
	r.Mutation = cloneString(r.Mutation)
	r.Gender = cloneString(r.Gender)
	r.ImagePath = cloneString(r.ImagePath)
	if r.DateOfBirth != nil {
		d := *r.DateOfBirth
		r.DateOfBirth = &d
	}
	return r
}

func cloneRecord(r records.Record) records.Record {
	r.Notes = cloneString(r.Notes)
	r.FoodType = cloneString(r.FoodType)
	r.LengthCM = cloneFloat(r.LengthCM)
	r.WeightG = cloneFloat(r.WeightG)
	return r
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
