package reptiles

import (
	"context"
	"errors"
	"io"

	"herptracker/internal/domain/records"
)

var (
	ErrNotFound = errors.New("reptile not found")
)

// Repository persiste reptiles. Delete borra en una sola transacción el
// reptil y sus registros de las seis categorías. List ordena por nombre
// (orden de bytes) y luego por id.
type Repository interface {
	Create(ctx context.Context, r *Reptile) error
	GetByID(ctx context.Context, id int64) (Reptile, error)
	Update(ctx context.Context, r Reptile) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Reptile, error)
}

// ImageStore es lo que el servicio necesita del almacenamiento de imágenes.
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) (bool, error)
}

// RecordLister expone las consultas de registros usadas para el estado derivado.
type RecordLister interface {
	ListByReptile(ctx context.Context, c records.Category, reptileID int64, f records.ListFilter) ([]records.Record, error)
	Recent(ctx context.Context, reptileID int64, limit int) (map[records.Category][]records.Record, error)
}
