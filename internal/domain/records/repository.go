package records

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrReptileNotFound = errors.New("reptile not found")
)

// ListFilter acota ListByReptile. Limit <= 0 = sin límite.
type ListFilter struct {
	Limit        int
	CleaningType CleaningType // solo aplica a cleaning; vacío = todos
}

// Repository persiste registros de las seis categorías.
// Create debe fallar con ErrReptileNotFound si el reptil no existe,
// sin dejar fila creada. ListByReptile ordena por recorded_at desc, id desc.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, c Category, id int64) (Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, c Category, id int64) error
	ListByReptile(ctx context.Context, c Category, reptileID int64, f ListFilter) ([]Record, error)
	// ListAll devuelve todos los registros de la categoría por id asc (export).
	ListAll(ctx context.Context, c Category) ([]Record, error)
}
