package records

import "time"

// Category identifica el tipo de registro de cuidado.
// @Enum feeding, shedding, measurement, defecation, breeding, cleaning
type Category string

const (
	CategoryFeeding     Category = "feeding"
	CategoryShedding    Category = "shedding"
	CategoryMeasurement Category = "measurement"
	CategoryDefecation  Category = "defecation"
	CategoryBreeding    Category = "breeding"
	CategoryCleaning    Category = "cleaning"
)

// Categories en orden estable (respuestas agregadas, export).
var Categories = []Category{
	CategoryFeeding,
	CategoryShedding,
	CategoryMeasurement,
	CategoryDefecation,
	CategoryBreeding,
	CategoryCleaning,
}

// ParseCategory acepta solo el nombre singular exacto, en minúsculas.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Plural es el nombre de tabla y la clave en respuestas agregadas.
func (c Category) Plural() string { return string(c) + "s" }

// ExtraColumns son las columnas propias de la categoría, en orden de tabla.
func (c Category) ExtraColumns() []string {
	switch c {
	case CategoryFeeding:
		return []string{"food_type"}
	case CategoryShedding:
		return []string{"complete"}
	case CategoryMeasurement:
		return []string{"length_cm", "weight_g"}
	case CategoryCleaning:
		return []string{"cleaning_type"}
	default:
		return nil
	}
}

// Columns: orden completo de columnas de la tabla (export, SELECT).
func (c Category) Columns() []string {
	cols := []string{"id", "reptile_id", "recorded_at"}
	cols = append(cols, c.ExtraColumns()...)
	return append(cols, "notes")
}

// CleaningType: limpieza completa o parcial.
// @Enum full, spot
type CleaningType string

const (
	CleaningFull CleaningType = "full"
	CleaningSpot CleaningType = "spot"
)

func (t CleaningType) Valid() bool {
	return t == CleaningFull || t == CleaningSpot
}

// Record es un evento de cuidado de un reptil. Los campos específicos
// de cada categoría quedan en cero/nil para las demás.
type Record struct {
	ID        int64
	ReptileID int64
	Category  Category

	RecordedAt time.Time // UTC
	Notes      *string

	FoodType     *string      // feeding
	Complete     bool         // shedding
	LengthCM     *float64     // measurement
	WeightG      *float64     // measurement
	CleaningType CleaningType // cleaning
}
