package reptiles

import "time"

// Gender define los valores que ofrece el formulario. El campo es texto
// libre; no se valida contra esta lista.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// AllowedImageExtensions: extensiones aceptadas para la foto (minúsculas, sin punto).
var AllowedImageExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

// Reptile es el animal registrado. Es dueño de sus registros de cuidado
// (ver records); borrarlo borra todos sus registros y su imagen.
type Reptile struct {
	ID int64

	Name     string
	Species  string
	Mutation *string
	Gender   *string

	DateOfBirth *time.Time // fecha civil, medianoche UTC
	ImagePath   *string    // key en el image store

	CreatedAt time.Time
	UpdatedAt time.Time
}
