// Package httpform parsea los formularios (multipart o urlencoded) que
// reciben los endpoints de alta y edición.
package httpform

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"

	// memoria usada por ParseMultipartForm antes de pasar a disco
	maxMemory = 8 << 20
)

var ErrMalformed = errors.New("malformed form value")

// Parse limita el body a maxBytes y acepta multipart o urlencoded.
func Parse(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	err := r.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// TooLarge indica si el error viene del límite de Parse.
func TooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// Value devuelve el valor (trim) y si el campo vino en el body.
// Distingue "no enviado" de "enviado vacío".
func Value(r *http.Request, key string) (string, bool) {
	vs, ok := r.PostForm[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[0]), true
}

// File devuelve el archivo subido bajo key, o nil si no vino
// (o vino con nombre vacío, como manda el browser sin selección).
func File(r *http.Request, key string) (multipart.File, *multipart.FileHeader, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	f, h, err := r.FormFile(key)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(h.Filename) == "" {
		_ = f.Close()
		return nil, nil, nil
	}
	return f, h, nil
}

// Date parsea YYYY-MM-DD como fecha civil (medianoche UTC).
func Date(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrMalformed)
	}
	return t, nil
}

// DateTime parsea YYYY-MM-DDTHH:MM en loc y lo devuelve en UTC.
func DateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: recorded_at must be YYYY-MM-DDTHH:MM", ErrMalformed)
	}
	return t.UTC(), nil
}

// Float: vacío = nil. Rechaza NaN/Inf.
func Float(field, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", ErrMalformed, field)
	}
	return &v, nil
}

// Bool acepta true/1/on/yes (case-insensitive); cualquier otro valor es false.
func Bool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "on", "yes":
		return true
	default:
		return false
	}
}
