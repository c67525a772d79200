// Package core define la abstracción de almacenamiento de imágenes
// compartida por los distintos backends (fs, s3, memory).
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifica el backend concreto.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // directorio local (default)
	DriverS3         Driver = "s3"     // S3 / MinIO
	DriverMemory     Driver = "memory" // tests
)

// Info describe un blob guardado.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Store es la superficie mínima que usan los servicios.
// Put sobrescribe si la key ya existe; Delete devuelve false si no existía.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	Driver() Driver
}

var (
	ErrNotFound   = errors.New("blob not found")
	ErrInvalidKey = errors.New("invalid blob key")
)
