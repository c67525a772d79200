// Package blob elige el backend de imágenes según configuración.
package blob

import (
	"context"
	"fmt"

	"herptracker/internal/adapters/blob/core"
	"herptracker/internal/adapters/blob/fs"
	"herptracker/internal/adapters/blob/memory"
	"herptracker/internal/adapters/blob/s3"
)

type Config struct {
	Driver core.Driver
	Dir    string // fs
	S3     s3.Config
}

// Open devuelve el Store para el driver pedido. Driver vacío = fs.
func Open(ctx context.Context, cfg Config) (core.Store, error) {
	switch cfg.Driver {
	case core.DriverFilesystem, "":
		return fs.New(cfg.Dir)
	case core.DriverS3:
		return s3.New(ctx, cfg.S3)
	case core.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported upload driver %q", cfg.Driver)
	}
}
