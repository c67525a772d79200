// Package config carga la configuración desde el entorno (y un .env opcional).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Uploads UploadsConfig
	App     AppConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Driver     string // sqlite | postgres | memory
	DSN        string // postgres
	SQLitePath string
}

type UploadsConfig struct {
	Driver   string // fs | s3 | memory
	Dir      string
	MaxBytes int64
	S3       S3Config
}

type S3Config struct {
	Bucket          string
	Region          string
	Prefix          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

type AppConfig struct {
	Name         string
	Timezone     string
	RecordsLimit int
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	defaultMaxUploadBytes = 16 << 20
	defaultRecordsLimit   = 50
)

// Load lee envFile (o .env si está vacío; su ausencia no es error) y
// luego las variables de entorno.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	maxBytes, err := getenvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}
	limit, err := getenvInt64("RECORDS_LIMIT", defaultRecordsLimit)
	if err != nil {
		return nil, err
	}
	pathStyle, err := getenvBool("S3_PATH_STYLE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("PORT", "8080"),
		},
		DB: DBConfig{
			Driver:     strings.ToLower(getenvWithDefault("DB_DRIVER", "sqlite")),
			DSN:        os.Getenv("DB_DSN"),
			SQLitePath: getenvWithDefault("SQLITE_PATH", "instance/herptracker.db"),
		},
		Uploads: UploadsConfig{
			Driver:   strings.ToLower(getenvWithDefault("UPLOAD_DRIVER", "fs")),
			Dir:      getenvWithDefault("UPLOAD_DIR", "uploads"),
			MaxBytes: maxBytes,
			S3: S3Config{
				Bucket:          os.Getenv("S3_BUCKET"),
				Region:          getenvWithDefault("S3_REGION", "us-east-1"),
				Prefix:          os.Getenv("S3_PREFIX"),
				Endpoint:        os.Getenv("S3_ENDPOINT"),
				PathStyle:       pathStyle,
				AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			},
		},
		App: AppConfig{
			Name:         getenvWithDefault("APP_NAME", "herptracker"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
			RecordsLimit: int(limit),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}

	switch c.DB.Driver {
	case "sqlite":
		if c.DB.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be provided for sqlite")
		}
	case "postgres":
		if c.DB.DSN == "" {
			return errors.New("DB_DSN must be provided for postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DB.Driver)
	}

	switch c.Uploads.Driver {
	case "fs":
		if c.Uploads.Dir == "" {
			return errors.New("UPLOAD_DIR must be provided for fs uploads")
		}
	case "s3":
		if c.Uploads.S3.Bucket == "" {
			return errors.New("S3_BUCKET must be provided for s3 uploads")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown UPLOAD_DRIVER %q", c.Uploads.Driver)
	}

	if c.Uploads.MaxBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if c.App.RecordsLimit <= 0 {
		return errors.New("RECORDS_LIMIT must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resuelve TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

func getenvWithDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
