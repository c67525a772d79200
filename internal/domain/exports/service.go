// Package exports arma el respaldo completo: un ZIP con un CSV por tabla.
package exports

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"herptracker/internal/domain/records"
	"herptracker/internal/domain/reptiles"
)

// ReptileHeader es el orden de columnas de reptiles.csv.
var ReptileHeader = []string{
	"id", "name", "date_of_birth", "species", "mutation", "gender",
	"image_path", "created_at", "updated_at",
}

const (
	DateTimeLayout = time.RFC3339Nano
	DateLayout     = "2006-01-02"
	fileStamp      = "20060102_150405.000"
)

type ReptileLister interface {
	List(ctx context.Context) ([]reptiles.Reptile, error)
}

type RecordLister interface {
	ListAll(ctx context.Context, c records.Category) ([]records.Record, error)
}

// Observer recibe cada export generado (métricas).
type Observer interface {
	ExportBuilt(rows int)
}

type Service struct {
	reptiles ReptileLister
	records  RecordLister
	now      func() time.Time
	obs      Observer
}

func NewService(reps ReptileLister, recs RecordLister) *Service {
	return &Service{
		reptiles: reps,
		records:  recs,
		now:      time.Now,
	}
}

func (s *Service) WithObserver(obs Observer) *Service {
	s.obs = obs
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Bundle es el archivo listo para descargar.
type Bundle struct {
	Filename  string
	CreatedAt time.Time
	Rows      int // filas de datos en total, sin headers
	Data      []byte
}

// Filename: herptracker_export_YYYYMMDD_HHMMSSmmm.zip (hora UTC, con milisegundos).
func Filename(t time.Time) string {
	return "herptracker_export_" + strings.Replace(t.UTC().Format(fileStamp), ".", "", 1) + ".zip"
}

// Build lee todas las filas (sin paginar) y arma el ZIP en memoria.
func (s *Service) Build(ctx context.Context) (Bundle, error) {
	created := s.now().UTC()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	total := 0

	reps, err := s.reptiles.List(ctx)
	if err != nil {
		return Bundle{}, fmt.Errorf("list reptiles: %w", err)
	}
	slices.SortFunc(reps, func(a, b reptiles.Reptile) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	rows := make([][]string, 0, len(reps))
	for _, r := range reps {
		rows = append(rows, ReptileRow(r))
	}
	if err := writeCSV(zw, "reptiles.csv", created, ReptileHeader, rows); err != nil {
		return Bundle{}, err
	}
	total += len(rows)

	for _, c := range records.Categories {
		recs, err := s.records.ListAll(ctx, c)
		if err != nil {
			return Bundle{}, fmt.Errorf("list %s: %w", c.Plural(), err)
		}
		rows := make([][]string, 0, len(recs))
		for _, rec := range recs {
			rows = append(rows, RecordRow(rec))
		}
		if err := writeCSV(zw, c.Plural()+".csv", created, c.Columns(), rows); err != nil {
			return Bundle{}, err
		}
		total += len(rows)
	}

	if err := zw.Close(); err != nil {
		return Bundle{}, fmt.Errorf("close zip: %w", err)
	}

	if s.obs != nil {
		s.obs.ExportBuilt(total)
	}
	return Bundle{
		Filename:  Filename(created),
		CreatedAt: created,
		Rows:      total,
		Data:      buf.Bytes(),
	}, nil
}

func writeCSV(zw *zip.Writer, name string, modified time.Time, header []string, rows [][]string) error {
	f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modified})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// ReptileRow: valores en el orden de ReptileHeader.
func ReptileRow(r reptiles.Reptile) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Name,
		formatDate(r.DateOfBirth),
		r.Species,
		formatString(r.Mutation),
		formatString(r.Gender),
		formatString(r.ImagePath),
		formatDateTime(r.CreatedAt),
		formatDateTime(r.UpdatedAt),
	}
}

// RecordRow: valores en el orden de Category.Columns().
func RecordRow(rec records.Record) []string {
	row := []string{
		strconv.FormatInt(rec.ID, 10),
		strconv.FormatInt(rec.ReptileID, 10),
		formatDateTime(rec.RecordedAt),
	}
	switch rec.Category {
	case records.CategoryFeeding:
		row = append(row, formatString(rec.FoodType))
	case records.CategoryShedding:
		row = append(row, strconv.FormatBool(rec.Complete))
	case records.CategoryMeasurement:
		row = append(row, formatFloat(rec.LengthCM), formatFloat(rec.WeightG))
	case records.CategoryCleaning:
		row = append(row, string(rec.CleaningType))
	}
	return append(row, formatString(rec.Notes))
}

func formatString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}
