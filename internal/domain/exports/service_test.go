package exports

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"testing"
	"time"

	"herptracker/internal/adapters/storage/memory"
	"herptracker/internal/domain/records"
	"herptracker/internal/domain/reptiles"
)

type countingObserver struct{ rows []int }

func (o *countingObserver) ExportBuilt(rows int) { o.rows = append(o.rows, rows) }

func readZip(t *testing.T, data []byte) map[string][][]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	out := map[string][][]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
		if err != nil {
			t.Fatalf("parse %s: %v", f.Name, err)
		}
		out[f.Name] = rows
	}
	return out
}

func TestBuild_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	reps, recs := store.Reptiles(), store.Records()

	created := time.Date(2024, 2, 3, 4, 5, 6, 789000, time.UTC)
	dob := time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)
	mut := "hypo, \"red\""
	zed := reptiles.Reptile{Name: "Zed", Species: "Python regius", CreatedAt: created, UpdatedAt: created}
	rex := reptiles.Reptile{Name: "Rex", Species: "Pogona vitticeps", Mutation: &mut, DateOfBirth: &dob, CreatedAt: created, UpdatedAt: created}
	if err := reps.Create(ctx, &zed); err != nil {
		t.Fatal(err)
	}
	if err := reps.Create(ctx, &rex); err != nil {
		t.Fatal(err)
	}

	notes := "line1\nline2"
	length := 41.25
	at := created.Add(time.Hour)
	all := []records.Record{
		{ReptileID: rex.ID, Category: records.CategoryFeeding, RecordedAt: at, Notes: &notes},
		{ReptileID: rex.ID, Category: records.CategoryShedding, RecordedAt: at, Complete: false},
		{ReptileID: rex.ID, Category: records.CategoryMeasurement, RecordedAt: at, LengthCM: &length},
		{ReptileID: zed.ID, Category: records.CategoryCleaning, RecordedAt: at, CleaningType: records.CleaningFull},
		{ReptileID: zed.ID, Category: records.CategoryCleaning, RecordedAt: at.Add(-time.Hour), CleaningType: records.CleaningSpot},
	}
	for i := range all {
		if err := recs.Create(ctx, &all[i]); err != nil {
			t.Fatal(err)
		}
	}

	obs := &countingObserver{}
	stamp := time.Date(2024, 9, 8, 7, 6, 5, 0, time.UTC)
	svc := NewService(reps, recs).WithObserver(obs).WithClock(func() time.Time { return stamp })

	b, err := svc.Build(ctx)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if b.Filename != "herptracker_export_20240908_070605000.zip" {
		t.Fatalf("filename: %s", b.Filename)
	}
	if b.Rows != 7 || len(obs.rows) != 1 || obs.rows[0] != 7 {
		t.Fatalf("rows: %d observed %v", b.Rows, obs.rows)
	}

	files := readZip(t, b.Data)
	if len(files) != 1+len(records.Categories) {
		t.Fatalf("expected %d files, got %d", 1+len(records.Categories), len(files))
	}

	// reptiles por id asc, valores sin pérdida
	rr := files["reptiles.csv"]
	if !slices.Equal(rr[0], ReptileHeader) {
		t.Fatalf("reptiles header: %v", rr[0])
	}
	if len(rr) != 3 {
		t.Fatalf("expected 2 reptile rows, got %d", len(rr)-1)
	}
	if rr[1][1] != "Zed" || rr[2][1] != "Rex" {
		t.Fatalf("reptile rows out of id order: %v", rr[1:])
	}
	if rr[2][2] != "2020-07-01" || rr[2][4] != mut || rr[1][4] != "" {
		t.Fatalf("reptile values: %v", rr[2])
	}
	ts, err := time.Parse(DateTimeLayout, rr[2][7])
	if err != nil || !ts.Equal(created) {
		t.Fatalf("created_at round trip: %q %v", rr[2][7], err)
	}

	for _, c := range records.Categories {
		rows := files[c.Plural()+".csv"]
		if !slices.Equal(rows[0], c.Columns()) {
			t.Fatalf("%s header: %v", c, rows[0])
		}
		stored, _ := recs.ListAll(ctx, c)
		if len(rows)-1 != len(stored) {
			t.Fatalf("%s: %d rows, %d stored", c, len(rows)-1, len(stored))
		}
		for i, rec := range stored {
			if !slices.Equal(rows[i+1], RecordRow(rec)) {
				t.Fatalf("%s row %d: %v != %v", c, i, rows[i+1], RecordRow(rec))
			}
		}
	}

	if got := files["feedings.csv"][1]; got[len(got)-1] != notes {
		t.Fatalf("notes with newline not preserved: %q", got[len(got)-1])
	}
	if got := files["sheddings.csv"][1][3]; got != "false" {
		t.Fatalf("complete: %q", got)
	}
	m := files["measurements.csv"][1]
	if f, err := strconv.ParseFloat(m[3], 64); err != nil || f != length || m[4] != "" {
		t.Fatalf("measurement values: %v", m)
	}
	if c := files["cleanings.csv"]; c[1][3] != "full" || c[2][3] != "spot" {
		t.Fatalf("cleaning rows: %v", c[1:])
	}
}

func TestBuild_EmptyStoreHasHeaders(t *testing.T) {
	store := memory.NewStore()
	b, err := NewService(store.Reptiles(), store.Records()).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	files := readZip(t, b.Data)
	for name, rows := range files {
		if len(rows) != 1 {
			t.Fatalf("%s: expected only header, got %d rows", name, len(rows))
		}
	}
	if b.Rows != 0 {
		t.Fatalf("rows: %d", b.Rows)
	}
}

func TestFilename_MillisecondResolution(t *testing.T) {
	base := time.Date(2024, 9, 8, 7, 6, 5, 0, time.FixedZone("ART", -3*3600))
	first := Filename(base)
	second := Filename(base.Add(250 * time.Millisecond))

	if first != "herptracker_export_20240908_100605000.zip" {
		t.Fatalf("unexpected name %s", first)
	}
	if second != "herptracker_export_20240908_100605250.zip" {
		t.Fatalf("unexpected name %s", second)
	}
	if first == second {
		t.Fatalf("exports in the same second must not share a name")
	}
}
