package reptiles

import (
	"time"

	"herptracker/internal/domain/records"
)

// Cálculos de estado derivado. Funciones puras: se evalúan en cada
// lectura y no se cachean.

const day = 24 * time.Hour

// Latest devuelve el registro con mayor RecordedAt (empate: mayor id), o nil.
func Latest(recs []records.Record) *records.Record {
	var best *records.Record
	for i := range recs {
		r := &recs[i]
		if best == nil ||
			r.RecordedAt.After(best.RecordedAt) ||
			(r.RecordedAt.Equal(best.RecordedAt) && r.ID > best.ID) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// DaysSince: días completos transcurridos desde el último registro,
// redondeando hacia abajo (23h = 0). Un registro futuro da negativo.
func DaysSince(recs []records.Record, now time.Time) *int {
	last := Latest(recs)
	if last == nil {
		return nil
	}
	d := floorDays(now.Sub(last.RecordedAt))
	return &d
}

func DaysSinceLastFeeding(recs []records.Record, now time.Time) *int {
	return DaysSince(only(recs, records.CategoryFeeding), now)
}

func DaysSinceLastShedding(recs []records.Record, now time.Time) *int {
	return DaysSince(only(recs, records.CategoryShedding), now)
}

func DaysSinceLastDefecation(recs []records.Record, now time.Time) *int {
	return DaysSince(only(recs, records.CategoryDefecation), now)
}

// DaysSinceLastFullClean ignora las limpiezas spot.
func DaysSinceLastFullClean(recs []records.Record, now time.Time) *int {
	full := make([]records.Record, 0, len(recs))
	for _, r := range only(recs, records.CategoryCleaning) {
		if r.CleaningType == records.CleaningFull {
			full = append(full, r)
		}
	}
	return DaysSince(full, now)
}

// LatestMeasurement devuelve la medición más reciente, o nil.
func LatestMeasurement(recs []records.Record) *records.Record {
	return Latest(only(recs, records.CategoryMeasurement))
}

// AgeDays: días de calendario entre la fecha de nacimiento y today.
// Solo importa la fecha de today, no la hora.
func AgeDays(r Reptile, today time.Time) *int {
	if r.DateOfBirth == nil {
		return nil
	}
	dob := civilDate(*r.DateOfBirth)
	t := civilDate(today)
	d := int(t.Sub(dob) / day)
	return &d
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floorDays(d time.Duration) int {
	n := int(d / day)
	if d < 0 && d%day != 0 {
		n--
	}
	return n
}

func only(recs []records.Record, c records.Category) []records.Record {
	out := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}
