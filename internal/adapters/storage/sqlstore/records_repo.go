package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"herptracker/internal/domain/records"
)

// RecordsRepo guarda las seis categorías, una tabla por categoría
// (feedings, sheddings, ...), todas con id, reptile_id, recorded_at y notes.
type RecordsRepo struct {
	db *sql.DB
	d  Dialect
}

func NewRecordsRepo(db *sql.DB, d Dialect) *RecordsRepo {
	return &RecordsRepo{db: db, d: d}
}

func table(c records.Category) (string, error) {
	if _, ok := records.ParseCategory(string(c)); !ok {
		return "", fmt.Errorf("unknown record category %q", c)
	}
	return c.Plural(), nil
}

func selectRecord(c records.Category) string {
	return "SELECT " + strings.Join(c.Columns(), ", ") + " FROM " + c.Plural()
}

// extraValues: valores de las columnas propias, en el orden de ExtraColumns.
func extraValues(rec records.Record) []any {
	switch rec.Category {
	case records.CategoryFeeding:
		return []any{toNullString(rec.FoodType)}
	case records.CategoryShedding:
		return []any{rec.Complete}
	case records.CategoryMeasurement:
		return []any{toNullFloat(rec.LengthCM), toNullFloat(rec.WeightG)}
	case records.CategoryCleaning:
		return []any{string(rec.CleaningType)}
	default:
		return nil
	}
}

// Create verifica el reptil e inserta en la misma transacción.
func (r *RecordsRepo) Create(ctx context.Context, rec *records.Record) error {
	tbl, err := table(rec.Category)
	if err != nil {
		return err
	}

	cols := append([]string{"reptile_id", "recorded_at"}, rec.Category.ExtraColumns()...)
	cols = append(cols, "notes")
	args := append([]any{rec.ReptileID, rec.RecordedAt.UTC()}, extraValues(*rec)...)
	args = append(args, toNullString(rec.Notes))

	q := "INSERT INTO " + tbl + " (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ") RETURNING id"

	return WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		var one int
		err := tx.QueryRowContext(ctx, r.d.rebind(`SELECT 1 FROM reptiles WHERE id = ?`), rec.ReptileID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return records.ErrReptileNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx, r.d.rebind(q), args...).Scan(&rec.ID); err != nil {
			return fmt.Errorf("insert %s: %w", tbl, err)
		}
		return nil
	})
}

func (r *RecordsRepo) GetByID(ctx context.Context, c records.Category, id int64) (records.Record, error) {
	if _, err := table(c); err != nil {
		return records.Record{}, err
	}
	row := r.db.QueryRowContext(ctx, r.d.rebind(selectRecord(c)+" WHERE id = ?"), id)
	rec, err := scanRecord(c, row)
	if errors.Is(err, sql.ErrNoRows) {
		return records.Record{}, records.ErrNotFound
	}
	return rec, err
}

// Update reescribe recorded_at, columnas propias y notes. reptile_id no cambia.
func (r *RecordsRepo) Update(ctx context.Context, rec records.Record) error {
	tbl, err := table(rec.Category)
	if err != nil {
		return err
	}

	sets := []string{"recorded_at = ?"}
	for _, col := range rec.Category.ExtraColumns() {
		sets = append(sets, col+" = ?")
	}
	sets = append(sets, "notes = ?")

	args := append([]any{rec.RecordedAt.UTC()}, extraValues(rec)...)
	args = append(args, toNullString(rec.Notes), rec.ID)

	res, err := r.db.ExecContext(ctx, r.d.rebind("UPDATE "+tbl+" SET "+strings.Join(sets, ", ")+" WHERE id = ?"), args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", tbl, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) Delete(ctx context.Context, c records.Category, id int64) error {
	tbl, err := table(c)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, r.d.rebind("DELETE FROM "+tbl+" WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", tbl, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) ListByReptile(ctx context.Context, c records.Category, reptileID int64, f records.ListFilter) ([]records.Record, error) {
	if _, err := table(c); err != nil {
		return nil, err
	}

	q := selectRecord(c) + " WHERE reptile_id = ?"
	args := []any{reptileID}
	if c == records.CategoryCleaning && f.CleaningType != "" {
		q += " AND cleaning_type = ?"
		args = append(args, string(f.CleaningType))
	}
	q += " ORDER BY recorded_at DESC, id DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}
	return r.query(ctx, c, q, args...)
}

func (r *RecordsRepo) ListAll(ctx context.Context, c records.Category) ([]records.Record, error) {
	if _, err := table(c); err != nil {
		return nil, err
	}
	return r.query(ctx, c, selectRecord(c)+" ORDER BY id ASC")
}

func (r *RecordsRepo) query(ctx context.Context, c records.Category, q string, args ...any) ([]records.Record, error) {
	rows, err := r.db.QueryContext(ctx, r.d.rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(c, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(c records.Category, s scanner) (records.Record, error) {
	var (
		rec          records.Record
		notes        sql.NullString
		foodType     sql.NullString
		length       sql.NullFloat64
		weight       sql.NullFloat64
		cleaningType sql.NullString
	)
	rec.Category = c

	dest := []any{&rec.ID, &rec.ReptileID, &rec.RecordedAt}
	switch c {
	case records.CategoryFeeding:
		dest = append(dest, &foodType)
	case records.CategoryShedding:
		dest = append(dest, &rec.Complete)
	case records.CategoryMeasurement:
		dest = append(dest, &length, &weight)
	case records.CategoryCleaning:
		dest = append(dest, &cleaningType)
	}
	dest = append(dest, &notes)

	if err := s.Scan(dest...); err != nil {
		return records.Record{}, err
	}

	rec.RecordedAt = utc(rec.RecordedAt)
	rec.Notes = fromNullString(notes)
	rec.FoodType = fromNullString(foodType)
	rec.LengthCM = fromNullFloat(length)
	rec.WeightG = fromNullFloat(weight)
	rec.CleaningType = records.CleaningType(cleaningType.String)
	return rec, nil
}
