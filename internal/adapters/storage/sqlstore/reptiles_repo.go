package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"herptracker/internal/domain/records"
	"herptracker/internal/domain/reptiles"
)

type ReptilesRepo struct {
	db *sql.DB
	d  Dialect
}

func NewReptilesRepo(db *sql.DB, d Dialect) *ReptilesRepo {
	return &ReptilesRepo{db: db, d: d}
}

const reptileColumns = `id, name, date_of_birth, species, mutation, gender, image_path, created_at, updated_at`

func (r *ReptilesRepo) Create(ctx context.Context, rep *reptiles.Reptile) error {
	row := r.db.QueryRowContext(ctx, r.d.rebind(`
		INSERT INTO reptiles (
			name, date_of_birth, species, mutation, gender, image_path,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`),
		rep.Name,
		toNullDate(rep.DateOfBirth),
		rep.Species,
		toNullString(rep.Mutation),
		toNullString(rep.Gender),
		toNullString(rep.ImagePath),
		rep.CreatedAt.UTC(),
		rep.UpdatedAt.UTC(),
	)
	if err := row.Scan(&rep.ID); err != nil {
		return fmt.Errorf("insert reptile: %w", err)
	}
	return nil
}

func (r *ReptilesRepo) Update(ctx context.Context, rep reptiles.Reptile) error {
	res, err := r.db.ExecContext(ctx, r.d.rebind(`
		UPDATE reptiles
		SET
			name = ?,
			date_of_birth = ?,
			species = ?,
			mutation = ?,
			gender = ?,
			image_path = ?,
			updated_at = ?
		WHERE id = ?
	`),
		rep.Name,
		toNullDate(rep.DateOfBirth),
		rep.Species,
		toNullString(rep.Mutation),
		toNullString(rep.Gender),
		toNullString(rep.ImagePath),
		rep.UpdatedAt.UTC(),
		rep.ID,
	)
	if err != nil {
		return fmt.Errorf("update reptile: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reptiles.ErrNotFound
	}
	return nil
}

func (r *ReptilesRepo) GetByID(ctx context.Context, id int64) (reptiles.Reptile, error) {
	row := r.db.QueryRowContext(ctx, r.d.rebind(`SELECT `+reptileColumns+` FROM reptiles WHERE id = ?`), id)
	rep, err := scanReptile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reptiles.Reptile{}, reptiles.ErrNotFound
	}
	if err != nil {
		return reptiles.Reptile{}, err
	}
	return rep, nil
}

func (r *ReptilesRepo) List(ctx context.Context) ([]reptiles.Reptile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+reptileColumns+` FROM reptiles ORDER BY `+r.d.nameOrder())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reptiles.Reptile, 0)
	for rows.Next() {
		rep, err := scanReptile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Delete borra registros de las seis tablas y el reptil en una transacción.
// Si el reptil no existe no queda nada borrado.
func (r *ReptilesRepo) Delete(ctx context.Context, id int64) error {
	return WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		for _, c := range records.Categories {
			if _, err := tx.ExecContext(ctx, r.d.rebind(`DELETE FROM `+c.Plural()+` WHERE reptile_id = ?`), id); err != nil {
				return fmt.Errorf("delete %s: %w", c.Plural(), err)
			}
		}

		res, err := tx.ExecContext(ctx, r.d.rebind(`DELETE FROM reptiles WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete reptile: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return reptiles.ErrNotFound
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReptile(s scanner) (reptiles.Reptile, error) {
	var (
		rep                    reptiles.Reptile
		dob                    sql.NullTime
		mutation, gender, path sql.NullString
	)
	if err := s.Scan(
		&rep.ID,
		&rep.Name,
		&dob,
		&rep.Species,
		&mutation,
		&gender,
		&path,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	); err != nil {
		return reptiles.Reptile{}, err
	}

	rep.DateOfBirth = fromNullDate(dob)
	rep.Mutation = fromNullString(mutation)
	rep.Gender = fromNullString(gender)
	rep.ImagePath = fromNullString(path)
	rep.CreatedAt = utc(rep.CreatedAt)
	rep.UpdatedAt = utc(rep.UpdatedAt)
	return rep, nil
}
