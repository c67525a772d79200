package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"herptracker/internal/adapters/storage/sqlite"
	"herptracker/internal/domain/records"
	"herptracker/internal/domain/reptiles"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "herps.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }
func at(h int) time.Time { return time.Date(2024, 5, 1, h, 0, 0, 0, time.UTC) }

func createReptile(t *testing.T, repo *ReptilesRepo, name string) reptiles.Reptile {
	t.Helper()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rep := reptiles.Reptile{Name: name, Species: "Pogona vitticeps", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), &rep))
	require.NotZero(t, rep.ID)
	return rep
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE x = ? AND y = ?"
	require.Equal(t, q, SQLite.rebind(q))
	require.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", Postgres.rebind(q))
}

func TestReptilesRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewReptilesRepo(openTestDB(t), SQLite)

	dob := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 12, 30, 0, 123456000, time.UTC)
	rep := reptiles.Reptile{
		Name:        "Rex",
		Species:     "Pogona vitticeps",
		Mutation:    strPtr("hypo"),
		DateOfBirth: &dob,
		ImagePath:   strPtr("abc.png"),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, repo.Create(ctx, &rep))

	got, err := repo.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	require.Equal(t, "Rex", got.Name)
	require.Equal(t, "hypo", *got.Mutation)
	require.Nil(t, got.Gender)
	require.NotNil(t, got.DateOfBirth)
	require.True(t, dob.Equal(*got.DateOfBirth))
	require.True(t, created.Equal(got.CreatedAt))
	require.Equal(t, time.UTC, got.CreatedAt.Location())

	got.Mutation = nil
	got.Gender = strPtr("female")
	got.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	require.Nil(t, again.Mutation)
	require.Equal(t, "female", *again.Gender)
	require.True(t, created.Equal(again.CreatedAt))

	_, err = repo.GetByID(ctx, 999)
	require.ErrorIs(t, err, reptiles.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, reptiles.Reptile{ID: 999, Name: "x", Species: "y"}), reptiles.ErrNotFound)
}

func TestReptilesRepo_ListOrdersByName(t *testing.T) {
	ctx := context.Background()
	repo := NewReptilesRepo(openTestDB(t), SQLite)

	createReptile(t, repo, "zeta")
	createReptile(t, repo, "Alpha")
	createReptile(t, repo, "beta")
	createReptile(t, repo, "Alpha")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)

	names := make([]string, 0, len(list))
	for _, r := range list {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"Alpha", "Alpha", "beta", "zeta"}, names)
	require.Less(t, list[0].ID, list[1].ID)
}

func TestRecordsRepo_CreateRequiresReptile(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	recs := NewRecordsRepo(db, SQLite)

	rec := records.Record{ReptileID: 42, Category: records.CategoryFeeding, RecordedAt: at(10)}
	require.ErrorIs(t, recs.Create(ctx, &rec), records.ErrReptileNotFound)

	all, err := recs.ListAll(ctx, records.CategoryFeeding)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestRecordsRepo_OrderingAndLimit(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	rep := createReptile(t, NewReptilesRepo(db, SQLite), "Rex")
	recs := NewRecordsRepo(db, SQLite)

	for _, h := range []int{10, 14, 8} {
		rec := records.Record{ReptileID: rep.ID, Category: records.CategoryFeeding, RecordedAt: at(h), FoodType: strPtr("cricket")}
		require.NoError(t, recs.Create(ctx, &rec))
	}
	// mismo instante que el de las 14: gana el id mayor
	tie := records.Record{ReptileID: rep.ID, Category: records.CategoryFeeding, RecordedAt: at(14)}
	require.NoError(t, recs.Create(ctx, &tie))

	list, err := recs.ListByReptile(ctx, records.CategoryFeeding, rep.ID, records.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 4)
	require.Equal(t, tie.ID, list[0].ID)
	require.True(t, at(14).Equal(list[1].RecordedAt))
	require.True(t, at(10).Equal(list[2].RecordedAt))
	require.True(t, at(8).Equal(list[3].RecordedAt))
	require.Equal(t, "cricket", *list[1].FoodType)
	require.Nil(t, list[0].FoodType)

	limited, err := recs.ListByReptile(ctx, records.CategoryFeeding, rep.ID, records.ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)

	all, err := recs.ListAll(ctx, records.CategoryFeeding)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		require.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestRecordsRepo_CategoryColumns(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	rep := createReptile(t, NewReptilesRepo(db, SQLite), "Rex")
	recs := NewRecordsRepo(db, SQLite)

	shed := records.Record{ReptileID: rep.ID, Category: records.CategoryShedding, RecordedAt: at(9), Complete: false}
	require.NoError(t, recs.Create(ctx, &shed))
	gotShed, err := recs.GetByID(ctx, records.CategoryShedding, shed.ID)
	require.NoError(t, err)
	require.False(t, gotShed.Complete)

	m := records.Record{ReptileID: rep.ID, Category: records.CategoryMeasurement, RecordedAt: at(9), LengthCM: floatPtr(42.5)}
	require.NoError(t, recs.Create(ctx, &m))
	gotM, err := recs.GetByID(ctx, records.CategoryMeasurement, m.ID)
	require.NoError(t, err)
	require.Equal(t, 42.5, *gotM.LengthCM)
	require.Nil(t, gotM.WeightG)

	gotM.LengthCM = nil
	gotM.WeightG = floatPtr(350)
	gotM.Notes = strPtr("after meal")
	require.NoError(t, recs.Update(ctx, gotM))
	gotM2, err := recs.GetByID(ctx, records.CategoryMeasurement, m.ID)
	require.NoError(t, err)
	require.Nil(t, gotM2.LengthCM)
	require.Equal(t, 350.0, *gotM2.WeightG)
	require.Equal(t, "after meal", *gotM2.Notes)

	_, err = recs.GetByID(ctx, records.CategoryFeeding, m.ID+100)
	require.ErrorIs(t, err, records.ErrNotFound)
	require.ErrorIs(t, recs.Delete(ctx, records.CategoryBreeding, 1), records.ErrNotFound)
}

func TestRecordsRepo_CleaningFilter(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	rep := createReptile(t, NewReptilesRepo(db, SQLite), "Rex")
	recs := NewRecordsRepo(db, SQLite)

	full := records.Record{ReptileID: rep.ID, Category: records.CategoryCleaning, RecordedAt: at(8), CleaningType: records.CleaningFull}
	spot := records.Record{ReptileID: rep.ID, Category: records.CategoryCleaning, RecordedAt: at(12), CleaningType: records.CleaningSpot}
	require.NoError(t, recs.Create(ctx, &full))
	require.NoError(t, recs.Create(ctx, &spot))

	list, err := recs.ListByReptile(ctx, records.CategoryCleaning, rep.ID, records.ListFilter{Limit: 1, CleaningType: records.CleaningFull})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, full.ID, list[0].ID)
}

func TestReptilesRepo_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	reps := NewReptilesRepo(db, SQLite)
	recs := NewRecordsRepo(db, SQLite)

	rex := createReptile(t, reps, "Rex")
	other := createReptile(t, reps, "Other")

	for _, c := range records.Categories {
		rec := records.Record{ReptileID: rex.ID, Category: c, RecordedAt: at(10), CleaningType: records.CleaningSpot, Complete: true}
		require.NoError(t, recs.Create(ctx, &rec))
	}
	kept := records.Record{ReptileID: other.ID, Category: records.CategoryFeeding, RecordedAt: at(10)}
	require.NoError(t, recs.Create(ctx, &kept))

	require.NoError(t, reps.Delete(ctx, rex.ID))
	_, err := reps.GetByID(ctx, rex.ID)
	require.ErrorIs(t, err, reptiles.ErrNotFound)

	for _, c := range records.Categories {
		list, err := recs.ListByReptile(ctx, c, rex.ID, records.ListFilter{})
		require.NoError(t, err)
		require.Empty(t, list, c)
	}

	all, err := recs.ListAll(ctx, records.CategoryFeeding)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, kept.ID, all[0].ID)

	require.ErrorIs(t, reps.Delete(ctx, rex.ID), reptiles.ErrNotFound)
}
