package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"herptracker/internal/domain/records"
	"herptracker/internal/domain/reptiles"
)

func TestStore_RecordsNeedReptile(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	rec := records.Record{ReptileID: 1, Category: records.CategoryFeeding, RecordedAt: time.Now().UTC()}
	require.ErrorIs(t, s.Records().Create(ctx, &rec), records.ErrReptileNotFound)
	require.Zero(t, rec.ID)
}

func TestStore_OrderingAndCascade(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	reps, recs := s.Reptiles(), s.Records()

	rex := reptiles.Reptile{Name: "Rex", Species: "Pogona vitticeps"}
	ana := reptiles.Reptile{Name: "Ana", Species: "Python regius"}
	require.NoError(t, reps.Create(ctx, &rex))
	require.NoError(t, reps.Create(ctx, &ana))

	list, err := reps.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ana", list[0].Name)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	late := records.Record{ReptileID: rex.ID, Category: records.CategoryFeeding, RecordedAt: base.Add(time.Hour)}
	early := records.Record{ReptileID: rex.ID, Category: records.CategoryFeeding, RecordedAt: base}
	require.NoError(t, recs.Create(ctx, &late))
	require.NoError(t, recs.Create(ctx, &early))

	got, err := recs.ListByReptile(ctx, records.CategoryFeeding, rex.ID, records.ListFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, late.ID, got[0].ID)

	anaRec := records.Record{ReptileID: ana.ID, Category: records.CategoryFeeding, RecordedAt: base}
	require.NoError(t, recs.Create(ctx, &anaRec))

	require.NoError(t, reps.Delete(ctx, rex.ID))
	all, err := recs.ListAll(ctx, records.CategoryFeeding)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, ana.ID, all[0].ReptileID)

	require.ErrorIs(t, reps.Delete(ctx, rex.ID), reptiles.ErrNotFound)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	m := "hypo"
	rex := reptiles.Reptile{Name: "Rex", Species: "Pogona vitticeps", Mutation: &m}
	require.NoError(t, s.Reptiles().Create(ctx, &rex))

	m = "changed"
	got, err := s.Reptiles().GetByID(ctx, rex.ID)
	require.NoError(t, err)
	require.Equal(t, "hypo", *got.Mutation)
}
