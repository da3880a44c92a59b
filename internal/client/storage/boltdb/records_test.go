package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/usersync/internal/client/storage"
	"github.com/iudanet/usersync/internal/models"
)

func TestUpsertAndLoadAll_OrderedByID(t *testing.T) {
	ctx := context.Background()
	store, _ := createTestStorage(t)

	for _, rec := range []models.Record{
		{ID: 10, Name: "j", Age: 1},
		{ID: -1, Name: "tmp", Age: 2},
		{ID: 0, Name: "zero", Age: 3},
		{ID: -3, Name: "tmp3", Age: 4},
		{ID: 2, Name: "b", Age: 5},
	} {
		require.NoError(t, store.Upsert(ctx, rec))
	}

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)

	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{-3, -1, 0, 2, 10}, ids)
}

func TestLoadAll_Empty(t *testing.T) {
	store, _ := createTestStorage(t)

	records, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestUpsert_Overwrites(t *testing.T) {
	ctx := context.Background()
	store, _ := createTestStorage(t)

	require.NoError(t, store.Upsert(ctx, models.Record{ID: 1, Name: "old", Age: 1}))
	require.NoError(t, store.Upsert(ctx, models.Record{ID: 1, Name: "new", Age: 2}))

	rec, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.Record{ID: 1, Name: "new", Age: 2}, *rec)
}

func TestGet_NotFound(t *testing.T) {
	store, _ := createTestStorage(t)

	rec, err := store.Get(context.Background(), 99)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
	assert.Nil(t, rec)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := createTestStorage(t)

	require.NoError(t, store.Upsert(ctx, models.Record{ID: 3, Name: "x", Age: 1}))
	require.NoError(t, store.Delete(ctx, 3))

	_, err := store.Get(ctx, 3)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	// Удаление отсутствующей записи не ошибка
	assert.NoError(t, store.Delete(ctx, 3))
}

func TestRename(t *testing.T) {
	tests := []struct {
		name    string
		seed    []models.Record
		oldID   int64
		newID   int64
		wantErr error
		want    []models.Record
	}{
		{
			name:  "temp to server id",
			seed:  []models.Record{{ID: -1, Name: "bob", Age: 20}},
			oldID: -1,
			newID: 7,
			want:  []models.Record{{ID: 7, Name: "bob", Age: 20}},
		},
		{
			name:    "old id missing",
			seed:    []models.Record{{ID: 7, Name: "bob", Age: 20}},
			oldID:   -1,
			newID:   8,
			wantErr: storage.ErrRecordNotFound,
			want:    []models.Record{{ID: 7, Name: "bob", Age: 20}},
		},
		{
			name:    "new id taken",
			seed:    []models.Record{{ID: -1, Name: "tmp", Age: 1}, {ID: 7, Name: "bob", Age: 20}},
			oldID:   -1,
			newID:   7,
			wantErr: storage.ErrRecordExists,
			want:    []models.Record{{ID: -1, Name: "tmp", Age: 1}, {ID: 7, Name: "bob", Age: 20}},
		},
		{
			name:  "same id",
			seed:  []models.Record{{ID: 3, Name: "c", Age: 3}},
			oldID: 3,
			newID: 3,
			want:  []models.Record{{ID: 3, Name: "c", Age: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, _ := createTestStorage(t)
			for _, rec := range tt.seed {
				require.NoError(t, store.Upsert(ctx, rec))
			}

			err := store.Rename(ctx, tt.oldID, tt.newID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			records, err := store.LoadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, records)
		})
	}
}

func TestNextTempID(t *testing.T) {
	tests := []struct {
		name string
		seed []int64
		want int64
	}{
		{name: "empty store", want: -1},
		{name: "only server ids", seed: []int64{1, 5}, want: -1},
		{name: "zero present", seed: []int64{0, 3}, want: -1},
		{name: "temp present", seed: []int64{-1, 4}, want: -2},
		{name: "gap", seed: []int64{-5, -1}, want: -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, _ := createTestStorage(t)
			for _, id := range tt.seed {
				require.NoError(t, store.Upsert(ctx, models.Record{ID: id, Name: "n", Age: 1}))
			}

			got, err := store.NextTempID(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextTempID_Sequence(t *testing.T) {
	ctx := context.Background()
	store, _ := createTestStorage(t)

	for _, want := range []int64{-1, -2, -3} {
		id, err := store.NextTempID(ctx)
		require.NoError(t, err)
		require.Equal(t, want, id)
		require.NoError(t, store.Upsert(ctx, models.Record{ID: id, Name: "t", Age: 1}))
	}
}
