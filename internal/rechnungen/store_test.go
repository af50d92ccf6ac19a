package rechnungen

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingID int64 = 1 << 40

// runStoreContract exercises the behaviour every Store must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("list empty", func(t *testing.T) {
		s := newStore(t)

		records, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("create then get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		rec := &Record{FirstNumber: 5, SecondNumber: 10, Operator: "+", Result: 15}
		require.NoError(t, s.Create(ctx, rec))
		assert.Positive(t, rec.ID)

		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, *rec, *got)
	})

	t.Run("ids are unique and increasing", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var last int64
		for i := 0; i < 3; i++ {
			rec := &Record{FirstNumber: float64(i), SecondNumber: 1, Operator: "*", Result: float64(i)}
			require.NoError(t, s.Create(ctx, rec))
			assert.Greater(t, rec.ID, last)
			last = rec.ID
		}

		records, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)
		for i := 1; i < len(records); i++ {
			assert.Less(t, records[i-1].ID, records[i].ID)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Get(context.Background(), missingID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		rec := &Record{FirstNumber: 5, SecondNumber: 10, Operator: "+", Result: 15}
		require.NoError(t, s.Create(ctx, rec))

		updated := &Record{ID: rec.ID, FirstNumber: 0, SecondNumber: 4, Operator: "-", Result: -4}
		require.NoError(t, s.Update(ctx, updated))

		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, *updated, *got)
	})

	t.Run("update missing", func(t *testing.T) {
		s := newStore(t)

		err := s.Update(context.Background(), &Record{ID: missingID, FirstNumber: 1, SecondNumber: 1, Operator: "+", Result: 2})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		rec := &Record{FirstNumber: 9, SecondNumber: 3, Operator: "/", Result: 3}
		require.NoError(t, s.Create(ctx, rec))
		require.NoError(t, s.Delete(ctx, rec.ID))

		_, err := s.Get(ctx, rec.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, s.Delete(ctx, rec.ID), ErrNotFound)
	})

	t.Run("concurrent writes to different ids", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const workers = 8
		ids := make([]int64, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				rec := &Record{FirstNumber: float64(i), SecondNumber: 2, Operator: "*", Result: float64(i) * 2}
				if err := s.Create(ctx, rec); err != nil {
					errs[i] = err
					return
				}
				ids[i] = rec.ID

				errs[i] = s.Update(ctx, &Record{ID: rec.ID, FirstNumber: float64(i), SecondNumber: 3, Operator: "+", Result: float64(i) + 3})
			}(i)
		}
		wg.Wait()

		seen := make(map[int64]bool, workers)
		for i := 0; i < workers; i++ {
			require.NoError(t, errs[i], "worker %d", i)
			assert.False(t, seen[ids[i]], "id %d handed out twice", ids[i])
			seen[ids[i]] = true

			got, err := s.Get(ctx, ids[i])
			require.NoError(t, err)
			assert.Equal(t, Record{ID: ids[i], FirstNumber: float64(i), SecondNumber: 3, Operator: "+", Result: float64(i) + 3}, *got)
		}

		records, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, records, workers)
	})

	t.Run("concurrent updates to one id", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		rec := &Record{FirstNumber: 1, SecondNumber: 1, Operator: "+", Result: 2}
		require.NoError(t, s.Create(ctx, rec))

		const workers = 8
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = s.Update(ctx, &Record{ID: rec.ID, FirstNumber: float64(i), SecondNumber: float64(i), Operator: "*", Result: float64(i * i)})
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			require.NoError(t, err, "worker %d", i)
		}

		// The last writer wins; its operands and result stay together.
		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "*", got.Operator)
		assert.Equal(t, got.FirstNumber, got.SecondNumber)
		assert.Equal(t, got.FirstNumber*got.SecondNumber, got.Result)
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)

		assert.NoError(t, s.Ping(context.Background()))
	})
}
