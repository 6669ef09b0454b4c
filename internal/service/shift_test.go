package service

import (
	"sync"
	"testing"

	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOpenShiftIdempotent(t *testing.T) {
	db, shifts, _ := newServices(t)
	ctx := t.Context()

	first, err := shifts.Open(ctx, 1, dec("100.00"))
	require.NoError(t, err)
	require.Equal(t, models.ShiftStatusOpen, first.Status)
	require.True(t, first.OpeningCash.Equal(dec("100.00")))

	// Second open without a close returns the same shift, unchanged.
	second, err := shifts.Open(ctx, 1, dec("999.00"))
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.True(t, second.OpeningCash.Equal(dec("100.00")))

	var count int64
	require.NoError(t, db.Model(&models.Shift{}).Where("user_id = ?", 1).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestOpenShiftPerUser(t *testing.T) {
	_, shifts, _ := newServices(t)
	ctx := t.Context()

	a, err := shifts.Open(ctx, 1, dec("100.00"))
	require.NoError(t, err)
	b, err := shifts.Open(ctx, 2, dec("50.00"))
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestCloseShift(t *testing.T) {
	_, shifts, _ := newServices(t)
	ctx := t.Context()

	opened, err := shifts.Open(ctx, 1, dec("100.00"))
	require.NoError(t, err)

	closed, err := shifts.Close(ctx, 1, dec("340.50"))
	require.NoError(t, err)
	require.Equal(t, opened.ID, closed.ID)
	require.Equal(t, models.ShiftStatusClosed, closed.Status)
	require.NotNil(t, closed.EndTime)
	require.NotNil(t, closed.ClosingCash)
	require.True(t, closed.ClosingCash.Equal(dec("340.50")))

	// The slot is free again: the next open creates a fresh shift.
	reopened, err := shifts.Open(ctx, 1, dec("200.00"))
	require.NoError(t, err)
	require.NotEqual(t, closed.ID, reopened.ID)
}

func TestCloseShiftWithoutOpen(t *testing.T) {
	db, shifts, _ := newServices(t)

	_, err := shifts.Close(t.Context(), 7, dec("10.00"))
	require.ErrorIs(t, err, ErrNoOpenShift)

	var count int64
	require.NoError(t, db.Model(&models.Shift{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestOpenShiftConcurrent(t *testing.T) {
	db, shifts, _ := newServices(t)
	ctx := t.Context()

	const attempts = 8
	results := make([]*models.Shift, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = shifts.Open(ctx, 42, decimal.NewFromInt(100))
		}(i)
	}
	wg.Wait()

	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		require.Equal(t, results[0].ID, results[i].ID)
	}

	var count int64
	require.NoError(t, db.Model(&models.Shift{}).
		Where("user_id = ? AND status = ?", 42, models.ShiftStatusOpen).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}
