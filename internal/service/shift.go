package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/pos_system/internal/logging"
	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/Skotchmaster/pos_system/internal/repo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShiftService is the ledger of cashier working sessions: at most one open
// shift per user, opens are idempotent, closed shifts are never touched again.
type ShiftService struct {
	Repo *repo.GormRepo
}

func (s *ShiftService) Current(ctx context.Context, userID uint) (*models.Shift, error) {
	return s.Repo.GetOpenShift(ctx, userID)
}

// Open returns the user's open shift, creating one when none exists. Calling
// it twice without an intervening close returns the same shift both times.
func (s *ShiftService) Open(ctx context.Context, userID uint, openingCash decimal.Decimal) (*models.Shift, error) {
	existing, err := s.Repo.GetOpenShift(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	shift, err := s.Repo.CreateOpenShift(ctx, userID, openingCash)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a concurrent open; the winner's shift is
			// the one this call should have returned anyway.
			return s.Repo.GetOpenShift(ctx, userID)
		}
		return nil, err
	}

	logging.FromContext(ctx).Info("shift_opened",
		"shift_id", shift.ID, "user_id", userID, "opening_cash", openingCash.String())
	return shift, nil
}

// Close stamps the user's open shift with the counted cash. Without an open
// shift it fails with ErrNoOpenShift and mutates nothing.
func (s *ShiftService) Close(ctx context.Context, userID uint, closingCash decimal.Decimal) (*models.Shift, error) {
	current, err := s.Repo.GetOpenShift(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoOpenShift
	}

	closed, err := s.Repo.CloseShift(ctx, current, closingCash)
	if err != nil {
		return nil, err
	}
	if closed == nil {
		// Closed out from under us between the lookup and the update.
		return nil, ErrNoOpenShift
	}

	logging.FromContext(ctx).Info("shift_closed",
		"shift_id", closed.ID, "user_id", userID, "closing_cash", closingCash.String())
	return closed, nil
}
