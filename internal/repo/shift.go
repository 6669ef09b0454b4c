package repo

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOpenShift returns the user's open shift, or nil when there is none.
func (r *GormRepo) GetOpenShift(ctx context.Context, userID uint) (*models.Shift, error) {
	var shift models.Shift
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.ShiftStatusOpen).
		First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

// CreateOpenShift inserts a new open shift. The unique index on
// active_user_id makes a second concurrent insert for the same user fail
// with gorm.ErrDuplicatedKey, which the service treats as "someone else
// already opened it".
func (r *GormRepo) CreateOpenShift(ctx context.Context, userID uint, openingCash decimal.Decimal) (*models.Shift, error) {
	active := userID
	shift := models.Shift{
		UserID:       userID,
		ActiveUserID: &active,
		StartTime:    time.Now(),
		OpeningCash:  openingCash,
		Status:       models.ShiftStatusOpen,
	}
	if err := r.DB.WithContext(ctx).Create(&shift).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

// CloseShift stamps the end of the shift and releases the active_user_id
// slot so the user can open a new one.
func (r *GormRepo) CloseShift(ctx context.Context, shift *models.Shift, closingCash decimal.Decimal) (*models.Shift, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"end_time":       now,
		"closing_cash":   closingCash,
		"status":         models.ShiftStatusClosed,
		"active_user_id": nil,
	}
	res := r.DB.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ? AND status = ?", shift.ID, models.ShiftStatusOpen).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var closed models.Shift
	if err := r.DB.WithContext(ctx).First(&closed, shift.ID).Error; err != nil {
		return nil, err
	}
	return &closed, nil
}
