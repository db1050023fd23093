package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "wanderlust/internal/models/db_models"
)

type ItineraryRepository interface {
	Save(ctx context.Context, it *dbm.Itinerary) (uuid.UUID, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*dbm.Itinerary, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]dbm.Itinerary, int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

// Save creates the itinerary, or replaces the days and activities of an existing one
// owned by the same user.
func (r *itineraryRepository) Save(ctx context.Context, it *dbm.Itinerary) (uuid.UUID, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing dbm.Itinerary
		needCreate := it.ID == uuid.Nil
		if !needCreate {
			err := tx.Where("id = ? AND user_id = ?", it.ID, it.UserID).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				needCreate = true
			case err != nil:
				return err
			}
		}

		if needCreate {
			if err := tx.Omit("Days").Create(it).Error; err != nil {
				return err
			}
		} else {
			it.CreatedAt = existing.CreatedAt
			if err := tx.Omit("Days").Save(it).Error; err != nil {
				return err
			}

			subDayIDs := tx.Model(&dbm.ItineraryDay{}).
				Select("id").
				Where("itinerary_id = ?", it.ID)
			if err := tx.Where("itinerary_day_id IN (?)", subDayIDs).
				Delete(&dbm.ItineraryActivity{}).Error; err != nil {
				return err
			}
			if err := tx.Where("itinerary_id = ?", it.ID).
				Delete(&dbm.ItineraryDay{}).Error; err != nil {
				return err
			}
		}

		for i := range it.Days {
			day := &it.Days[i]
			day.ID = uuid.Nil
			day.ItineraryID = it.ID
			if err := tx.Omit("Activities").Create(day).Error; err != nil {
				return err
			}
			if len(day.Activities) == 0 {
				continue
			}
			for j := range day.Activities {
				day.Activities[j].ID = uuid.Nil
				day.Activities[j].ItineraryDayID = day.ID
			}
			if err := tx.Create(&day.Activities).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return it.ID, nil
}

// GetByID returns nil, nil when the itinerary does not exist for that user.
func (r *itineraryRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*dbm.Itinerary, error) {
	var it dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC")
		}).
		Preload("Days.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&it).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

// ListByUser returns one page of itinerary headers, newest first, without days.
func (r *itineraryRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]dbm.Itinerary, int64, error) {
	var (
		items []dbm.Itinerary
		total int64
	)

	q := r.db.WithContext(ctx).Model(&dbm.Itinerary{}).Where("user_id = ?", userID)
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Session(&gorm.Session{}).Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itineraryRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&dbm.Itinerary{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true

		subDayIDs := tx.Model(&dbm.ItineraryDay{}).Select("id").Where("itinerary_id = ?", id)
		if err := tx.Where("itinerary_day_id IN (?)", subDayIDs).Delete(&dbm.ItineraryActivity{}).Error; err != nil {
			return err
		}
		return tx.Where("itinerary_id = ?", id).Delete(&dbm.ItineraryDay{}).Error
	})
	return deleted, err
}
