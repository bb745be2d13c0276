package event

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(e *Event) error
	FindByID(id uint) (*Event, error)
	UpdateFields(id, ownerID uint, fields EventFields) error
	DeleteCascade(id, ownerID uint) error
	ListLatest(limit, offset int) ([]ListItem, error)
	ListByCreator(userID uint, limit, offset int) ([]ListItem, error)
	Stats(userID uint) (*StatsResponse, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(e *Event) error {
	return r.db.Create(e).Error
}

func (r *repository) FindByID(id uint) (*Event, error) {
	var e Event
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// UpdateFields overwrites the mutable columns. The ownerID guard in the
// WHERE clause makes the write a no-op if the event was deleted or (somehow)
// reassigned between the service's checks and this statement, so a stale
// check can never clobber someone else's event.
func (r *repository) UpdateFields(id, ownerID uint, fields EventFields) error {
	res := r.db.Model(&Event{}).
		Where("id = ? AND created_by = ?", id, ownerID).
		Updates(map[string]interface{}{
			"title":       fields.Title,
			"description": fields.Description,
			"location":    fields.Location,
			"start_at":    fields.StartAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes the event and its participant rows in one
// transaction, guarded by ownership the same way as UpdateFields.
func (r *repository) DeleteCascade(id, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_participants WHERE event_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND created_by = ?", id, ownerID).Delete(&Event{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Rolls back the participant deletes above.
			return ErrNotFound
		}
		return nil
	})
}

// ListLatest returns the newest events first
func (r *repository) ListLatest(limit, offset int) ([]ListItem, error) {
	var items []ListItem
	err := r.db.Model(&Event{}).
		Select("id, title, description, location, start_at").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&items).Error
	return items, err
}

// ListByCreator returns the actor's own events, newest first
func (r *repository) ListByCreator(userID uint, limit, offset int) ([]ListItem, error) {
	var items []ListItem
	err := r.db.Model(&Event{}).
		Select("id, title, description, location, start_at").
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&items).Error
	return items, err
}

func (r *repository) Stats(userID uint) (*StatsResponse, error) {
	var stats StatsResponse
	var total, upcoming, participants int64

	if err := r.db.Model(&Event{}).
		Where("created_by = ?", userID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&Event{}).
		Where("created_by = ? AND start_at > ?", userID, time.Now()).
		Count(&upcoming).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("event_participants").
		Joins("JOIN events ON events.id = event_participants.event_id").
		Where("events.created_by = ?", userID).
		Count(&participants).Error; err != nil {
		return nil, err
	}

	stats.TotalEvents = int(total)
	stats.UpcomingEvents = int(upcoming)
	stats.TotalParticipants = int(participants)
	return &stats, nil
}
