package participant

import (
	"errors"

	"gorm.io/gorm"

	"github.com/avolkov18/event-management-backend/internal/event"
)

type Repository interface {
	Add(p *Participant) error
	Remove(eventID, userID uint) error
	Exists(eventID, userID uint) (bool, error)
	ListByEvent(eventID uint) ([]ParticipantInfo, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Add inserts one membership row. The unique index on (event_id, user_id)
// backs up the service's already-joined check: a concurrent double join
// loses the race here and surfaces as ErrAlreadyJoined. The foreign key on
// event_id does the same for a join racing an event deletion: the insert
// fails instead of leaving a membership row for a deleted event.
func (r *repository) Add(p *Participant) error {
	if err := r.db.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyJoined
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return event.ErrNotFound
		}
		return err
	}
	return nil
}

// Remove deletes the membership row; removing a non-member reports
// ErrNotJoined rather than succeeding silently.
func (r *repository) Remove(eventID, userID uint) error {
	res := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&Participant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotJoined
	}
	return nil
}

func (r *repository) Exists(eventID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Participant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListByEvent(eventID uint) ([]ParticipantInfo, error) {
	var infos []ParticipantInfo
	err := r.db.Table("event_participants").
		Select("users.username, event_participants.joined_at").
		Joins("JOIN users ON users.id = event_participants.user_id").
		Where("event_participants.event_id = ?", eventID).
		Scan(&infos).Error
	return infos, err
}
