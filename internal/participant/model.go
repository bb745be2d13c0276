package participant

import (
	"time"

	"github.com/avolkov18/event-management-backend/internal/event"
)

// Participant is one row of the event membership relation. The unique index
// gives the set semantics: a user appears at most once per event. The
// foreign key keeps a membership row from outliving its event when a join
// races an event deletion.
type Participant struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	EventID  uint        `gorm:"not null;uniqueIndex:idx_event_participants_event_user" json:"event_id"`
	UserID   uint        `gorm:"not null;uniqueIndex:idx_event_participants_event_user;index" json:"user_id"`
	JoinedAt time.Time   `gorm:"autoCreateTime" json:"joined_at"`
	Event    event.Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Participant) TableName() string {
	return "event_participants"
}

// ParticipantInfo is the owner-facing view of one participant.
type ParticipantInfo struct {
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}
