package event

import (
	"time"
)

// Event is owned by its creator; CreatedBy and CreatedAt never change after
// insert. Participants live in the event_participants table (see the
// participant package).
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:varchar(1024);not null" json:"description"`
	Location    string    `gorm:"type:varchar(255);not null" json:"location"`
	CreatedBy   uint      `gorm:"not null;index" json:"created_by"`
	StartAt     time.Time `gorm:"not null" json:"start_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}

// ============================
// Create Event Request
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description" binding:"required,max=1024"`
	Location    string    `json:"location" binding:"required,max=255"`
	StartAt     time.Time `json:"start_at" binding:"required"`
}

// ============================
// Update Event Request. All fields required, missing ones reject the call.
type UpdateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description" binding:"required,max=1024"`
	Location    string    `json:"location" binding:"required,max=255"`
	StartAt     time.Time `json:"start_at" binding:"required"`
}

// EventFields carries the mutable fields down to the repository. CreatedBy,
// CreatedAt and the participant set are never touched by an update.
type EventFields struct {
	Title       string
	Description string
	Location    string
	StartAt     time.Time
}

// ListItem is the listing projection: no creator, no participants.
type ListItem struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartAt     time.Time `json:"start_at"`
}

// ============================
// Dashboard stats for the actor's own events
type StatsResponse struct {
	TotalEvents       int `json:"total_events"`
	UpcomingEvents    int `json:"upcoming_events"`
	TotalParticipants int `json:"total_participants"`
}
