package reports

import (
	"github.com/avolkov18/event-management-backend/internal/event"
	"github.com/avolkov18/event-management-backend/internal/participant"
)

// exports cap out at this many rows; nobody paginates a spreadsheet
const exportRowLimit = 1000

type Service interface {
	ExportParticipants(eventID, actorID uint, format string) ([]byte, string, string, error)
	ExportOwnEvents(actorID uint, format string) ([]byte, string, string, error)
}

type service struct {
	events       event.Repository
	participants participant.Service
	exporter     Exporter
}

func NewService(events event.Repository, participants participant.Service, exporter Exporter) Service {
	return &service{
		events:       events,
		participants: participants,
		exporter:     exporter,
	}
}

// ExportParticipants renders the participant list of one of the actor's own
// events. Existence and ownership checks are the same as for the JSON
// listing and run before any rendering.
func (s *service) ExportParticipants(eventID, actorID uint, format string) ([]byte, string, string, error) {
	rows, err := s.participants.ListParticipants(eventID, actorID)
	if err != nil {
		return nil, "", "", err
	}

	e, err := s.events.FindByID(eventID)
	if err != nil {
		return nil, "", "", err
	}

	return s.exporter.ExportParticipants(format, e.Title, rows)
}

// ExportOwnEvents renders every event the actor created, newest first.
func (s *service) ExportOwnEvents(actorID uint, format string) ([]byte, string, string, error) {
	rows, err := s.events.ListByCreator(actorID, exportRowLimit, 0)
	if err != nil {
		return nil, "", "", err
	}

	return s.exporter.ExportOwnEvents(format, rows)
}
