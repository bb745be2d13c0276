package participant

import (
	"context"
	"errors"

	"github.com/avolkov18/event-management-backend/internal/auditlog"
	"github.com/avolkov18/event-management-backend/internal/event"
)

var (
	ErrIsOwner       = errors.New("you are the owner of this event")
	ErrAlreadyJoined = errors.New("you are already in")
	ErrNotJoined     = errors.New("you are not in")
)

type Service interface {
	Join(eventID, actorID uint, ip string) error
	Leave(eventID, actorID uint, ip string) error
	ListParticipants(eventID, actorID uint) ([]ParticipantInfo, error)
}

type service struct {
	repo     Repository
	events   event.Repository
	auditSvc auditlog.Service
}

func NewService(r Repository, events event.Repository, auditSvc auditlog.Service) Service {
	return &service{
		repo:     r,
		events:   events,
		auditSvc: auditSvc,
	}
}

// ===========================
// Join Event (owners stay out of their own participant list)
func (s *service) Join(eventID, actorID uint, ip string) error {
	if err := s.checkJoin(eventID, actorID); err != nil {
		s.audit(&actorID, &eventID, "EVENT_JOINED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return err
	}

	if err := s.repo.Add(&Participant{EventID: eventID, UserID: actorID}); err != nil {
		s.audit(&actorID, &eventID, "EVENT_JOINED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(&actorID, &eventID, "EVENT_JOINED", nil, ip, "success")
	return nil
}

func (s *service) checkJoin(eventID, actorID uint) error {
	e, err := s.events.FindByID(eventID)
	if err != nil {
		return err
	}
	if e.CreatedBy == actorID {
		return ErrIsOwner
	}

	joined, err := s.repo.Exists(eventID, actorID)
	if err != nil {
		return err
	}
	if joined {
		return ErrAlreadyJoined
	}
	return nil
}

// ===========================
// Leave Event
func (s *service) Leave(eventID, actorID uint, ip string) error {
	if err := s.checkLeave(eventID, actorID); err != nil {
		s.audit(&actorID, &eventID, "EVENT_LEFT", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return err
	}

	if err := s.repo.Remove(eventID, actorID); err != nil {
		s.audit(&actorID, &eventID, "EVENT_LEFT", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(&actorID, &eventID, "EVENT_LEFT", nil, ip, "success")
	return nil
}

func (s *service) checkLeave(eventID, actorID uint) error {
	e, err := s.events.FindByID(eventID)
	if err != nil {
		return err
	}
	if e.CreatedBy == actorID {
		return ErrIsOwner
	}

	joined, err := s.repo.Exists(eventID, actorID)
	if err != nil {
		return err
	}
	if !joined {
		return ErrNotJoined
	}
	return nil
}

// ===========================
// List Participants, owner only. Existence is checked before ownership.
func (s *service) ListParticipants(eventID, actorID uint) ([]ParticipantInfo, error) {
	e, err := s.events.FindByID(eventID)
	if err != nil {
		return nil, err
	}

	if e.CreatedBy != actorID {
		return nil, event.ErrNotOwner
	}

	infos, err := s.repo.ListByEvent(eventID)
	if err != nil {
		return nil, err
	}
	if infos == nil {
		infos = []ParticipantInfo{}
	}
	return infos, nil
}

func (s *service) audit(userID *uint, eventID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.LogAction(context.Background(), userID, eventID, action, details, ip, status)
}
