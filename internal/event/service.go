package event

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/avolkov18/event-management-backend/config"
	"github.com/avolkov18/event-management-backend/internal/auditlog"
)

var (
	ErrNotFound            = errors.New("event does not exist")
	ErrNotOwner            = errors.New("you are not the owner of this event")
	ErrDescriptionTooShort = errors.New("description is too short")
	ErrLocationTooShort    = errors.New("location is too short")
	ErrInPast              = errors.New("event can't be in the past")
	ErrMissingOrder        = errors.New("order is empty")
	ErrInvalidOrder        = errors.New("wrong order")
)

const (
	minDescriptionLength = 50
	minLocationLength    = 5

	// The listing window of the previous implementation ends at absolute
	// index 5 no matter the offset, so larger offsets narrow the result
	// down to nothing. listPageSize is used by the conventional mode.
	listWindowEnd = 5
	listPageSize  = 5

	OrderLast = "last"
	OrderOwn  = "own"
)

type Service interface {
	CreateEvent(req *CreateEventRequest, actorID uint, ip string) (*Event, error)
	GetEventByID(id uint) (*Event, error)
	ListEvents(actorID uint, order string, offset int) ([]ListItem, error)
	UpdateEvent(id uint, req *UpdateEventRequest, actorID uint, ip string) error
	DeleteEvent(id uint, actorID uint, ip string) error
	GetStats(actorID uint) (*StatsResponse, error)
}

type service struct {
	repo              Repository
	auditSvc          auditlog.Service
	legacyWindow      bool
	revalidateUpdates bool
}

func NewService(r Repository, auditSvc auditlog.Service, cfg *config.Config) Service {
	return &service{
		repo:              r,
		auditSvc:          auditSvc,
		legacyWindow:      cfg.ListLegacyWindow,
		revalidateUpdates: cfg.UpdateRevalidatesContent,
	}
}

// validateContent enforces the creation-time content floors. Lengths are
// counted in characters, not bytes.
func validateContent(description, location string) error {
	if utf8.RuneCountInString(description) < minDescriptionLength {
		return ErrDescriptionTooShort
	}
	if utf8.RuneCountInString(location) < minLocationLength {
		return ErrLocationTooShort
	}
	return nil
}

// ===========================
// Create Event
func (s *service) CreateEvent(req *CreateEventRequest, actorID uint, ip string) (*Event, error) {
	if err := validateContent(req.Description, req.Location); err != nil {
		return nil, err
	}

	// Strictly in the future at validation time. Not re-checked on update.
	if !req.StartAt.After(time.Now()) {
		return nil, ErrInPast
	}

	e := &Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartAt:     req.StartAt,
		CreatedBy:   actorID,
	}

	if err := s.repo.Create(e); err != nil {
		s.audit(&actorID, nil, "EVENT_CREATED", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(&actorID, &e.ID, "EVENT_CREATED", map[string]interface{}{
		"title":    e.Title,
		"location": e.Location,
		"start_at": e.StartAt.Format(time.RFC3339),
	}, ip, "success")

	return e, nil
}

// ===========================
// Get Event by ID
func (s *service) GetEventByID(id uint) (*Event, error) {
	return s.repo.FindByID(id)
}

// ===========================
// List Events: two orderings, offset window
func (s *service) ListEvents(actorID uint, order string, offset int) ([]ListItem, error) {
	if order == "" {
		return nil, ErrMissingOrder
	}

	limit, off := s.window(offset)
	if limit == 0 {
		// Window already exhausted; still reject unknown orders first.
		if order != OrderLast && order != OrderOwn {
			return nil, ErrInvalidOrder
		}
		return []ListItem{}, nil
	}

	var (
		items []ListItem
		err   error
	)
	switch order {
	case OrderLast:
		items, err = s.repo.ListLatest(limit, off)
	case OrderOwn:
		items, err = s.repo.ListByCreator(actorID, limit, off)
	default:
		return nil, ErrInvalidOrder
	}
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []ListItem{}
	}
	return items, nil
}

// window translates an offset into a limit/offset pair. In legacy mode the
// slice is [offset:5]; otherwise it is a plain page [offset, offset+5).
func (s *service) window(offset int) (limit, off int) {
	if offset < 0 {
		offset = 0
	}
	if s.legacyWindow {
		if offset >= listWindowEnd {
			return 0, 0
		}
		return listWindowEnd - offset, offset
	}
	return listPageSize, offset
}

// ===========================
// Update Event (owner only)
func (s *service) UpdateEvent(id uint, req *UpdateEventRequest, actorID uint, ip string) error {
	// The old API validated content lengths only at creation; updates went
	// through unchecked. Kept that way unless the policy flag is on.
	if s.revalidateUpdates {
		if err := validateContent(req.Description, req.Location); err != nil {
			return err
		}
	}

	// Existence before ownership: a missing event reports not-found even
	// when the actor would not own it.
	e, err := s.repo.FindByID(id)
	if err != nil {
		s.audit(&actorID, &id, "EVENT_UPDATED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return err
	}
	if e.CreatedBy != actorID {
		s.audit(&actorID, &id, "EVENT_UPDATED", map[string]interface{}{
			"error": "not owner",
		}, ip, "failure")
		return ErrNotOwner
	}

	fields := EventFields{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartAt:     req.StartAt,
	}

	if err := s.repo.UpdateFields(id, actorID, fields); err != nil {
		s.audit(&actorID, &id, "EVENT_UPDATED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(&actorID, &id, "EVENT_UPDATED", map[string]interface{}{
		"title":    fields.Title,
		"location": fields.Location,
		"start_at": fields.StartAt.Format(time.RFC3339),
	}, ip, "success")

	return nil
}

// ===========================
// Delete Event (owner only, cascades participant rows)
func (s *service) DeleteEvent(id uint, actorID uint, ip string) error {
	e, err := s.repo.FindByID(id)
	if err != nil {
		s.audit(&actorID, &id, "EVENT_DELETED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return err
	}
	if e.CreatedBy != actorID {
		s.audit(&actorID, &id, "EVENT_DELETED", map[string]interface{}{
			"error": "not owner",
		}, ip, "failure")
		return ErrNotOwner
	}

	if err := s.repo.DeleteCascade(id, actorID); err != nil {
		s.audit(&actorID, &id, "EVENT_DELETED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(&actorID, &id, "EVENT_DELETED", nil, ip, "success")
	return nil
}

// ===========================
// Dashboard stats for the actor
func (s *service) GetStats(actorID uint) (*StatsResponse, error) {
	return s.repo.Stats(actorID)
}

func (s *service) audit(userID *uint, eventID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.LogAction(context.Background(), userID, eventID, action, details, ip, status)
}
