package event

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avolkov18/event-management-backend/config"
)

type fakeRepo struct {
	nextID uint
	events map[uint]*Event

	lastLimit  int
	lastOffset int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, events: make(map[uint]*Event)}
}

func (f *fakeRepo) Create(e *Event) error {
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	f.nextID++
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(id uint) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) UpdateFields(id, ownerID uint, fields EventFields) error {
	e, ok := f.events[id]
	if !ok || e.CreatedBy != ownerID {
		return ErrNotFound
	}
	e.Title = fields.Title
	e.Description = fields.Description
	e.Location = fields.Location
	e.StartAt = fields.StartAt
	return nil
}

func (f *fakeRepo) DeleteCascade(id, ownerID uint) error {
	e, ok := f.events[id]
	if !ok || e.CreatedBy != ownerID {
		return ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) sorted() []*Event {
	out := make([]*Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	// newest first, matching the created_at DESC ordering
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

func (f *fakeRepo) page(events []*Event, limit, offset int) []ListItem {
	f.lastLimit, f.lastOffset = limit, offset
	items := make([]ListItem, 0, limit)
	for i := offset; i < len(events) && i < offset+limit; i++ {
		e := events[i]
		items = append(items, ListItem{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			StartAt:     e.StartAt,
		})
	}
	return items
}

func (f *fakeRepo) ListLatest(limit, offset int) ([]ListItem, error) {
	return f.page(f.sorted(), limit, offset), nil
}

func (f *fakeRepo) ListByCreator(userID uint, limit, offset int) ([]ListItem, error) {
	var own []*Event
	for _, e := range f.sorted() {
		if e.CreatedBy == userID {
			own = append(own, e)
		}
	}
	return f.page(own, limit, offset), nil
}

func (f *fakeRepo) Stats(userID uint) (*StatsResponse, error) {
	stats := &StatsResponse{}
	for _, e := range f.events {
		if e.CreatedBy != userID {
			continue
		}
		stats.TotalEvents++
		if e.StartAt.After(time.Now()) {
			stats.UpcomingEvents++
		}
	}
	return stats, nil
}

func newTestService(repo Repository, legacy bool) Service {
	return NewService(repo, nil, &config.Config{ListLegacyWindow: legacy})
}

func validCreateRequest() *CreateEventRequest {
	return &CreateEventRequest{
		Title:       "Go Meetup",
		Description: strings.Repeat("d", 50),
		Location:    "Berlin",
		StartAt:     time.Now().Add(24 * time.Hour),
	}
}

func TestCreateEventValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateEventRequest)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(r *CreateEventRequest) {},
		},
		{
			name: "description one short of the floor",
			mutate: func(r *CreateEventRequest) {
				r.Description = strings.Repeat("d", 49)
			},
			wantErr: ErrDescriptionTooShort,
		},
		{
			name: "description counted in runes, not bytes",
			mutate: func(r *CreateEventRequest) {
				r.Description = strings.Repeat("ы", 50)
			},
		},
		{
			name: "location one short of the floor",
			mutate: func(r *CreateEventRequest) {
				r.Location = "Gent"
			},
			wantErr: ErrLocationTooShort,
		},
		{
			name: "start in the past",
			mutate: func(r *CreateEventRequest) {
				r.StartAt = time.Now().Add(-time.Minute)
			},
			wantErr: ErrInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newTestService(repo, true)

			req := validCreateRequest()
			tt.mutate(req)

			e, err := svc.CreateEvent(req, 1, "10.0.0.1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, repo.events)
				return
			}
			require.NoError(t, err)
			require.NotZero(t, e.ID)
			require.Equal(t, uint(1), e.CreatedBy)
		})
	}
}

func TestListEventsOrderValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, true)

	_, err := svc.ListEvents(1, "", 0)
	require.ErrorIs(t, err, ErrMissingOrder)

	_, err = svc.ListEvents(1, "newest", 0)
	require.ErrorIs(t, err, ErrInvalidOrder)

	// unknown order is rejected even when the window is already empty
	_, err = svc.ListEvents(1, "newest", 9)
	require.ErrorIs(t, err, ErrInvalidOrder)
}

func TestListEventsLegacyWindow(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		wantLimit  int
		wantOffset int
		wantEmpty  bool
	}{
		{name: "zero offset", offset: 0, wantLimit: 5, wantOffset: 0},
		{name: "mid window", offset: 3, wantLimit: 2, wantOffset: 3},
		{name: "at window end", offset: 5, wantEmpty: true},
		{name: "past window end", offset: 7, wantEmpty: true},
		{name: "negative treated as zero", offset: -2, wantLimit: 5, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newTestService(repo, true)

			for i := 0; i < 8; i++ {
				req := validCreateRequest()
				req.StartAt = time.Now().Add(time.Duration(i+1) * time.Hour)
				_, err := svc.CreateEvent(req, 1, "")
				require.NoError(t, err)
			}

			items, err := svc.ListEvents(1, OrderLast, tt.offset)
			require.NoError(t, err)
			if tt.wantEmpty {
				require.Empty(t, items)
				return
			}
			require.Len(t, items, tt.wantLimit)
			require.Equal(t, tt.wantLimit, repo.lastLimit)
			require.Equal(t, tt.wantOffset, repo.lastOffset)
		})
	}
}

func TestListEventsConventionalWindow(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, false)

	for i := 0; i < 12; i++ {
		_, err := svc.CreateEvent(validCreateRequest(), 1, "")
		require.NoError(t, err)
	}

	items, err := svc.ListEvents(1, OrderLast, 5)
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, 5, repo.lastOffset)

	items, err = svc.ListEvents(1, OrderLast, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestListEventsOwnOrder(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, true)

	_, err := svc.CreateEvent(validCreateRequest(), 1, "")
	require.NoError(t, err)
	_, err = svc.CreateEvent(validCreateRequest(), 2, "")
	require.NoError(t, err)

	items, err := svc.ListEvents(1, OrderOwn, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = svc.ListEvents(3, OrderOwn, 0)
	require.NoError(t, err)
	require.Empty(t, items)
	require.NotNil(t, items)
}

func TestUpdateEventOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, true)

	created, err := svc.CreateEvent(validCreateRequest(), 1, "")
	require.NoError(t, err)

	upd := &UpdateEventRequest{
		Title:       "Renamed",
		Description: "short",
		Location:    "x",
		StartAt:     time.Now().Add(-time.Hour),
	}

	err = svc.UpdateEvent(999, upd, 1, "")
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.UpdateEvent(created.ID, upd, 2, "")
	require.ErrorIs(t, err, ErrNotOwner)

	// the owner may shorten content and move the start into the past;
	// those floors apply at creation only
	err = svc.UpdateEvent(created.ID, upd, 1, "")
	require.NoError(t, err)

	got, err := svc.GetEventByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Title)
	require.Equal(t, "short", got.Description)
}

func TestUpdateEventRevalidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, &config.Config{
		ListLegacyWindow:         true,
		UpdateRevalidatesContent: true,
	})

	created, err := svc.CreateEvent(validCreateRequest(), 1, "")
	require.NoError(t, err)

	err = svc.UpdateEvent(created.ID, &UpdateEventRequest{
		Title:       "Renamed",
		Description: "short",
		Location:    "Berlin",
		StartAt:     time.Now().Add(time.Hour),
	}, 1, "")
	require.ErrorIs(t, err, ErrDescriptionTooShort)
}

func TestDeleteEventOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, true)

	created, err := svc.CreateEvent(validCreateRequest(), 1, "")
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteEvent(999, 1, ""), ErrNotFound)
	require.ErrorIs(t, svc.DeleteEvent(created.ID, 2, ""), ErrNotOwner)

	require.NoError(t, svc.DeleteEvent(created.ID, 1, ""))

	_, err = svc.GetEventByID(created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
