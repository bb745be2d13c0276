package participant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avolkov18/event-management-backend/internal/event"
)

func openMembershipDB(t *testing.T) (*gorm.DB, *event.Event) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"),
		&gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&event.Event{}, &Participant{}))

	e := &event.Event{
		Title:       "Go Meetup",
		Description: strings.Repeat("d", 50),
		Location:    "Berlin",
		CreatedBy:   1,
		StartAt:     time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(e).Error)
	return db, e
}

func TestAddDuplicateMembership(t *testing.T) {
	db, e := openMembershipDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.Add(&Participant{EventID: e.ID, UserID: 2}))

	// the unique index catches a duplicate that slipped past the service
	err := repo.Add(&Participant{EventID: e.ID, UserID: 2})
	require.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestAddAfterEventDeleted(t *testing.T) {
	db, e := openMembershipDB(t)
	repo := NewRepository(db)
	events := event.NewRepository(db)

	// event vanishes between the service's existence check and the insert
	require.NoError(t, events.DeleteCascade(e.ID, 1))

	err := repo.Add(&Participant{EventID: e.ID, UserID: 2})
	require.ErrorIs(t, err, event.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&Participant{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestRemoveNonMember(t *testing.T) {
	db, e := openMembershipDB(t)
	repo := NewRepository(db)

	require.ErrorIs(t, repo.Remove(e.ID, 2), ErrNotJoined)

	require.NoError(t, repo.Add(&Participant{EventID: e.ID, UserID: 2}))
	require.NoError(t, repo.Remove(e.ID, 2))
	require.ErrorIs(t, repo.Remove(e.ID, 2), ErrNotJoined)
}
