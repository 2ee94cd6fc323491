package repository

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/config/db"
	"github.com/encodergroup/portal-go/internal/domain/request"
	"github.com/encodergroup/portal-go/internal/testutils"
)

// Runs against a real Postgres. Set TEST_DB_DSN to reuse a database, or
// INTEGRATION=1 to let testcontainers start one.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("TEST_DB_DSN") == "" && os.Getenv("INTEGRATION") == "" {
		t.Skip("set TEST_DB_DSN or INTEGRATION=1 to run database tests")
	}

	conn, cleanup := testutils.SetupPostgres()
	t.Cleanup(cleanup)
	require.NoError(t, db.InitWithGormDB(conn))
	return conn
}

func TestDBRequestRepoStatusChangeIsTransactional(t *testing.T) {
	conn := setupDB(t)
	repo := NewDBRequestRepo(conn)

	r := newRequest(uuid.NewString(), request.StatusDraft)
	require.NoError(t, repo.Create(r))

	actor := uuid.NewString()
	updated, err := repo.ChangeStatus(r.ID, request.StatusSubmitted, "submitted", actor)
	require.NoError(t, err)
	assert.Equal(t, request.StatusSubmitted, updated.Status)
	require.Len(t, updated.StatusHistory, 1)
	assert.Equal(t, request.StatusDraft, updated.StatusHistory[0].From)

	// History rows survive independent reads.
	var count int64
	require.NoError(t, conn.Model(&request.StatusChange{}).Where("request_id = ?", r.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDBRequestRepoListWithoutLimitReturnsEverything(t *testing.T) {
	conn := setupDB(t)
	repo := NewDBRequestRepo(conn)

	clientID := uuid.NewString()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(newRequest(clientID, request.StatusSubmitted)))
	}

	// A zero limit must behave like the memory backend: no LIMIT clause.
	all, total, err := repo.List(RequestFilter{ClientID: clientID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)
}

func TestDBRequestRepoDeleteCascades(t *testing.T) {
	conn := setupDB(t)
	repo := NewDBRequestRepo(conn)

	r := newRequest(uuid.NewString(), request.StatusDraft)
	require.NoError(t, repo.Create(r))
	_, err := repo.ChangeStatus(r.ID, request.StatusSubmitted, "", "")
	require.NoError(t, err)
	require.NoError(t, repo.AddComment(&request.Comment{RequestID: r.ID, AuthorID: uuid.NewString(), Body: "hi"}))

	require.NoError(t, repo.Delete(r.ID))

	_, err = repo.GetByID(r.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, conn.Model(&request.Comment{}).Where("request_id = ?", r.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
