package application

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encodergroup/portal-go/internal/domain/request"
	"github.com/encodergroup/portal-go/internal/repository"
)

func TestCreateSubmitsImmediately(t *testing.T) {
	services, _ := newTestServices(t)
	client := clientClaims()

	r, err := services.Requests.Create(client, request.CreateRequest{
		Title:       "New webshop",
		Description: "Storefront with checkout",
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusSubmitted, r.Status)
	assert.Equal(t, client.UserID, r.ClientID)
	assert.Equal(t, "medium", r.Priority)

	require.Len(t, r.StatusHistory, 1)
	assert.Equal(t, request.StatusDraft, r.StatusHistory[0].From)
	assert.Equal(t, request.StatusSubmitted, r.StatusHistory[0].To)
}

func TestCreateWithDraftFlag(t *testing.T) {
	services, _ := newTestServices(t)

	r, err := services.Requests.Create(clientClaims(), request.CreateRequest{
		Title:       "Not ready yet",
		Description: "Still collecting requirements",
		Draft:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusDraft, r.Status)

	// The ledger opens with a from-less entry landing on draft.
	require.Len(t, r.StatusHistory, 1)
	assert.Empty(t, r.StatusHistory[0].From)
	assert.Equal(t, request.StatusDraft, r.StatusHistory[0].To)
	assert.Equal(t, "created", r.StatusHistory[0].Reason)
}

func TestGetScopedToOwner(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()

	r, err := services.Requests.Create(owner, request.CreateRequest{Title: "Mine", Description: "x"})
	require.NoError(t, err)

	_, err = services.Requests.Get(clientClaims(), r.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := services.Requests.Get(adminClaims(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestListScopesClientsToOwnRequests(t *testing.T) {
	services, _ := newTestServices(t)
	alice := clientClaims()
	bob := clientClaims()

	_, err := services.Requests.Create(alice, request.CreateRequest{Title: "A", Description: "x"})
	require.NoError(t, err)
	_, err = services.Requests.Create(bob, request.CreateRequest{Title: "B", Description: "x"})
	require.NoError(t, err)

	// A client asking for another client's requests still only sees their own.
	mine, total, err := services.Requests.List(alice, repository.RequestFilter{ClientID: bob.UserID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.UserID, mine[0].ClientID)

	all, total, err := services.Requests.List(adminClaims(), repository.RequestFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestUpdateDraftRulesForClients(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()

	draft, err := services.Requests.Create(owner, request.CreateRequest{
		Title: "Draft", Description: "x", Draft: true,
	})
	require.NoError(t, err)

	title := "Renamed draft"
	updated, err := services.Requests.Update(owner, draft.ID, request.UpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed draft", updated.Title)

	_, err = services.Requests.Update(clientClaims(), draft.ID, request.UpdateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	submitted, err := services.Requests.Create(owner, request.CreateRequest{Title: "Live", Description: "x"})
	require.NoError(t, err)
	_, err = services.Requests.Update(owner, submitted.ID, request.UpdateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotDraft)

	// Admins can edit past the draft stage.
	_, err = services.Requests.Update(adminClaims(), submitted.ID, request.UpdateRequest{Title: &title})
	assert.NoError(t, err)
}

func TestSubmitOnlyFromDraft(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()

	draft, err := services.Requests.Create(owner, request.CreateRequest{
		Title: "Draft", Description: "x", Draft: true,
	})
	require.NoError(t, err)

	submitted, err := services.Requests.Submit(owner, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusSubmitted, submitted.Status)
	require.Len(t, submitted.StatusHistory, 2)
	assert.Equal(t, request.StatusDraft, submitted.StatusHistory[1].From)
	assert.Equal(t, request.StatusSubmitted, submitted.StatusHistory[1].To)

	_, err = services.Requests.Submit(owner, draft.ID)
	assert.ErrorIs(t, err, ErrNotDraft)
}

func TestAdvanceMovesOneStageAndNotifiesOwner(t *testing.T) {
	services, pub := newTestServices(t)
	owner := clientClaims()
	admin := adminClaims()

	r, err := services.Requests.Create(owner, request.CreateRequest{Title: "Adv", Description: "x"})
	require.NoError(t, err)

	r, err = services.Requests.Advance(admin, r.ID, "analysis started")
	require.NoError(t, err)
	assert.Equal(t, request.StatusRequirementsAnalysis, r.Status)
	require.Len(t, r.StatusHistory, 2)
	assert.Equal(t, "analysis started", r.StatusHistory[1].Reason)
	assert.Equal(t, admin.UserID, r.StatusHistory[1].ActorID)

	assert.Equal(t, 1, pub.count(owner.UserID))

	stored, _, err := services.Notifications.List(owner.UserID, true, 0, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "status_change", stored[0].Kind)
	assert.Equal(t, r.ID, stored[0].RequestID)
}

func TestAdvanceRejectsTerminalStatus(t *testing.T) {
	services, _ := newTestServices(t)
	admin := adminClaims()

	r, err := services.Requests.Create(clientClaims(), request.CreateRequest{Title: "Done", Description: "x"})
	require.NoError(t, err)

	r, err = services.Requests.SetStatus(admin, r.ID, "canceled", "client pulled out")
	require.NoError(t, err)
	assert.Equal(t, request.StatusCanceled, r.Status)

	_, err = services.Requests.Advance(admin, r.ID, "")
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestSetStatusValidation(t *testing.T) {
	services, _ := newTestServices(t)
	admin := adminClaims()

	r, err := services.Requests.Create(clientClaims(), request.CreateRequest{Title: "S", Description: "x"})
	require.NoError(t, err)

	_, err = services.Requests.SetStatus(admin, r.ID, "warp_speed", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = services.Requests.SetStatus(admin, r.ID, "submitted", "")
	assert.ErrorIs(t, err, ErrSameStatus)

	r, err = services.Requests.SetStatus(admin, r.ID, "approved", "fast tracked")
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, r.Status)
	require.Len(t, r.StatusHistory, 2)
	assert.Equal(t, request.StatusSubmitted, r.StatusHistory[1].From)
	assert.Equal(t, request.StatusApproved, r.StatusHistory[1].To)
}

func TestDeleteRules(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()

	draft, err := services.Requests.Create(owner, request.CreateRequest{
		Title: "Draft", Description: "x", Draft: true,
	})
	require.NoError(t, err)
	submitted, err := services.Requests.Create(owner, request.CreateRequest{Title: "Live", Description: "x"})
	require.NoError(t, err)

	assert.ErrorIs(t, services.Requests.Delete(clientClaims(), draft.ID), ErrForbidden)
	assert.ErrorIs(t, services.Requests.Delete(owner, submitted.ID), ErrNotDraft)

	require.NoError(t, services.Requests.Delete(owner, draft.ID))
	require.NoError(t, services.Requests.Delete(adminClaims(), submitted.ID))
}

func TestAddCommentNotifiesOwnerWhenStaffComments(t *testing.T) {
	services, pub := newTestServices(t)
	owner := clientClaims()
	admin := adminClaims()

	r, err := services.Requests.Create(owner, request.CreateRequest{Title: "C", Description: "x"})
	require.NoError(t, err)

	r, err = services.Requests.AddComment(admin, r.ID, "We have a question about scope")
	require.NoError(t, err)
	require.Len(t, r.Comments, 1)
	assert.Equal(t, admin.UserID, r.Comments[0].AuthorID)
	assert.Equal(t, 1, pub.count(owner.UserID))

	// Own comments do not notify, and the newest comment comes first.
	r, err = services.Requests.AddComment(owner, r.ID, "Answering myself")
	require.NoError(t, err)
	require.Len(t, r.Comments, 2)
	assert.Equal(t, owner.UserID, r.Comments[0].AuthorID)
	assert.Equal(t, 1, pub.count(owner.UserID))
}

func TestAttachAndDownloadRoundTrip(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()
	ctx := context.Background()

	r, err := services.Requests.Create(owner, request.CreateRequest{Title: "F", Description: "x"})
	require.NoError(t, err)

	content := []byte("%PDF-1.4 fake proposal")
	a, err := services.Requests.Attach(ctx, owner, r.ID, "proposal.pdf",
		bytes.NewReader(content), int64(len(content)), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "proposal.pdf", a.FileName)

	meta, body, err := services.Requests.OpenAttachment(ctx, owner, r.ID, a.ID)
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, a.ID, meta.ID)

	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, _, err = services.Requests.OpenAttachment(ctx, clientClaims(), r.ID, a.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestStatusesCatalog(t *testing.T) {
	services, _ := newTestServices(t)

	infos := services.Requests.Statuses()
	assert.Len(t, infos, len(request.AllStatuses))
	assert.Equal(t, "draft", infos[0].Value)
	assert.Equal(t, "Draft", infos[0].Label)
}
