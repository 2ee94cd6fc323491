package application

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encodergroup/portal-go/internal/domain/receipt"
)

func newReceiptInput(amount float64) receipt.CreateRequest {
	return receipt.CreateRequest{
		CompanyName: "Office Depot",
		FolioNumber: "A-1042",
		Date:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Description: "Printer paper",
		TotalAmount: amount,
	}
}

func TestReceiptCreateStartsInReview(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()

	r, err := services.Receipts.Create(context.Background(), owner, newReceiptInput(120.50), "", nil, 0, "")
	require.NoError(t, err)
	assert.Equal(t, receipt.StatusInReview, r.Status)
	assert.Equal(t, owner.UserID, r.UserID)
	assert.Empty(t, r.ImageKey)
}

func TestReceiptCreateWithImageRoundTrip(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()
	ctx := context.Background()

	content := []byte("fake jpeg bytes")
	r, err := services.Receipts.Create(ctx, owner, newReceiptInput(80),
		"ticket.jpg", bytes.NewReader(content), int64(len(content)), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "ticket.jpg", r.ImageName)
	require.NotEmpty(t, r.ImageKey)

	meta, body, err := services.Receipts.OpenImage(ctx, owner, r.ID)
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, "ticket.jpg", meta.ImageName)

	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestReceiptOpenImageWithoutImage(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()

	r, err := services.Receipts.Create(context.Background(), owner, newReceiptInput(10), "", nil, 0, "")
	require.NoError(t, err)

	_, _, err = services.Receipts.OpenImage(context.Background(), owner, r.ID)
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestReceiptScopedToOwner(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()

	r, err := services.Receipts.Create(context.Background(), owner, newReceiptInput(42), "", nil, 0, "")
	require.NoError(t, err)

	_, err = services.Receipts.Get(clientClaims(), r.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := services.Receipts.Get(adminClaims(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	mine, err := services.Receipts.List(owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := services.Receipts.List(clientClaims())
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestReceiptUpdateFields(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()
	ctx := context.Background()

	r, err := services.Receipts.Create(ctx, owner, newReceiptInput(42), "", nil, 0, "")
	require.NoError(t, err)

	company := "Home Depot"
	amount := 99.99
	updated, err := services.Receipts.Update(ctx, owner, r.ID, receipt.UpdateRequest{
		CompanyName: &company,
		TotalAmount: &amount,
	}, "", nil, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "Home Depot", updated.CompanyName)
	assert.Equal(t, 99.99, updated.TotalAmount)
	// Untouched fields stay put.
	assert.Equal(t, "A-1042", updated.FolioNumber)

	_, err = services.Receipts.Update(ctx, clientClaims(), r.ID, receipt.UpdateRequest{}, "", nil, 0, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReceiptSetStatusValidation(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()

	r, err := services.Receipts.Create(context.Background(), owner, newReceiptInput(42), "", nil, 0, "")
	require.NoError(t, err)

	_, err = services.Receipts.SetStatus(owner, r.ID, "approved")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := services.Receipts.SetStatus(owner, r.ID, "aceptada")
	require.NoError(t, err)
	assert.Equal(t, receipt.StatusAccepted, updated.Status)
}

func TestReceiptStatsCountsAcceptedAmountOnly(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()
	ctx := context.Background()

	accepted, err := services.Receipts.Create(ctx, owner, newReceiptInput(100), "", nil, 0, "")
	require.NoError(t, err)
	_, err = services.Receipts.SetStatus(owner, accepted.ID, "aceptada")
	require.NoError(t, err)

	rejected, err := services.Receipts.Create(ctx, owner, newReceiptInput(50), "", nil, 0, "")
	require.NoError(t, err)
	_, err = services.Receipts.SetStatus(owner, rejected.ID, "rechazada")
	require.NoError(t, err)

	_, err = services.Receipts.Create(ctx, owner, newReceiptInput(25), "", nil, 0, "")
	require.NoError(t, err)

	stats, err := services.Receipts.Stats(owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalReceipts)
	assert.Equal(t, int64(1), stats.EnRevision)
	assert.Equal(t, int64(1), stats.Aceptadas)
	assert.Equal(t, int64(1), stats.Rechazadas)
	// Pending and rejected receipts never count toward the payout.
	assert.Equal(t, 100.0, stats.TotalAmount)

	// Another user's stats stay empty.
	other, err := services.Receipts.Stats(clientClaims())
	require.NoError(t, err)
	assert.Equal(t, int64(0), other.TotalReceipts)
}

func TestReceiptDeleteRemovesImage(t *testing.T) {
	services, _ := newTestServices(t)
	owner := clientClaims()
	ctx := context.Background()

	content := []byte("png")
	r, err := services.Receipts.Create(ctx, owner, newReceiptInput(12),
		"scan.png", bytes.NewReader(content), int64(len(content)), "image/png")
	require.NoError(t, err)

	assert.ErrorIs(t, services.Receipts.Delete(ctx, clientClaims(), r.ID), ErrForbidden)
	require.NoError(t, services.Receipts.Delete(ctx, owner, r.ID))

	_, err = services.Receipts.Get(owner, r.ID)
	assert.Error(t, err)
}
