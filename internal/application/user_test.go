package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encodergroup/portal-go/internal/domain/user"
	"github.com/encodergroup/portal-go/pkg/types"
)

func registerUser(t *testing.T, services *Services, email string) *user.User {
	t.Helper()
	u, err := services.Users.Register(user.RegisterRequest{
		Email:     email,
		Password:  "correct horse battery",
		FirstName: "Dana",
		LastName:  "Kovac",
		Company:   "EncoderGroup",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterHashesPassword(t *testing.T) {
	services, _ := newTestServices(t)

	u := registerUser(t, services, "dana@example.com")
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, user.RoleClient, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "correct horse battery", u.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	services, _ := newTestServices(t)

	registerUser(t, services, "dana@example.com")
	_, err := services.Users.Register(user.RegisterRequest{
		Email:     "dana@example.com",
		Password:  "another password",
		FirstName: "Other",
		LastName:  "Person",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	services, _ := newTestServices(t)
	registerUser(t, services, "dana@example.com")

	u, err := services.Users.Authenticate(user.LoginRequest{
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", u.Email)

	_, err = services.Users.Authenticate(user.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = services.Users.Authenticate(user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticateRejectsDeactivatedUser(t *testing.T) {
	services, _ := newTestServices(t)
	u := registerUser(t, services, "dana@example.com")

	_, err := services.Users.SetActive(adminClaims(), u.ID, false)
	require.NoError(t, err)

	_, err = services.Users.Authenticate(user.LoginRequest{
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestUpdateProfilePermissions(t *testing.T) {
	services, _ := newTestServices(t)
	u := registerUser(t, services, "dana@example.com")

	self := &types.Claims{UserID: u.ID, Role: u.Role}
	phone := "+385911234567"
	updated, err := services.Users.Update(self, u.ID, user.UpdateRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)

	_, err = services.Users.Update(clientClaims(), u.ID, user.UpdateRequest{Phone: &phone})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = services.Users.Update(adminClaims(), u.ID, user.UpdateRequest{Phone: &phone})
	assert.NoError(t, err)
}
