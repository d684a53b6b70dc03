package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func newUserServiceForTest() (UserService, *memUserRepo) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, fakeHasher{}, &fakeTokens{}, tickingClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
	return svc, repo
}

func TestCreateUser(t *testing.T) {
	svc, _ := newUserServiceForTest()

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.False(t, user.IsNew())
	assert.Equal(t, "Alice", user.Name())
	assert.Equal(t, "alice@example.com", user.Email().String())
	assert.Equal(t, "hashed:supersecret", user.Password())
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	cases := []CreateUserInput{
		{Name: "", Email: "a@b.com", Password: "supersecret"},
		{Name: "Al", Email: "", Password: "supersecret"},
		{Name: "Al", Email: "a@b.com", Password: ""},
		{Name: "Al", Email: "a@b.com", Password: "short"},
		{Name: "Al", Email: "not-an-email", Password: "supersecret"},
	}
	for _, input := range cases {
		_, err := svc.CreateUser(ctx, input)
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation, "%+v", input)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Name: "Alice", Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserInput{Name: "Bob", Email: "A@B.com", Password: "supersecret"})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserInput{Name: "Alice", Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)

	result, err := svc.Authenticate(ctx, "a@b.com", "supersecret")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, created.ID(), result.User.ID())
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.User.RememberToken())
}

func TestAuthenticateBadCredentialsIsNotAnError(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Name: "Alice", Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)

	result, err := svc.Authenticate(ctx, "a@b.com", "wrongpassword")
	assert.NoError(t, err)
	assert.Nil(t, result)

	result, err = svc.Authenticate(ctx, "unknown@b.com", "supersecret")
	assert.NoError(t, err)
	assert.Nil(t, result)

	result, err = svc.Authenticate(ctx, "not-an-email", "supersecret")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestLogoutClearsRememberToken(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserInput{Name: "Alice", Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)

	result, err := svc.Authenticate(ctx, "a@b.com", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, result.User.RememberToken())

	require.NoError(t, svc.Logout(ctx, created.ID().Int64()))

	user, err := svc.GetUserByID(ctx, created.ID().Int64())
	require.NoError(t, err)
	assert.Empty(t, user.RememberToken())
}

func TestGetUserByIDMissing(t *testing.T) {
	svc, _ := newUserServiceForTest()

	user, err := svc.GetUserByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserInput{Name: "Alice", Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserInput{Name: "Bob", Email: "bob@b.com", Password: "supersecret"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, created.ID().Int64(), "Alice Smith", "alice.smith@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.Name())
	assert.Equal(t, "alice.smith@b.com", updated.Email().String())

	// someone else's address stays off limits
	_, err = svc.UpdateProfile(ctx, created.ID().Int64(), "Alice Smith", "bob@b.com")
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)

	// keeping your own address is fine
	_, err = svc.UpdateProfile(ctx, created.ID().Int64(), "Alice S", "alice.smith@b.com")
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserInput{Name: "Alice", Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)
	id := created.ID().Int64()

	var validation *domain.ValidationError
	assert.ErrorAs(t, svc.ChangePassword(ctx, id, "supersecret", "short"), &validation)
	assert.ErrorAs(t, svc.ChangePassword(ctx, id, "wrongcurrent", "newsupersecret"), &validation)

	require.NoError(t, svc.ChangePassword(ctx, id, "supersecret", "newsupersecret"))
	result, err := svc.Authenticate(ctx, "a@b.com", "newsupersecret")
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestVerifyEmail(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserInput{Name: "Alice", Email: "a@b.com", Password: "supersecret"})
	require.NoError(t, err)
	require.False(t, created.IsEmailVerified())

	user, err := svc.VerifyEmail(ctx, created.ID().Int64())
	require.NoError(t, err)
	assert.True(t, user.IsEmailVerified())
	firstVerifiedAt := *user.EmailVerifiedAt()

	// verifying twice keeps the original timestamp
	user, err = svc.VerifyEmail(ctx, created.ID().Int64())
	require.NoError(t, err)
	assert.Equal(t, firstVerifiedAt, *user.EmailVerifiedAt())
}
