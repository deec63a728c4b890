package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"accounts/config"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/infra/auth"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// accountServiceFixtures holds the service under test with real collaborators:
// the in-memory repository, a low-cost bcrypt hasher and a deterministic token service.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	tokenService service.TokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_secret_key_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	svc := NewAccountService(AccountServiceParams{
		UserRepo:     memory.NewUserRepository(),
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenService,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return accountServiceFixtures{
		service:      svc,
		tokenService: tokenService,
	}
}

func registerInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Email:    "a@x.com",
		Username: "a",
		Password: "secret",
		Role:     "user",
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fixtures := createTestAccountService(t)
	ctx := context.Background()

	output, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), output.ID)
	assert.Equal(t, "a@x.com", output.Email)
	assert.Equal(t, "a", output.Username)
	assert.Equal(t, "user", output.Role)
}

func TestAccountService_Register_StoresHashNotPlaintext(t *testing.T) {
	ctx := context.Background()

	repo := memory.NewUserRepository()
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_secret_key_very_long_for_testing"
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	svc := NewAccountService(AccountServiceParams{
		UserRepo:     repo,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenService,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	_, err = svc.Register(ctx, registerInput())
	require.NoError(t, err)

	stored, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestAccountService_Register_Conflict(t *testing.T) {
	fixtures := createTestAccountService(t)
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = fixtures.service.Register(ctx, registerInput())
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)

	// No write occurred: the user count is unchanged.
	users, err := fixtures.service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAccountService_Register_InvalidRoleDefaultsToUser(t *testing.T) {
	fixtures := createTestAccountService(t)
	ctx := context.Background()

	input := registerInput()
	input.Role = "superhero"

	output, err := fixtures.service.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "user", output.Role)
}

func TestAccountService_Login_Success(t *testing.T) {
	fixtures := createTestAccountService(t)
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	require.NotEmpty(t, output.Token)

	// The issued token decodes to a claim set containing the submitted email.
	claims, err := fixtures.tokenService.Verify(output.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fixtures := createTestAccountService(t)
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "wrong"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fixtures := createTestAccountService(t)
	ctx := context.Background()

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Email: "missing@x.com", Password: "whatever"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_Login_MissingFields(t *testing.T) {
	fixtures := createTestAccountService(t)
	ctx := context.Background()

	for _, input := range []*usecase.LoginInput{
		{Email: "", Password: ""},
		{Email: "a@x.com", Password: ""},
		{Email: "", Password: "secret"},
	} {
		output, err := fixtures.service.Login(ctx, input)
		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidLoginData)
	}
}

func TestAccountService_GetUser(t *testing.T) {
	fixtures := createTestAccountService(t)
	ctx := context.Background()

	created, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	found, err := fixtures.service.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "a@x.com", found.Email)
	assert.Equal(t, "user", found.Role)

	_, err = fixtures.service.GetUser(ctx, 999)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_ListUsers(t *testing.T) {
	fixtures := createTestAccountService(t)
	ctx := context.Background()

	users, err := fixtures.service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	second := registerInput()
	second.Email = "b@x.com"
	second.Username = "b"
	_, err = fixtures.service.Register(ctx, second)
	require.NoError(t, err)

	users, err = fixtures.service.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, "b@x.com", users[1].Email)
}
