package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdash/apigateway/internal/auth"
	"github.com/taskdash/apigateway/internal/domain"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func newAuthService() (AuthService, *fakeUserRepo, *auth.JWTManager) {
	repo := newFakeUserRepo()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(repo, jwtManager), repo, jwtManager
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, repo, jwtManager := newAuthService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Ana", "Ana@Example.com", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "segredo123", user.PasswordHash)

	identity, err := jwtManager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, "Ana", identity.Name)

	stored, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "", "ana@example.com", "segredo123")
	assert.True(t, domain.IsValidation(err))

	_, _, err = svc.Register(ctx, "Ana", "not-an-email", "segredo123")
	assert.True(t, domain.IsValidation(err))

	_, _, err = svc.Register(ctx, "Ana", "ana@example.com", "curta")
	assert.True(t, domain.IsValidation(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ana", "ana@example.com", "segredo123")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Outra Ana", "ana@example.com", "segredo456")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "Ana", "ana@example.com", "segredo123")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "ana@example.com", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	// Wrong password and unknown email fail identically.
	_, _, err = svc.Login(ctx, "ana@example.com", "senha-errada")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "ninguem@example.com", "segredo123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
