package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/service"
	"github.com/spec-kit/realty-service/internal/session"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, id int64, status domain.UserStatusID) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.StatusID = status
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

type authFixture struct {
	users      *fakeUserRepo
	store      *session.Store
	storage    *session.MemoryStorage
	dispatcher events.Dispatcher
	service    *service.AuthService
	published  *[]events.Event
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newFakeUserRepo()
	storage := session.NewMemoryStorage()
	store := session.NewStore(storage, zap.NewNop())
	dispatcher := events.NewInMemoryDispatcher()

	published := &[]events.Event{}
	for _, eventType := range []events.EventType{events.EventSessionCommitted, events.EventSessionCleared} {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			*published = append(*published, event)
			return nil
		})
	}

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   60,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              bcrypt.MinCost,
	}}

	svc := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:     users,
		SessionStore: store,
		Dispatcher:   dispatcher,
	})

	return &authFixture{
		users:      users,
		store:      store,
		storage:    storage,
		dispatcher: dispatcher,
		service:    svc,
		published:  published,
	}
}

func (f *authFixture) seedUser(t *testing.T, email, password, role string, status domain.UserStatusID) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Name:         "Laura Ortega",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		StatusID:     status,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestLoginSuccessCommitsSession(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "laura@example.com", "secret123", "Agente", domain.UserStatusActive)

	res, err := f.service.Login(context.Background(), "laura@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionToken)
	require.NotEmpty(t, res.APIToken)
	require.Equal(t, domain.RoleAgent, res.Session.Role)
	require.Equal(t, "Agente", res.Session.RawRole)
	require.Equal(t, "LO", res.Session.Initials)

	stored, err := f.store.Get(context.Background(), res.SessionToken)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, res.Session.UserID, stored.UserID)

	require.Len(t, *f.published, 1)
	require.Equal(t, events.EventSessionCommitted, (*f.published)[0].Type)
}

func TestLoginWrongPasswordLeavesStoreUntouched(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "laura@example.com", "secret123", "Agente", domain.UserStatusActive)

	_, err := f.service.Login(context.Background(), "laura@example.com", "wrong")
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	require.Equal(t, "UNAUTHORIZED", de.Code)
	require.Equal(t, "invalid email or password", de.Message)

	require.Empty(t, *f.published)
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)
	require.Equal(t, "invalid email or password", apperrors.ToDomainError(err).Message)
}

func TestLoginSuspendedAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "laura@example.com", "secret123", "Agente", domain.UserStatusSuspended)

	_, err := f.service.Login(context.Background(), "laura@example.com", "secret123")
	require.Error(t, err)
	require.Equal(t, "account suspended", apperrors.ToDomainError(err).Message)
}

func TestLogoutClearsSessionAndIsIdempotent(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "laura@example.com", "secret123", "Agente", domain.UserStatusActive)

	res, err := f.service.Login(context.Background(), "laura@example.com", "secret123")
	require.NoError(t, err)

	f.service.Logout(context.Background(), res.SessionToken)
	sess, err := f.store.Get(context.Background(), res.SessionToken)
	require.NoError(t, err)
	require.Nil(t, sess)

	// A second logout of the same token is a successful no-op.
	f.service.Logout(context.Background(), res.SessionToken)
	sess, err = f.store.Get(context.Background(), res.SessionToken)
	require.NoError(t, err)
	require.Nil(t, sess)

	var cleared int
	for _, event := range *f.published {
		if event.Type == events.EventSessionCleared {
			cleared++
		}
	}
	require.Equal(t, 1, cleared)
}

func TestRegisterCreatesClientAccount(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.service.Register(context.Background(), "Pedro Ruiz", "pedro@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, domain.RoleClient, user.CanonicalRole())
	require.Equal(t, domain.UserStatusActive, user.StatusID)

	_, err = f.service.Register(context.Background(), "Pedro Ruiz", "pedro@example.com", "secret123")
	require.Error(t, err)
	require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "laura@example.com", "secret123", "Agente", domain.UserStatusActive)

	err := f.service.ChangePassword(context.Background(), user.ID, "wrong", "newpass456")
	require.Error(t, err)

	require.NoError(t, f.service.ChangePassword(context.Background(), user.ID, "secret123", "newpass456"))

	_, err = f.service.Login(context.Background(), "laura@example.com", "newpass456")
	require.NoError(t, err)
}

// fakeResetRepo backs the password recovery tests.
type fakeResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
	nextID int64
}

func (f *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	f.nextID++
	token.ID = f.nextID
	copied := *token
	f.tokens[token.Token] = &copied
	return nil
}

func (f *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	token, ok := f.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id int64) error {
	now := time.Now()
	for _, token := range f.tokens {
		if token.ID == id {
			token.UsedAt = &now
		}
	}
	return nil
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	resets := &fakeResetRepo{tokens: map[string]*repository.PasswordResetToken{}}

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   60,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              bcrypt.MinCost,
	}}
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:          f.users,
		PasswordResetRepo: resets,
		SessionStore:      f.store,
	})

	f.seedUser(t, "laura@example.com", "secret123", "Agente", domain.UserStatusActive)

	token, err := svc.RequestPasswordReset(context.Background(), "laura@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), token.Token, "newpass456"))

	// Token is single use.
	err = svc.ConfirmPasswordReset(context.Background(), token.Token, "again789")
	require.Error(t, err)

	_, err = svc.Login(context.Background(), "laura@example.com", "newpass456")
	require.NoError(t, err)
}
