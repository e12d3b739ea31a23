package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/fms-api/internal/models"
	appErrors "github.com/noah-isme/fms-api/pkg/errors"
)

type mockAuthUserRepo struct {
	userByEmail       *models.User
	userByID          *models.User
	findByEmailErr    error
	findByIDErr       error
	updatePasswordErr error
	lastLoginUpdated  bool
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.userByEmail, nil
}

func (m *mockAuthUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	if m.userByID != nil {
		return m.userByID, nil
	}
	return m.userByEmail, nil
}

func (m *mockAuthUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	if m.userByEmail != nil && m.userByEmail.ID == id {
		m.userByEmail.PasswordHash = passwordHash
	}
	return nil
}

type mockSessionRepo struct {
	sessions  map[string]*models.Session
	createErr error
	logouts   map[string]time.Time
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*models.Session), logouts: make(map[string]time.Time)}
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*models.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return session, nil
}

func (m *mockSessionRepo) SetLogout(ctx context.Context, id string, ts time.Time) error {
	m.logouts[id] = ts
	if session, ok := m.sessions[id]; ok {
		session.LogoutDate = &ts
	}
	return nil
}

type mockAuditRepo struct {
	logs []*models.AuditLog
}

func (m *mockAuditRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func testAuthService(users *mockAuthUserRepo, sessions *mockSessionRepo) (*AuthService, *mockAuditRepo) {
	audit := &mockAuditRepo{}
	svc := NewAuthService(users, sessions, audit, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: time.Hour,
		SessionIdleCutoff: time.Hour,
		Issuer:            "fms-api",
	})
	return svc, audit
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockAuthUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), Role: models.RoleAdmin}}
	sessions := newMockSessionRepo()
	svc, audit := testAuthService(users, sessions)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.SessionCode)
	assert.True(t, users.lastLoginUpdated)
	assert.Len(t, sessions.sessions, 1)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionLogin, audit.logs[0].Action)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockAuthUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password)}}
	svc, _ := testAuthService(users, newMockSessionRepo())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	users := &mockAuthUserRepo{findByEmailErr: sql.ErrNoRows}
	svc, _ := testAuthService(users, newMockSessionRepo())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginArchivedAccount(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockAuthUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), IsArchived: true}}
	svc, _ := testAuthService(users, newMockSessionRepo())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockAuthUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), Role: models.RoleStaff}}
	svc, _ := testAuthService(users, newMockSessionRepo())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)
	assert.NotEmpty(t, claims.SessionID)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := testAuthService(&mockAuthUserRepo{}, newMockSessionRepo())

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceCheckSessionWithinCutoff(t *testing.T) {
	sessions := newMockSessionRepo()
	sessions.sessions["s1"] = &models.Session{ID: "s1", UserID: "u1", LoginDate: time.Now().UTC().Add(-59 * time.Minute)}
	svc, _ := testAuthService(&mockAuthUserRepo{}, sessions)

	err := svc.CheckSession(context.Background(), &models.JWTClaims{UserID: "u1", SessionID: "s1"})
	require.NoError(t, err)
}

func TestAuthServiceCheckSessionPastCutoff(t *testing.T) {
	sessions := newMockSessionRepo()
	sessions.sessions["s1"] = &models.Session{ID: "s1", UserID: "u1", LoginDate: time.Now().UTC().Add(-61 * time.Minute)}
	svc, _ := testAuthService(&mockAuthUserRepo{}, sessions)

	err := svc.CheckSession(context.Background(), &models.JWTClaims{UserID: "u1", SessionID: "s1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, appErrors.FromError(err).Code)
	_, stamped := sessions.logouts["s1"]
	assert.True(t, stamped, "expired session should be stamped with a logout date")
}

func TestAuthServiceCheckSessionAlreadyClosed(t *testing.T) {
	logout := time.Now().UTC().Add(-time.Minute)
	sessions := newMockSessionRepo()
	sessions.sessions["s1"] = &models.Session{ID: "s1", UserID: "u1", LoginDate: time.Now().UTC().Add(-10 * time.Minute), LogoutDate: &logout}
	svc, _ := testAuthService(&mockAuthUserRepo{}, sessions)

	err := svc.CheckSession(context.Background(), &models.JWTClaims{UserID: "u1", SessionID: "s1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogoutStampsSession(t *testing.T) {
	sessions := newMockSessionRepo()
	sessions.sessions["s1"] = &models.Session{ID: "s1", UserID: "u1", LoginDate: time.Now().UTC()}
	svc, audit := testAuthService(&mockAuthUserRepo{}, sessions)

	err := svc.Logout(context.Background(), &models.JWTClaims{UserID: "u1", SessionID: "s1"}, models.LoginRequest{})
	require.NoError(t, err)
	assert.NotNil(t, sessions.sessions["s1"].LogoutDate)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionLogout, audit.logs[0].Action)
}

func TestAuthServiceLogoutForeignSession(t *testing.T) {
	sessions := newMockSessionRepo()
	sessions.sessions["s1"] = &models.Session{ID: "s1", UserID: "other", LoginDate: time.Now().UTC()}
	svc, _ := testAuthService(&mockAuthUserRepo{}, sessions)

	err := svc.Logout(context.Background(), &models.JWTClaims{UserID: "u1", SessionID: "s1"}, models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceChangePassword(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	users := &mockAuthUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password)}}
	svc, _ := testAuthService(users, newMockSessionRepo())

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{OldPassword: "old-password", NewPassword: "new-password"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.userByEmail.PasswordHash), []byte("new-password")))
}

func TestAuthServiceChangePasswordWrongOld(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	users := &mockAuthUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password)}}
	svc, _ := testAuthService(users, newMockSessionRepo())

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "new-password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
