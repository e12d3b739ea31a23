package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/fms-api/internal/models"
	"github.com/noah-isme/fms-api/internal/service"
)

type fakeUserRepo struct {
	user *models.User
}

func (f *fakeUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) FindByID(context.Context, string) (*models.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(context.Context, string, time.Time) error { return nil }

func (f *fakeUserRepo) UpdatePassword(context.Context, string, string, time.Time) error {
	return nil
}

type fakeSessionRepo struct {
	session   *models.Session
	logoutIDs []string
}

func (f *fakeSessionRepo) Create(_ context.Context, s *models.Session) error {
	f.session = s
	return nil
}

func (f *fakeSessionRepo) FindByID(context.Context, string) (*models.Session, error) {
	return f.session, nil
}

func (f *fakeSessionRepo) SetLogout(_ context.Context, id string, _ time.Time) error {
	f.logoutIDs = append(f.logoutIDs, id)
	return nil
}

type fakeAuditSink struct{}

func (fakeAuditSink) CreateAuditLog(context.Context, *models.AuditLog) error { return nil }

func newJWTFixture(t *testing.T, idle time.Duration) (*service.AuthService, *fakeSessionRepo, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepo{user: &models.User{
		ID:           "user-1",
		Email:        "staff@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleStaff,
	}}
	sessions := &fakeSessionRepo{}

	svc := service.NewAuthService(users, sessions, fakeAuditSink{}, nil, nil, service.AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		SessionIdleCutoff: idle,
	})

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "staff@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	return svc, sessions, resp.AccessToken
}

func runJWT(svc *service.AuthService, authHeader string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWT(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAllowsFreshSession(t *testing.T) {
	svc, _, token := newJWTFixture(t, time.Hour)

	rec := runJWT(svc, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	svc, _, _ := newJWTFixture(t, time.Hour)

	rec := runJWT(svc, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	svc, _, token := newJWTFixture(t, time.Hour)

	rec := runJWT(svc, "Token "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newJWTFixture(t, time.Hour)

	rec := runJWT(svc, "Bearer not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTStampsLogoutOnIdleExpiry(t *testing.T) {
	svc, sessions, token := newJWTFixture(t, time.Hour)

	// Age the session past the idle cutoff.
	sessions.session.LoginDate = time.Now().Add(-2 * time.Hour)

	rec := runJWT(svc, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Len(t, sessions.logoutIDs, 1)
	assert.Equal(t, sessions.session.ID, sessions.logoutIDs[0])
}
