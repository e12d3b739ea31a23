package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/fms-api/internal/models"
	"github.com/noah-isme/fms-api/internal/service"
	"github.com/noah-isme/fms-api/pkg/jobs"
)

type capturingLogRepo struct {
	logs chan *models.APILog
}

func (r *capturingLogRepo) CreateAPILog(ctx context.Context, log *models.APILog) error {
	r.logs <- log
	return nil
}

func newAPILogFixture(t *testing.T) (*capturingLogRepo, *service.APILogService) {
	t.Helper()
	repo := &capturingLogRepo{logs: make(chan *models.APILog, 4)}
	svc := service.NewAPILogService(repo, jobs.QueueConfig{Workers: 1, BufferSize: 4}, zap.NewNop())
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)
	return repo, svc
}

func recordedLog(t *testing.T, repo *capturingLogRepo) *models.APILog {
	t.Helper()
	select {
	case log := <-repo.logs:
		return log
	case <-time.After(2 * time.Second):
		t.Fatal("no api log persisted")
		return nil
	}
}

func TestAPILogRedactsLoginBodyUnderAnyPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo, svc := newAPILogFixture(t)

	r := gin.New()
	r.Use(APILog(svc, service.NewMetricsService()))
	r.POST("/gateway/v2/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"isSuccess": true})
	})

	body := `{"email":"head@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/gateway/v2/auth/login", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	log := recordedLog(t, repo)
	assert.Equal(t, "[redacted]", log.RequestBody)
	assert.NotContains(t, log.RequestBody, "secret123")
}

func TestAPILogCapturesBodyAndLeavesItReadable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo, svc := newAPILogFixture(t)

	var seenByHandler string
	r := gin.New()
	r.Use(APILog(svc, service.NewMetricsService()))
	r.POST("/api/v1/manpower", func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		seenByHandler = string(data)
		c.Status(http.StatusCreated)
	})

	body := `{"name":"Juan Dela Cruz"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/manpower", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, body, seenByHandler, "the middleware must replay the body downstream")

	log := recordedLog(t, repo)
	assert.Equal(t, body, log.RequestBody)
	assert.Equal(t, http.StatusCreated, log.Status)
	assert.Equal(t, "/api/v1/manpower", log.Path)
}
