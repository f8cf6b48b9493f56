package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
	"github.com/yukikurage/freelance-marketplace-api/internal/database"
	"github.com/yukikurage/freelance-marketplace-api/internal/repository"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	tasks    *services.TaskService
	bids     *services.BidService
	verifier *services.JWTVerifier
	router   *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	taskRepo := repository.NewTaskRepository(db)
	bidRepo := repository.NewBidRepository(db)
	verifier, err := services.NewJWTVerifier("handler-secret", "", "")
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		tasks:    services.NewTaskService(taskRepo),
		bids:     services.NewBidService(taskRepo, bidRepo),
		verifier: verifier,
		router:   gin.New(),
	}
	RegisterRoutes(env.router, Dependencies{
		Tasks:    env.tasks,
		Bids:     env.bids,
		Verifier: env.verifier,
	})
	return env
}

func (e *testEnv) token(t *testing.T, email, name string) string {
	t.Helper()
	token, err := e.verifier.Issue(services.Principal{Email: email, Name: name}, time.Hour)
	require.NoError(t, err)
	return token
}

// do sends a request through the full router. token may be empty.
func (e *testEnv) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func taskBody() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Fix bug",
		"category":    "dev",
		"description": "...",
		"deadline":    "2030-01-01",
		"budget":      100,
		"userEmail":   "a@x.com",
		"userName":    "A",
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (e *testEnv) createTask(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	w := e.do(http.MethodPost, "/tasks", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]string](t, w)["insertedId"]
}
