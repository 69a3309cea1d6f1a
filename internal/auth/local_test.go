package auth

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/notification"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/utilities"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func newTestController() *Controller {
	return NewController(testDB, zap.NewNop(), notification.NoopSender{})
}

func TestRegisterHandler_Success(t *testing.T) {
	ctrl := newTestController()

	username := "new_worker_" + uuid.NewString()[:8]
	rec, resp, err := utilities.SimulateAPICall(ctrl.RegisterHandler, "/register", http.MethodPost, map[string]string{
		"username": username,
		"password": "SuperSecret1",
		"role":     "worker",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotNil(t, resp["access_token"])
	assert.NotNil(t, resp["user"])
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	ctrl := newTestController()

	rec, _, err := utilities.SimulateAPICall(ctrl.RegisterHandler, "/register", http.MethodPost, map[string]string{
		"username": database.TestWorker1.Username,
		"password": "SuperSecret1",
		"role":     "worker",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHandler_ShortPassword(t *testing.T) {
	ctrl := newTestController()

	rec, _, err := utilities.SimulateAPICall(ctrl.RegisterHandler, "/register", http.MethodPost, map[string]string{
		"username": "short_pwd_" + uuid.NewString()[:8],
		"password": "short",
		"role":     "employer",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHandler_InvalidRole(t *testing.T) {
	ctrl := newTestController()

	rec, _, err := utilities.SimulateAPICall(ctrl.RegisterHandler, "/register", http.MethodPost, map[string]string{
		"username": "bad_role_" + uuid.NewString()[:8],
		"password": "SuperSecret1",
		"role":     "admin",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler_Success(t *testing.T) {
	ctrl := newTestController()

	rec, resp, err := utilities.SimulateAPICall(ctrl.LoginHandler, "/login", http.MethodPost, map[string]string{
		"username": database.TestWorker1.Username,
		"password": database.TestSeedPassword,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, resp["access_token"])
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	ctrl := newTestController()

	rec, _, err := utilities.SimulateAPICall(ctrl.LoginHandler, "/login", http.MethodPost, map[string]string{
		"username": database.TestWorker1.Username,
		"password": "not-the-password",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	ctrl := newTestController()

	rec, _, err := utilities.SimulateAPICall(ctrl.LoginHandler, "/login", http.MethodPost, map[string]string{
		"username": "ghost_" + uuid.NewString()[:8],
		"password": "whatever123",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
