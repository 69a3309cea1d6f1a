package job

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/auth"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/middleware"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/scheduler"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/service"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/testutil"
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

func newRouter() *gin.Engine {
	queue := scheduler.NewClient(testDB, zap.NewNop())
	svc := service.NewJobService(testDB, zap.NewNop(), queue)
	jc := NewJobController(svc)

	r := gin.Default()
	r.POST("/job", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer), jc.CreateHandler)
	r.POST("/job/:id/close", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer), jc.CloseHandler)
	r.GET("/job", middleware.RequireAuth(testDB), jc.GetAllHandler)
	return r
}

func createJobBody() gin.H {
	return gin.H{
		"title":       "Night Shift Security Guard",
		"salary":      9000,
		"work_days":   int(model.WorkDaySaturday | model.WorkDaySunday | model.WorkDayMonday),
		"shift_start": "20:00",
		"shift_end":   "04:00",
		"address":     "New Cairo",
	}
}

func TestCreateHandler_Success(t *testing.T) {
	employerToken, err := auth.GetAccessToken(t, testDB, database.TestEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newRouter()
	rec, resp := testutil.MakeJSONRequest(createJobBody(), employerToken, r, "/job", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	if resp != nil {
		assert.Equal(t, "published", resp["status"])
		assert.Equal(t, float64(3), resp["working_days_per_week"])
		assert.Equal(t, float64(8), resp["working_hours_per_day"])
		assert.Equal(t, database.TestEmployer1.ID.String(), resp["employer_id"])
	}
}

func TestCreateHandler_InvalidShift(t *testing.T) {
	employerToken, err := auth.GetAccessToken(t, testDB, database.TestEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	body := createJobBody()
	body["shift_start"] = "25:99"

	r := newRouter()
	rec, _ := testutil.MakeJSONRequest(body, employerToken, r, "/job", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateHandler_WorkerForbidden(t *testing.T) {
	workerToken, err := auth.GetAccessToken(t, testDB, database.TestWorker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newRouter()
	rec, _ := testutil.MakeJSONRequest(createJobBody(), workerToken, r, "/job", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCloseHandler(t *testing.T) {
	employerToken, err := auth.GetAccessToken(t, testDB, database.TestEmployer1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := newRouter()

	// Create a fresh job so seeded fixtures are left untouched
	rec, resp := testutil.MakeJSONRequest(createJobBody(), employerToken, r, "/job", http.MethodPost)
	if rec.Code != http.StatusCreated {
		t.Fatalf("job creation failed with code %d", rec.Code)
	}
	jobID := uint(resp["ID"].(float64))

	// A different employer must not be able to close it
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestEmployer2.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	closeURL := fmt.Sprintf("/job/%d/close", jobID)
	rec2, _ := testutil.MakeJSONRequest(gin.H{}, otherToken, r, closeURL, http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec2.Code)

	var unchanged model.Job
	assert.NoError(t, testDB.First(&unchanged, jobID).Error)
	assert.Equal(t, model.JobStatusPublished, unchanged.Status)

	// Owner closes it
	rec3, _ := testutil.MakeJSONRequest(gin.H{}, employerToken, r, closeURL, http.MethodPost)
	assert.Equal(t, http.StatusOK, rec3.Code)

	var closed model.Job
	assert.NoError(t, testDB.First(&closed, jobID).Error)
	assert.Equal(t, model.JobStatusClosed, closed.Status)

	// Closing twice is rejected
	rec4, _ := testutil.MakeJSONRequest(gin.H{}, employerToken, r, closeURL, http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec4.Code)
}
