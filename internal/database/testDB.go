package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	// Register lib/pq driver for the raw bootstrap connection
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & jobs
var (
	TestWorker1   m.User
	TestWorker2   m.User
	TestEmployer1 m.User
	TestEmployer2 m.User

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	// Exported seeded jobs, all owned by TestEmployer1 except TestJob3
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort.Port(), dbUser, dbPwd, dbName)

	// Raw pre-flight connection so migration failures are distinguishable
	// from container startup failures
	if err := pingRaw(dsn); err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    dsn,
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample worker and employer users plus jobs
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

func pingRaw(dsn string) error {
	raw, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() {
		if err := raw.Close(); err != nil {
			log.Printf("failed to close raw connection: %v", err)
		}
	}()
	return raw.Ping()
}

// seedTestData inserts sample worker and employer users plus jobs if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	// Ignore admin user that got create during NewDBInstance
	if userCount > 1 {
		return loadTestData(db)
	}

	emails := []*string{
		ptr("worker1@example.com"), ptr("worker2@example.com"),
		ptr("employer1@example.com"), ptr("employer2@example.com"),
	}
	userSpecs := []struct {
		username  string
		email     *string
		role      string
		firstName string
		lastName  string
	}{
		{"worker_1", emails[0], m.RoleWorker, "Ahmed", "Samir"},
		{"worker_2", emails[1], m.RoleWorker, "Mona", "Khaled"},
		{"employer_1", emails[2], m.RoleEmployer, "Omar", "Fathy"},
		{"employer_2", emails[3], m.RoleEmployer, "Sara", "Nabil"},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			ID:        uuid.New(),
			Username:  s.username,
			Email:     s.email,
			Role:      s.role,
			Password:  hashedPwd,
			FirstName: s.firstName,
			LastName:  s.lastName,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Username {
		case "worker_1":
			TestWorker1 = u
		case "worker_2":
			TestWorker2 = u
		case "employer_1":
			TestEmployer1 = u
		case "employer_2":
			TestEmployer2 = u
		}
	}

	// Seed jobs (only if none exist yet)
	var jobCount int64
	if err := db.Model(&m.Job{}).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount == 0 {
		jobs := []m.Job{
			{
				EmployerID: TestEmployer1.ID,
				Status:     m.JobStatusPublished,
				EditableJobInfo: m.EditableJobInfo{
					Title:      "Restaurant Cashier",
					Salary:     6500,
					WorkDays:   m.WorkDaySaturday | m.WorkDaySunday | m.WorkDayMonday | m.WorkDayTuesday | m.WorkDayWednesday,
					ShiftStart: "09:00",
					ShiftEnd:   "17:00",
					Address:    ptr("Nasr City, Cairo"),
				},
				WorkingDaysPerWeek: 5,
				WorkingHoursPerDay: 8,
			},
			{
				EmployerID: TestEmployer1.ID,
				Status:     m.JobStatusPublished,
				EditableJobInfo: m.EditableJobInfo{
					Title:      "Warehouse Assistant",
					Salary:     7200,
					WorkDays:   m.WorkDaySaturday | m.WorkDayMonday | m.WorkDayWednesday,
					ShiftStart: "22:00",
					ShiftEnd:   "06:00",
					Address:    ptr("10th of Ramadan"),
				},
				WorkingDaysPerWeek: 3,
				WorkingHoursPerDay: 8,
			},
			{
				EmployerID: TestEmployer2.ID,
				Status:     m.JobStatusPublished,
				EditableJobInfo: m.EditableJobInfo{
					Title:      "Delivery Driver",
					Salary:     8000,
					WorkDays:   m.AllowedWorkDaysMask,
					ShiftStart: "10:00",
					ShiftEnd:   "18:00",
					Address:    ptr("Alexandria"),
				},
				WorkingDaysPerWeek: 7,
				WorkingHoursPerDay: 8,
			},
		}

		if err := db.Create(&jobs).Error; err != nil {
			return err
		}
		TestJob1 = jobs[0]
		TestJob2 = jobs[1]
		TestJob3 = jobs[2]
	}

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{
		"worker_1", "worker_2", "employer_1", "employer_2",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "worker_1":
			TestWorker1 = u
		case "worker_2":
			TestWorker2 = u
		case "employer_1":
			TestEmployer1 = u
		case "employer_2":
			TestEmployer2 = u
		}
	}

	// Load first three jobs deterministically
	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
