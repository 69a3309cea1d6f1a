package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/notification"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/scheduler"
)

// MyServer bundles everything the route handlers need.
type MyServer struct {
	DB     *database.DBinstanceStruct
	Log    *zap.Logger
	Queue  *scheduler.Client
	Mailer notification.Sender
}

// NewServer constructs the HTTP server around an initialized database,
// scheduler client and mailer.
func NewServer(db *database.DBinstanceStruct, logger *zap.Logger, queue *scheduler.Client, mailer notification.Sender) *http.Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port == 0 {
		log.Printf("PORT not set or invalid, defaulting to 8080")
		port = 8080
	}

	s := &MyServer{
		DB:     db,
		Log:    logger,
		Queue:  queue,
		Mailer: mailer,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
