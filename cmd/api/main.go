package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/joho/godotenv/autoload"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/logger"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/notification"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/scheduler"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/server"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/worker"
)

func main() {
	zlog := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	defer zlog.Sync()

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}
	defer db.Close()

	queue := scheduler.NewClient(db, zlog)
	worker.Register(queue, db, zlog)

	var mailer notification.Sender = notification.NoopSender{}
	if os.Getenv("EMAIL_FROM") != "" {
		sesSender, err := notification.NewSESSender(context.Background(), zlog)
		if err != nil {
			zlog.Warn("email disabled", zap.Error(err))
		} else {
			mailer = sesSender
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run the deferred task dispatcher beside the HTTP server.
	go queue.Run(ctx)

	srv := server.NewServer(db, zlog, queue, mailer)

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			zlog.Error("server shutdown", zap.Error(err))
		}
	}()

	zlog.Info("server starting", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("cannot start server: %s", err)
	}
}
