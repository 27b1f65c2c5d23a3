package main

import (
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"rentafacil/internal/repository"
	"rentafacil/internal/service"
)

const stalePendingMaxAge = 24 * time.Hour

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	jobSvc := service.NewJobService(repository.NewJobRepository(database))
	reportSvc := service.NewReportService(repository.NewReportRepository(database))

	c := cron.New(cron.WithLocation(time.UTC))

	// Nightly reports for the previous day, 2 AM UTC.
	c.AddFunc("0 2 * * *", func() {
		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		if err := reportSvc.GenerateAllDailyReports(yesterday); err != nil {
			log.Printf("Error generating daily reports: %v", err)
		}
	})

	// Hourly sweeps: complete elapsed rentals, drop stale pending holds.
	c.AddFunc("@hourly", func() {
		if err := jobSvc.CompleteFinishedReservations(); err != nil {
			log.Printf("Error completing finished reservations: %v", err)
		}
		if _, err := jobSvc.PurgeStalePendingReservations(stalePendingMaxAge); err != nil {
			log.Printf("Error purging stale pending reservations: %v", err)
		}
	})

	c.Start()
	log.Println("Worker started: daily reports at 02:00 UTC, status sweeps hourly")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Worker stopping")
	<-c.Stop().Done()
}
