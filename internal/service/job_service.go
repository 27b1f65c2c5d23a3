package service

import (
	"fmt"
	"log"
	"time"

	"rentafacil/internal/db"
	"rentafacil/internal/repository"
)

type JobService struct {
	Repo repository.JobRepository
}

func NewJobService(repo repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteFinishedReservations marks Confirmed reservations whose rental
// period has elapsed as Completed. Completion happens out of band of the
// booking flow; only this sweep produces the Completed status.
func (s *JobService) CompleteFinishedReservations() error {
	log.Println("Cron Job: Checking for reservations to mark as 'Completed'...")

	reservationIDs, err := s.Repo.GetConfirmedReservationIDsPastEndDate()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed reservations past end date: %w", err)
	}

	if len(reservationIDs) == 0 {
		log.Println("Cron Job: No confirmed reservations found past their end date.")
		return nil
	}

	log.Printf("Cron Job: Found %d reservations to mark as 'Completed'. IDs: %v", len(reservationIDs), reservationIDs)

	err = s.Repo.UpdateReservationStatuses(reservationIDs, db.StatusCompleted)
	if err != nil {
		return fmt.Errorf("cron job: failed to update reservation statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d reservations to 'Completed'.", len(reservationIDs))
	return nil
}

// PurgeStalePendingReservations deletes Pending holds older than maxAge that
// were never confirmed.
func (s *JobService) PurgeStalePendingReservations(maxAge time.Duration) (int64, error) {
	deleted, err := s.Repo.DeletePendingReservationsOlderThan(time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to purge stale pending reservations: %w", err)
	}
	if deleted > 0 {
		log.Printf("Cron Job: Purged %d stale pending reservations.", deleted)
	}
	return deleted, nil
}
