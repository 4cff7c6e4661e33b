package services

import (
	"context"
	"log"
	"time"

	"tasktrack/internal/repositories"
)

const reminderBatchLimit = 100

// ReminderService periodically mails a digest of open tasks whose due
// date falls inside the configured window.
type ReminderService struct {
	repo     repositories.TaskRepository
	email    EmailService
	notifyTo string
	interval time.Duration
	window   time.Duration
}

func NewReminderService(repo repositories.TaskRepository, email EmailService, notifyTo string, interval, window time.Duration) *ReminderService {
	return &ReminderService{
		repo:     repo,
		email:    email,
		notifyTo: notifyTo,
		interval: interval,
		window:   window,
	}
}

// Run blocks until ctx is cancelled. Intended to be launched as a
// goroutine from app wiring.
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[reminder] started interval=%s window=%s", s.interval, s.window)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[reminder] stopped")
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *ReminderService) scan(ctx context.Context) {
	until := time.Now().UTC().Add(s.window)
	tasks, err := s.repo.ListDueSoon(ctx, until, reminderBatchLimit)
	if err != nil {
		log.Printf("[reminder][err] list due soon: %v", err)
		return
	}
	if len(tasks) == 0 {
		return
	}
	if err := s.email.SendDueSoonDigest(s.notifyTo, tasks); err != nil {
		log.Printf("[reminder][err] send digest: %v", err)
		return
	}
	log.Printf("[reminder][ok] digest sent count=%d to=%s", len(tasks), s.notifyTo)
}
