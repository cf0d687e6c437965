package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/clozebot/internal/database"
	"github.com/go-co-op/gocron"
)

// Default notification window
const (
	DefaultNotificationStartHour = 8  // Earliest hour reminders are sent
	DefaultNotificationEndHour   = 22 // Latest hour reminders are sent
)

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// Notifier interface for sending notifications
type Notifier interface {
	SendReminder(userID int64, dueCount int) error
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Schedule hourly check for users who need notifications
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders finds users whose notification hour matches the
// current hour and tells them how many items are waiting.
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().Hour()

	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	userRepo := database.NewUserRepository()
	itemRepo := database.NewItemRepository()

	users, err := userRepo.GetUsersForNotification(currentHour)
	if err != nil {
		log.Printf("Error getting users for notification: %v", err)
		return
	}

	for _, user := range users {
		dueCount, err := itemRepo.CountDue(user.ID, time.Now())
		if err != nil {
			log.Printf("Error counting due items for user %d: %v", user.ID, err)
			continue
		}
		if dueCount == 0 {
			continue
		}
		if err := s.notifier.SendReminder(user.ID, dueCount); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}

// RunManualCheck forces a due-item reminder for a specific user
func (s *Scheduler) RunManualCheck(userID int64) error {
	itemRepo := database.NewItemRepository()

	dueCount, err := itemRepo.CountDue(userID, time.Now())
	if err != nil {
		return err
	}
	if dueCount > 0 {
		return s.notifier.SendReminder(userID, dueCount)
	}
	return nil
}

// envHour reads an hour-of-day override from the environment.
func envHour(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
