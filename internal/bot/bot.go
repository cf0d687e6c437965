package bot

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/example/clozebot/internal/database"
	"github.com/example/clozebot/internal/study"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot represents the Telegram bot application
type Bot struct {
	api       *tgbotapi.BotAPI
	userRepo  *database.UserRepository
	deckRepo  *database.DeckRepository
	cardRepo  *database.CardRepository
	itemRepo  *database.ItemRepository
	cfgRepo   *database.ConfigRepository
	eventRepo *database.ReviewEventRepository
	store     *database.SessionStore

	reminders ReminderRunner // set after construction, may be nil

	sessions       map[int64]*study.Session // active study sessions by user
	awaitingUpload map[int64]bool           // users expected to send an import file
}

// ReminderRunner triggers an on-demand due-count reminder. The scheduler
// implements it; it is wired in after construction because the scheduler
// needs the bot as its notifier.
type ReminderRunner interface {
	RunManualCheck(userID int64) error
}

// SetReminderRunner wires the reminder scheduler into the /remind command.
func (b *Bot) SetReminderRunner(r ReminderRunner) {
	b.reminders = r
}

// New creates a new bot instance
func New() (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	return &Bot{
		api:       api,
		userRepo:  database.NewUserRepository(),
		deckRepo:  database.NewDeckRepository(),
		cardRepo:  database.NewCardRepository(),
		itemRepo:  database.NewItemRepository(),
		cfgRepo:   database.NewConfigRepository(),
		eventRepo: database.NewReviewEventRepository(),
		store:     database.NewSessionStore(),

		sessions:       make(map[int64]*study.Session),
		awaitingUpload: make(map[int64]bool),
	}, nil
}

// Start begins processing updates until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop shuts down the update loop
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	return nil
}

// handleUpdate dispatches one incoming update
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(update.CallbackQuery)
	case update.Message != nil && update.Message.Document != nil:
		b.handleDocument(update.Message)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil:
		b.send(tgbotapi.NewMessage(update.Message.Chat.ID,
			"I don't understand. Use /help to see available commands."))
	}
}

// SendReminder implements scheduler.Notifier: it tells a user how many
// items are waiting for review.
func (b *Bot) SendReminder(userID int64, dueCount int) error {
	text := fmt.Sprintf("⏰ You have %d card(s) due for review. Send /study to start.", dueCount)
	msg := tgbotapi.NewMessage(userID, text)
	_, err := b.api.Send(msg)
	return err
}

// send delivers a message and logs delivery failures
func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
