package bot

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/example/clozebot/internal/cloze"
	"github.com/example/clozebot/internal/excel"
	"github.com/example/clozebot/internal/spaced_repetition"
	"github.com/example/clozebot/internal/study"
	"github.com/example/clozebot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

const helpText = `Available commands:
/study [deck] - Start a study session
/decks - List your decks
/add <deck> :: <text> - Add a cloze card, e.g. /add Geo :: {{c1::Paris}} is in {{c2::France}}
/import - Import cards from an .xlsx or .csv file
/stats - Show your statistics
/settings - Show your settings
/notify on|off - Toggle daily reminders
/time <hour> - Set the reminder hour (0-23)
/limit <n> - Set how many new cards a session introduces
/config <deck> <setting> <value> - Override a deck's scheduling
/remind - Check your due cards now
/cancel - Abandon the current session`

// handleCommand routes bot commands
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	user, err := b.userRepo.GetOrCreate(message.From.ID, message.From.UserName, message.From.FirstName)
	if err != nil {
		log.Printf("Error registering user %d: %v", message.From.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Something went wrong, please try again."))
		return
	}

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.send(tgbotapi.NewMessage(message.Chat.ID, helpText))
	case "study":
		b.handleStudy(message, user)
	case "decks":
		b.handleDecks(message, user)
	case "add":
		b.handleAdd(message, user)
	case "import":
		b.awaitingUpload[user.ID] = true
		b.send(tgbotapi.NewMessage(message.Chat.ID,
			"Send me an .xlsx or .csv file: column A is the deck name, column B the cloze text."))
	case "stats":
		b.handleStats(message, user)
	case "settings":
		b.handleSettings(message, user)
	case "notify":
		b.handleNotify(message, user)
	case "time":
		b.handleTime(message, user)
	case "limit":
		b.handleLimit(message, user)
	case "config":
		b.handleConfig(message, user)
	case "remind":
		b.handleRemind(message, user)
	case "cancel":
		delete(b.sessions, user.ID)
		delete(b.awaitingUpload, user.ID)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Session cancelled."))
	default:
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /help."))
	}
}

// handleStart greets the user after registration
func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := "Welcome to clozebot! 🎓\n\nCreate cloze cards with /add, then review them with /study.\n\n" + helpText
	b.send(tgbotapi.NewMessage(message.Chat.ID, welcome))
}

// handleDecks lists the user's decks with their due and new counts
func (b *Bot) handleDecks(message *tgbotapi.Message, user *models.User) {
	decks, err := b.deckRepo.GetByUser(user.ID)
	if err != nil {
		log.Printf("Error listing decks for user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not load your decks."))
		return
	}
	if len(decks) == 0 {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "You have no decks yet. Add a card with /add or /import."))
		return
	}

	now := time.Now()
	var sb strings.Builder
	sb.WriteString("*Your decks:*\n")
	for _, deck := range decks {
		due, err := b.itemRepo.CountDueForDeck(user.ID, deck.ID, now)
		if err != nil {
			log.Printf("Error counting due items for deck %d: %v", deck.ID, err)
			continue
		}
		fresh, err := b.itemRepo.CountNewForDeck(user.ID, deck.ID)
		if err != nil {
			log.Printf("Error counting new items for deck %d: %v", deck.ID, err)
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s — %d due, %d new\n", deck.Name, due, fresh))
	}
	msg := tgbotapi.NewMessage(message.Chat.ID, sb.String())
	msg.ParseMode = "Markdown"
	b.send(msg)
}

// handleAdd creates a single cloze card from "/add <deck> :: <text>"
func (b *Bot) handleAdd(message *tgbotapi.Message, user *models.User) {
	args := message.CommandArguments()
	parts := strings.SplitN(args, "::", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		b.send(tgbotapi.NewMessage(message.Chat.ID,
			"Usage: /add <deck> :: <text with {{c1::deletions}}>"))
		return
	}
	deckName := strings.TrimSpace(parts[0])
	text := strings.TrimSpace(parts[1])

	count := cloze.Count(text)
	if count == 0 {
		b.send(tgbotapi.NewMessage(message.Chat.ID,
			"That text has no cloze deletions. Mark at least one answer like {{c1::answer}}."))
		return
	}

	deck, err := b.deckRepo.GetOrCreate(user.ID, deckName)
	if err != nil {
		log.Printf("Error creating deck for user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not create the deck."))
		return
	}

	cfg, err := b.cfgRepo.GetForDeck(deck.ID)
	if err != nil {
		log.Printf("Error loading config for deck %d: %v", deck.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not load the deck configuration."))
		return
	}

	card := models.Card{
		ID:         uuid.NewString(),
		DeckID:     deck.ID,
		Text:       text,
		ClozeCount: count,
	}
	items, err := cloze.Expand(card, user.ID, cfg.DefaultEase, time.Now())
	if err != nil {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "That text has no cloze deletions."))
		return
	}
	if err := b.cardRepo.CreateWithItems(&card, items); err != nil {
		log.Printf("Error storing card for user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not store the card."))
		return
	}

	b.send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("Added to %s: 1 card, %d reviewable item(s).", deck.Name, len(items))))
}

// handleStudy builds the session queue for a deck and presents the first card
func (b *Bot) handleStudy(message *tgbotapi.Message, user *models.User) {
	deck, err := b.resolveDeck(user, strings.TrimSpace(message.CommandArguments()))
	if err != nil {
		b.send(tgbotapi.NewMessage(message.Chat.ID, err.Error()))
		return
	}

	cfg, err := b.cfgRepo.GetForDeck(deck.ID)
	if err != nil {
		log.Printf("Error loading config for deck %d: %v", deck.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not load the deck configuration."))
		return
	}

	now := time.Now()
	due, err := b.itemRepo.GetDue(user.ID, deck.ID, now)
	if err != nil {
		log.Printf("Error loading due items for deck %d: %v", deck.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not load your due cards."))
		return
	}

	newLimit := cfg.NewPerSession
	if user.NewPerSession > 0 {
		newLimit = user.NewPerSession
	}
	fresh, err := b.itemRepo.GetNew(user.ID, deck.ID, newLimit)
	if err != nil {
		log.Printf("Error loading new items for deck %d: %v", deck.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not load your new cards."))
		return
	}

	queue := study.BuildQueue(due, fresh, newLimit)
	if len(queue) == 0 {
		b.send(tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("Nothing to study in %s right now. 🎉", deck.Name)))
		return
	}

	b.sessions[user.ID] = study.NewSession(user.ID, queue, cfg, b.store)
	b.send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("Studying %s: %d card(s) queued.", deck.Name, len(queue))))
	b.sendCurrentCard(message.Chat.ID, user.ID)
}

// resolveDeck picks the deck to study: the named one, or the only one.
func (b *Bot) resolveDeck(user *models.User, name string) (*models.Deck, error) {
	if name != "" {
		deck, err := b.deckRepo.GetByName(user.ID, name)
		if err != nil {
			return nil, fmt.Errorf("no deck named %q — see /decks", name)
		}
		return deck, nil
	}
	decks, err := b.deckRepo.GetByUser(user.ID)
	if err != nil || len(decks) == 0 {
		return nil, fmt.Errorf("you have no decks yet — add cards with /add or /import")
	}
	if len(decks) > 1 {
		return nil, fmt.Errorf("you have several decks — use /study <deck>")
	}
	return &decks[0], nil
}

// sendCurrentCard shows the question side of the session's current card,
// or the session summary when the queue is exhausted.
func (b *Bot) sendCurrentCard(chatID, userID int64) {
	session, ok := b.sessions[userID]
	if !ok {
		return
	}

	entry, ok := session.Current()
	if !ok {
		b.finishSession(chatID, userID, session)
		return
	}

	card, err := b.cardRepo.GetByID(entry.Item.CardID)
	if err != nil {
		log.Printf("Error loading card %s: %v", entry.Item.CardID, err)
		b.send(tgbotapi.NewMessage(chatID, "Could not load the next card."))
		return
	}

	question := cloze.RenderQuestion(card.Text, entry.Item.ClozeIndex)
	header := fmt.Sprintf("Card %d of %d", session.Answered+1, session.Answered+session.Remaining())
	if entry.IsNew {
		header += " · new"
	}

	msg := tgbotapi.NewMessage(chatID, header+"\n\n"+question)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Show answer", "reveal"),
		),
	)
	session.MarkShown(time.Now())
	b.send(msg)
}

// handleCallbackQuery routes inline-keyboard presses
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Error answering callback: %v", err)
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID

	switch {
	case query.Data == "reveal":
		b.revealAnswer(chatID, query.Message.MessageID, userID)
	case strings.HasPrefix(query.Data, "rate:"):
		b.handleRating(chatID, userID, strings.TrimPrefix(query.Data, "rate:"))
	}
}

// revealAnswer flips the current card to its answer side and offers the
// four ratings, each labelled with the wait it would produce.
func (b *Bot) revealAnswer(chatID int64, messageID int, userID int64) {
	session, ok := b.sessions[userID]
	if !ok {
		b.send(tgbotapi.NewMessage(chatID, "No active session. Send /study to start one."))
		return
	}
	entry, ok := session.Current()
	if !ok {
		b.finishSession(chatID, userID, session)
		return
	}

	card, err := b.cardRepo.GetByID(entry.Item.CardID)
	if err != nil {
		log.Printf("Error loading card %s: %v", entry.Item.CardID, err)
		return
	}

	answer := cloze.RenderAnswer(card.Text, entry.Item.ClozeIndex)

	// The session already carries the deck's effective configuration.
	previews := spaced_repetition.NextIntervals(entry.Item, session.Config(), time.Now())

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			ratingButton("Again", models.Again, previews),
			ratingButton("Hard", models.Hard, previews),
		),
		tgbotapi.NewInlineKeyboardRow(
			ratingButton("Good", models.Good, previews),
			ratingButton("Easy", models.Easy, previews),
		),
	)

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, answer, keyboard)
	edit.ParseMode = "Markdown"
	b.send(edit)
}

func ratingButton(label string, rating models.Rating, previews map[models.Rating]time.Duration) tgbotapi.InlineKeyboardButton {
	text := fmt.Sprintf("%s · %s", label, spaced_repetition.FormatInterval(previews[rating]))
	return tgbotapi.NewInlineKeyboardButtonData(text, "rate:"+rating.String())
}

// handleRating records the rating for the current card and advances
func (b *Bot) handleRating(chatID, userID int64, name string) {
	session, ok := b.sessions[userID]
	if !ok {
		b.send(tgbotapi.NewMessage(chatID, "No active session. Send /study to start one."))
		return
	}

	rating, err := models.ParseRating(name)
	if err != nil {
		log.Printf("Unexpected rating callback from user %d: %q", userID, name)
		return
	}

	if _, err := session.Answer(rating, time.Now()); err != nil {
		log.Printf("Error recording review for user %d: %v", userID, err)
		b.send(tgbotapi.NewMessage(chatID, "Could not save that review, please try again."))
		return
	}

	b.sendCurrentCard(chatID, userID)
}

// finishSession reports the session summary and discards its state
func (b *Bot) finishSession(chatID, userID int64, session *study.Session) {
	text := fmt.Sprintf("🎉 Session complete!\n\nReviewed: %d\nNew cards seen: %d\nForgotten: %d",
		session.Answered, session.NewSeen, session.Lapsed)
	b.send(tgbotapi.NewMessage(chatID, text))
	delete(b.sessions, userID)
}

// handleStats reports item-state and review-log aggregates
func (b *Bot) handleStats(message *tgbotapi.Message, user *models.User) {
	counts, err := b.itemRepo.StateCounts(user.ID)
	if err != nil {
		log.Printf("Error loading stats for user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not load your statistics."))
		return
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	due, err := b.itemRepo.CountDue(user.ID, now)
	if err != nil {
		log.Printf("Error counting due items for user %d: %v", user.ID, err)
	}
	reviewedToday, err := b.eventRepo.CountSince(user.ID, dayStart)
	if err != nil {
		log.Printf("Error counting reviews for user %d: %v", user.ID, err)
	}
	againRate, err := b.eventRepo.AgainRateSince(user.ID, dayStart)
	if err != nil {
		log.Printf("Error computing again rate for user %d: %v", user.ID, err)
	}

	text := fmt.Sprintf(`*Your statistics*

New: %d
Learning: %d
Review: %d
Mature: %d

Due now: %d
Reviewed today: %d
Forgotten today: %.0f%%`,
		counts[models.StateNew], counts[models.StateLearning],
		counts[models.StateReview], counts[models.StateMature],
		due, reviewedToday, againRate*100)

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = "Markdown"
	b.send(msg)
}

// handleSettings shows the user's notification and session settings
func (b *Bot) handleSettings(message *tgbotapi.Message, user *models.User) {
	enabled := "off"
	if user.NotificationEnabled {
		enabled = "on"
	}
	text := fmt.Sprintf(`*Your settings*

Reminders: %s
Reminder hour: %d:00
New cards per session: %d

/notify on|off - Toggle daily reminders
/time <hour> - Set the reminder hour (0-23)
/limit <n> - Set how many new cards a session introduces
/config <deck> <setting> <value> - Override a deck's scheduling`,
		enabled, user.NotificationHour, user.NewPerSession)

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = "Markdown"
	b.send(msg)
}

// handleNotify toggles daily due-card reminders
func (b *Bot) handleNotify(message *tgbotapi.Message, user *models.User) {
	enabled, err := parseNotifyArg(message.CommandArguments())
	if err != nil {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Usage: /notify <on|off>"))
		return
	}

	user.NotificationEnabled = enabled
	if err := b.userRepo.Update(user); err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not save your settings."))
		return
	}

	if enabled {
		b.send(tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("✅ Reminders on, daily at %d:00.", user.NotificationHour)))
	} else {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "✅ Reminders off."))
	}
}

// handleTime sets the hour reminders are delivered
func (b *Bot) handleTime(message *tgbotapi.Message, user *models.User) {
	hour, err := parseHourArg(message.CommandArguments())
	if err != nil {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Usage: /time <hour between 0 and 23>"))
		return
	}

	user.NotificationHour = hour
	if err := b.userRepo.Update(user); err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not save your settings."))
		return
	}

	b.send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("✅ Reminders will arrive at %d:00.", hour)))
}

// handleLimit sets how many new cards a session introduces
func (b *Bot) handleLimit(message *tgbotapi.Message, user *models.User) {
	n, err := strconv.Atoi(strings.TrimSpace(message.CommandArguments()))
	if err != nil || n < 0 {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Usage: /limit <number of new cards per session>"))
		return
	}

	user.NewPerSession = n
	if err := b.userRepo.Update(user); err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not save your settings."))
		return
	}

	b.send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("✅ Sessions will introduce up to %d new card(s).", n)))
}

const configUsage = `Usage: /config <deck> <setting> <value>
Settings: steps (minutes, e.g. 1,10), graduating (days), newlimit (cards)`

// handleConfig stores one scheduling override for a deck
func (b *Bot) handleConfig(message *tgbotapi.Message, user *models.User) {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) != 3 {
		b.send(tgbotapi.NewMessage(message.Chat.ID, configUsage))
		return
	}

	deck, err := b.deckRepo.GetByName(user.ID, fields[0])
	if err != nil {
		b.send(tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("No deck named %q — see /decks.", fields[0])))
		return
	}

	cfg, err := b.cfgRepo.GetForDeck(deck.ID)
	if err != nil {
		log.Printf("Error loading config for deck %d: %v", deck.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not load the deck configuration."))
		return
	}

	cfg, err = applyConfigSetting(cfg, fields[1], fields[2])
	if err != nil {
		b.send(tgbotapi.NewMessage(message.Chat.ID, err.Error()+"\n\n"+configUsage))
		return
	}

	if err := b.cfgRepo.SetForDeck(deck.ID, cfg); err != nil {
		log.Printf("Error saving config for deck %d: %v", deck.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not save the deck configuration."))
		return
	}

	b.send(tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("✅ %s updated for %s.", fields[1], deck.Name)))
}

// handleRemind triggers an immediate due-count reminder
func (b *Bot) handleRemind(message *tgbotapi.Message, user *models.User) {
	if b.reminders == nil {
		return
	}
	if err := b.reminders.RunManualCheck(user.ID); err != nil {
		log.Printf("Error running manual reminder for user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not check your due cards."))
		return
	}

	// The check stays silent when nothing is due, so answer here instead.
	if due, err := b.itemRepo.CountDue(user.ID, time.Now()); err == nil && due == 0 {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Nothing due right now. 🎉"))
	}
}

func parseNotifyArg(arg string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off")
}

func parseHourArg(arg string) (int, error) {
	hour, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("expected an hour between 0 and 23")
	}
	return hour, nil
}

// applyConfigSetting parses one "/config" value into the configuration.
func applyConfigSetting(cfg models.Config, setting, value string) (models.Config, error) {
	switch strings.ToLower(setting) {
	case "steps":
		var steps []int
		for _, p := range strings.Split(value, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n <= 0 {
				return cfg, fmt.Errorf("steps must be positive minutes, e.g. 1,10")
			}
			steps = append(steps, n)
		}
		cfg.LearningSteps = steps
	case "graduating":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("graduating must be a positive number of days")
		}
		cfg.GraduatingInterval = n
	case "newlimit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("newlimit must be zero or more cards")
		}
		cfg.NewPerSession = n
	default:
		return cfg, fmt.Errorf("unknown setting %q", setting)
	}
	return cfg, nil
}

// handleDocument receives an import file after /import
func (b *Bot) handleDocument(message *tgbotapi.Message) {
	userID := message.From.ID
	if !b.awaitingUpload[userID] {
		return
	}
	delete(b.awaitingUpload, userID)

	doc := message.Document
	ext := strings.ToLower(filepath.Ext(doc.FileName))
	if ext != ".xlsx" && ext != ".csv" {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Please send an .xlsx or .csv file."))
		return
	}

	path, err := b.downloadDocument(doc)
	if err != nil {
		log.Printf("Error downloading import file from user %d: %v", userID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Could not download the file."))
		return
	}
	defer os.Remove(path)

	cfg := excel.DefaultImportConfig()
	cfg.FilePath = path
	result, err := excel.ImportCards(userID, cfg)
	if err != nil {
		log.Printf("Error importing cards for user %d: %v", userID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Import failed: "+err.Error()))
		return
	}

	text := fmt.Sprintf("Import finished: %d row(s) processed, %d card(s) and %d item(s) created, %d skipped.",
		result.TotalProcessed, result.CardsCreated, result.ItemsCreated, result.Skipped)
	if len(result.Errors) > 0 {
		text += fmt.Sprintf("\n%d row(s) had problems:\n%s",
			len(result.Errors), strings.Join(result.Errors, "\n"))
	}
	b.send(tgbotapi.NewMessage(message.Chat.ID, text))
}

// downloadDocument fetches a Telegram document into a temp file
func (b *Bot) downloadDocument(doc *tgbotapi.Document) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: doc.FileID})
	if err != nil {
		return "", fmt.Errorf("failed to get file info: %v", err)
	}

	resp, err := http.Get(file.Link(b.api.Token))
	if err != nil {
		return "", fmt.Errorf("failed to download file: %v", err)
	}
	defer resp.Body.Close()

	out, err := os.CreateTemp("", "clozebot-import-*"+filepath.Ext(doc.FileName))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to write temp file: %v", err)
	}
	return out.Name(), nil
}
