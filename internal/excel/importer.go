package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/clozebot/internal/cloze"
	"github.com/example/clozebot/internal/database"
	"github.com/example/clozebot/pkg/models"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath   string // Path to the Excel or CSV file
	DeckColumn string // Column with the deck name
	TextColumn string // Column with the cloze card text
	SheetName  string // Name of the sheet to import
	StartRow   int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		DeckColumn: "A",
		TextColumn: "B",
		SheetName:  "Sheet1",
		StartRow:   2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	DecksCreated   int
	CardsCreated   int
	ItemsCreated   int
	Skipped        int
	Errors         []string
}

// ImportCards imports cloze cards for a user from an Excel or CSV file.
// Each row holds a deck name and a cloze template; the template is
// validated and expanded into items before anything is written.
func ImportCards(userID int64, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(userID, config)
	}
	return importFromExcel(userID, config)
}

// importFromExcel imports cards from an Excel file
func importFromExcel(userID int64, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	imp := newImport(userID, config)
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		deckName := cellValue(row, config.DeckColumn)
		text := cellValue(row, config.TextColumn)
		imp.processRow(deckName, text, i+1)
	}
	return imp.result, nil
}

// importFromCSV imports cards from a CSV file
func importFromCSV(userID int64, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	imp := newImport(userID, config)
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		line++
		if line < config.StartRow {
			continue
		}
		deckName := csvValue(record, config.DeckColumn)
		text := csvValue(record, config.TextColumn)
		imp.processRow(deckName, text, line)
	}
	return imp.result, nil
}

// cardImport accumulates state across the rows of one import run.
type cardImport struct {
	userID   int64
	deckRepo *database.DeckRepository
	cardRepo *database.CardRepository
	cfgRepo  *database.ConfigRepository
	decks    map[string]*models.Deck
	result   *ImportResult
}

func newImport(userID int64, config ImportConfig) *cardImport {
	return &cardImport{
		userID:   userID,
		deckRepo: database.NewDeckRepository(),
		cardRepo: database.NewCardRepository(),
		cfgRepo:  database.NewConfigRepository(),
		decks:    make(map[string]*models.Deck),
		result:   &ImportResult{Errors: make([]string, 0)},
	}
}

// processRow validates and stores one (deck, text) row. Row-level failures
// are accumulated in the result; they never abort the import.
func (c *cardImport) processRow(deckName, text string, rowNum int) {
	c.result.TotalProcessed++

	deckName = strings.TrimSpace(deckName)
	text = strings.TrimSpace(text)
	if deckName == "" || text == "" {
		c.result.Skipped++
		return
	}

	count := cloze.Count(text)
	if count == 0 {
		c.result.Errors = append(c.result.Errors,
			fmt.Sprintf("Row %d: text contains no cloze deletions", rowNum))
		return
	}

	deck, err := c.deck(deckName)
	if err != nil {
		c.result.Errors = append(c.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}

	cfg, err := c.cfgRepo.GetForDeck(deck.ID)
	if err != nil {
		c.result.Errors = append(c.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}

	now := time.Now()
	card := models.Card{
		ID:         uuid.NewString(),
		DeckID:     deck.ID,
		Text:       text,
		ClozeCount: count,
	}
	items, err := cloze.Expand(card, c.userID, cfg.DefaultEase, now)
	if err != nil {
		c.result.Errors = append(c.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}

	if err := c.cardRepo.CreateWithItems(&card, items); err != nil {
		c.result.Errors = append(c.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}
	c.result.CardsCreated++
	c.result.ItemsCreated += len(items)
}

func (c *cardImport) deck(name string) (*models.Deck, error) {
	key := strings.ToLower(name)
	if deck, ok := c.decks[key]; ok {
		return deck, nil
	}
	existing, err := c.deckRepo.GetByName(c.userID, name)
	if err == nil {
		c.decks[key] = existing
		return existing, nil
	}

	deck, err := c.deckRepo.GetOrCreate(c.userID, name)
	if err != nil {
		return nil, err
	}
	c.result.DecksCreated++
	c.decks[key] = deck
	return deck, nil
}

// cellValue returns the value of the lettered column from an Excel row.
func cellValue(row []string, column string) string {
	idx := columnIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// csvValue returns the value of the lettered column from a CSV record.
func csvValue(record []string, column string) string {
	return cellValue(record, column)
}

// columnIndex converts a spreadsheet column letter ("A", "B", ... "AA") to
// a zero-based index.
func columnIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	idx := 0
	for _, ch := range column {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		idx = idx*26 + int(ch-'A') + 1
	}
	return idx - 1
}
