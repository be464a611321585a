// ABOUTME: Append-only history ledger backed by a flat CSV file
// ABOUTME: Each append rewrites the full log; single-writer usage assumed

package services

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/Bibekdka/3dd/models"
)

// historyHeader is the fixed column set of the backing store.
var historyHeader = []string{"Timestamp", "Type", "Name", "Details", "Cost_INR"}

const historyTimeLayout = "2006-01-02 15:04:05"

// HistoryLedger appends immutable records of completed analyses and
// scrapes to a CSV file. Appends are O(n) (read all, append one, rewrite)
// which is acceptable for a single operator's session history.
type HistoryLedger struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewHistoryLedger(path string) *HistoryLedger {
	return &HistoryLedger{path: path, now: time.Now}
}

// Append adds one entry, newest-last. The rewrite goes through a temp
// file and rename so a failed write cannot truncate the existing log.
func (l *HistoryLedger) Append(entryType models.EntryType, name, details string, cost float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readAll()
	if err != nil {
		return err
	}

	entries = append(entries, models.HistoryEntry{
		Timestamp: l.now(),
		Type:      entryType,
		Name:      name,
		Details:   details,
		Cost:      cost,
	})

	return l.writeAll(entries)
}

// LoadAll returns all entries, oldest first. A missing file yields an
// empty sequence, not an error.
func (l *HistoryLedger) LoadAll() ([]models.HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readAll()
}

// Clear removes every entry. The file is rewritten with only the header
// so a subsequent LoadAll still sees the expected columns.
func (l *HistoryLedger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writeAll(nil)
}

func (l *HistoryLedger) readAll() ([]models.HistoryEntry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, models.NewCollaboratorError("history.read", fmt.Sprintf("cannot open %s", l.path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, models.NewCollaboratorError("history.read", fmt.Sprintf("cannot parse %s", l.path), err)
	}
	if len(rows) <= 1 {
		return nil, nil // empty or header-only
	}

	entries := make([]models.HistoryEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(historyHeader) {
			return nil, models.NewCollaboratorError("history.read", fmt.Sprintf("malformed row with %d columns in %s", len(row), l.path), nil)
		}
		ts, err := time.ParseInLocation(historyTimeLayout, row[0], time.Local)
		if err != nil {
			return nil, models.NewCollaboratorError("history.read", fmt.Sprintf("bad timestamp %q in %s", row[0], l.path), err)
		}
		cost, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, models.NewCollaboratorError("history.read", fmt.Sprintf("bad cost %q in %s", row[4], l.path), err)
		}
		entries = append(entries, models.HistoryEntry{
			Timestamp: ts,
			Type:      models.EntryType(row[1]),
			Name:      row[2],
			Details:   row[3],
			Cost:      cost,
		})
	}
	return entries, nil
}

func (l *HistoryLedger) writeAll(entries []models.HistoryEntry) error {
	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".history-*.csv")
	if err != nil {
		return models.NewCollaboratorError("history.write", "cannot create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	writer := csv.NewWriter(tmp)
	if err := writer.Write(historyHeader); err != nil {
		tmp.Close()
		return models.NewCollaboratorError("history.write", "cannot write header", err)
	}
	for _, e := range entries {
		row := []string{
			e.Timestamp.Format(historyTimeLayout),
			string(e.Type),
			e.Name,
			e.Details,
			strconv.FormatFloat(round2(e.Cost), 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return models.NewCollaboratorError("history.write", "cannot write row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return models.NewCollaboratorError("history.write", "cannot flush rows", err)
	}
	if err := tmp.Close(); err != nil {
		return models.NewCollaboratorError("history.write", "cannot close temp file", err)
	}

	if err := os.Rename(tmpName, l.path); err != nil {
		return models.NewCollaboratorError("history.write", fmt.Sprintf("cannot replace %s", l.path), err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
