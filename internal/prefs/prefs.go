// Package prefs persists the user's year selection across sessions.
package prefs

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"SatoshiSim/internal/storage"
)

// YearKey is the storage slot for the selected purchase year.
const YearKey = "selected-year"

// Prefs reads and writes the selected year, stored as a string-encoded
// integer. All failures degrade to the fallback year.
type Prefs struct {
	store storage.Store
}

func New(store storage.Store) *Prefs {
	return &Prefs{store: store}
}

// SelectedYear returns the persisted year, or fallback when nothing usable is
// stored.
func (p *Prefs) SelectedYear(fallback int) int {
	data, err := p.store.Read(YearKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[WARN] read selected year: %v, using %d", err, fallback)
		}
		return fallback
	}
	year, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		log.Printf("[WARN] stored year %q unparseable, using %d", data, fallback)
		return fallback
	}
	return year
}

// SetSelectedYear persists a new selection. Write failures are logged only;
// the in-memory selection still applies for the session.
func (p *Prefs) SetSelectedYear(year int) {
	if err := p.store.Write(YearKey, []byte(strconv.Itoa(year))); err != nil {
		log.Printf("[ERROR] save selected year: %v", err)
	}
}

// ClearSelectedYear removes the stored selection.
func (p *Prefs) ClearSelectedYear() {
	if err := p.store.Delete(YearKey); err != nil {
		log.Printf("[ERROR] clear selected year: %v", err)
	}
}
