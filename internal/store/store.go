// Package store persists the full application snapshot as a single JSON
// value in a local sqlite file, keyed "calorieAppData".
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"caloriescan/internal/model"
)

const stateKey = "calorieAppData"

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite file at path and prepares the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the persisted snapshot. An absent or unreadable snapshot
// degrades to defaults; only a real query failure is an error.
func (s *Store) Load() (model.AppState, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, stateKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.DefaultState(), nil
	}
	if err != nil {
		return model.AppState{}, fmt.Errorf("load app state: %w", err)
	}

	state := model.DefaultState()
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return model.DefaultState(), nil
	}
	if state.FoodItems == nil {
		state.FoodItems = []model.FoodLogEntry{}
	}
	if state.Favorites == nil {
		state.Favorites = []model.Favorite{}
	}
	if state.WeightEntries == nil {
		state.WeightEntries = []model.WeightEntry{}
	}
	if state.HistoricalData == nil {
		state.HistoricalData = map[string]model.DayRecord{}
	}
	return state, nil
}

// Save overwrites the persisted snapshot with the given state.
func (s *Store) Save(state model.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal app state: %w", err)
	}
	_, err = s.db.Exec(`
INSERT INTO app_state(key, value, updated_at)
VALUES(?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at
`, stateKey, string(payload), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save app state: %w", err)
	}
	return nil
}
