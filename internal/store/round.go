package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/roshambo/internal/game"
	"github.com/ayusman/roshambo/internal/gesture"
)

// Round is a settled round as stored in the history.
type Round struct {
	ID        string
	Mode      game.Mode
	PlayerOne gesture.Gesture
	PlayerTwo gesture.Gesture
	Outcome   gesture.Outcome
	CreatedAt time.Time
}

// Stats are outcome counts over a set of rounds.
type Stats struct {
	Total         int
	PlayerOneWins int
	PlayerTwoWins int
	Ties          int
	Invalid       int
}

// RoundRepository provides access to the round history.
type RoundRepository struct {
	db *sql.DB
}

// Rounds returns the round repository for this store.
func (s *Store) Rounds() *RoundRepository {
	return &RoundRepository{db: s.db}
}

// Create inserts rd, assigning an ID when it has none.
func (r *RoundRepository) Create(rd *Round) error {
	if !rd.Mode.Playing() {
		return fmt.Errorf("cannot store a round in mode %s", rd.Mode)
	}
	if rd.ID == "" {
		rd.ID = uuid.New().String()
	}
	if rd.CreatedAt.IsZero() {
		rd.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO rounds (id, mode, player_one, player_two, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rd.ID, rd.Mode.String(), rd.PlayerOne.String(), rd.PlayerTwo.String(), rd.Outcome.String(), rd.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// Record stores a verdict as a new round.
func (r *RoundRepository) Record(v game.Verdict) (*Round, error) {
	rd := &Round{
		Mode:      v.Mode,
		PlayerOne: v.P1,
		PlayerTwo: v.P2,
		Outcome:   v.Outcome,
	}
	if err := r.Create(rd); err != nil {
		return nil, err
	}
	return rd, nil
}

// GetByID retrieves a round by its ID.
func (r *RoundRepository) GetByID(id string) (*Round, error) {
	row := r.db.QueryRow(
		`SELECT id, mode, player_one, player_two, outcome, created_at
		 FROM rounds WHERE id = ?`,
		id,
	)

	rd, err := scanRound(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rd, nil
}

// List returns up to limit rounds, newest first. A limit <= 0 returns all.
func (r *RoundRepository) List(limit int) ([]*Round, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT id, mode, player_one, player_two, outcome, created_at
		 FROM rounds ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []*Round
	for rows.Next() {
		rd, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, rd)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rounds, nil
}

// Stats counts outcomes for mode, or for every mode when mode is game.Menu.
func (r *RoundRepository) Stats(mode game.Mode) (*Stats, error) {
	query := `SELECT outcome, COUNT(*) FROM rounds GROUP BY outcome`
	var args []any
	if mode.Playing() {
		query = `SELECT outcome, COUNT(*) FROM rounds WHERE mode = ? GROUP BY outcome`
		args = append(args, mode.String())
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &Stats{}
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}

		stats.Total += n
		switch gesture.ParseOutcome(outcome) {
		case gesture.PlayerOneWins:
			stats.PlayerOneWins += n
		case gesture.PlayerTwoWins:
			stats.PlayerTwoWins += n
		case gesture.Tie:
			stats.Ties += n
		default:
			stats.Invalid += n
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// Clear deletes the whole history and returns how many rounds were removed.
func (r *RoundRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM rounds`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(s scanner) (*Round, error) {
	rd := &Round{}
	var mode, p1, p2, outcome string

	if err := s.Scan(&rd.ID, &mode, &p1, &p2, &outcome, &rd.CreatedAt); err != nil {
		return nil, err
	}

	m, err := game.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	rd.Mode = m
	rd.PlayerOne = gesture.Parse(p1)
	rd.PlayerTwo = gesture.Parse(p2)
	rd.Outcome = gesture.ParseOutcome(outcome)
	return rd, nil
}
