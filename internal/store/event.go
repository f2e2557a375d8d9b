package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// appendEvent inserts one row into table. Every event table draws its
// sequence from the single event_sequence row, so LLM requests and learner
// activity can be ordered against each other. The counter bump and the
// insert share a transaction; a failed insert leaves no gap.
func (l *EventLog) appendEvent(ctx context.Context, table string, cols []string, vals ...any) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx)
	if err != nil {
		return 0, err
	}

	cols = append([]string{"sequence", "timestamp"}, cols...)
	args := append([]any{seq, time.Now().UnixMilli()}, vals...)
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?%s)",
		table, strings.Join(cols, ", "), strings.Repeat(", ?", len(cols)-1))
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return 0, err
	}
	return seq, tx.Commit()
}

func nextSequence(ctx context.Context, tx *sql.Tx) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx,
		`UPDATE event_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
