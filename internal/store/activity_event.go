package store

import (
	"context"
	"fmt"
	"time"
)

// AppendActivity records a learner activity event. Payload is stored as
// given and is expected to be JSON.
func (l *EventLog) AppendActivity(ctx context.Context, typ, userID, payload string) error {
	if payload == "" {
		payload = "{}"
	}
	_, err := l.appendEvent(ctx, "activity_events", []string{"type", "user_id", "payload"}, typ, userID, payload)
	if err != nil {
		return fmt.Errorf("save activity event: %w", err)
	}
	return nil
}

// Activities returns a user's activity events oldest first.
func (l *EventLog) Activities(ctx context.Context, userID string, limit int) ([]Activity, error) {
	q := `SELECT id, sequence, timestamp, type, user_id, payload FROM activity_events
		WHERE user_id = ? ORDER BY sequence`
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := l.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var (
			a  Activity
			ts int64
		)
		if err := rows.Scan(&a.ID, &a.Sequence, &ts, &a.Type, &a.UserID, &a.Payload); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Timestamp = time.UnixMilli(ts)
		out = append(out, a)
	}
	return out, rows.Err()
}
