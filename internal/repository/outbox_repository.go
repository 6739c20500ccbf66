package repository

import (
	"context"
	"fmt"
)

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]OutboxEvent, error) {
	query := `SELECT id, order_id, payload, created_at
	          FROM order_outbox WHERE processed_at IS NULL ORDER BY id LIMIT $1`

	rows, err := r.queryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed outbox events: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, eventID int64) error {
	query := `UPDATE order_outbox SET processed_at = NOW() WHERE id = $1 AND processed_at IS NULL`

	if _, err := r.execContext(ctx, query, eventID); err != nil {
		return fmt.Errorf("mark outbox event processed: %w", err)
	}
	return nil
}
