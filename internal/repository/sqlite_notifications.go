package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inventra/inventra-backend/internal/models"
)

// NotificationRepository implementation

func (r *SQLiteRepository) ListChannels(ctx context.Context) ([]models.NotificationChannel, error) {
	channels := []models.NotificationChannel{}
	err := r.db.SelectContext(ctx, &channels, `SELECT * FROM notification_channels ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list notification channels: %w", err)
	}
	for i := range channels {
		c := &channels[i]
		c.Enabled = c.EnabledDB != 0
		c.EventTypes = []string{}
		if c.EventTypesRaw != "" {
			_ = json.Unmarshal([]byte(c.EventTypesRaw), &c.EventTypes)
		}
	}
	return channels, nil
}

func (r *SQLiteRepository) CreateChannel(ctx context.Context, c *models.NotificationChannel) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.EventTypes == nil {
		c.EventTypes = []string{}
	}
	b, err := json.Marshal(c.EventTypes)
	if err != nil {
		return fmt.Errorf("create notification channel: %w", err)
	}
	c.EventTypesRaw = string(b)
	c.EnabledDB = 0
	if c.Enabled {
		c.EnabledDB = 1
	}
	c.CreatedAt = time.Now()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notification_channels (id, name, endpoint_url, event_types, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.EndpointURL, c.EventTypesRaw, c.EnabledDB, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification channel: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteChannel(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notification_channels WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete notification channel %s: %w", id, err)
	}
	return nil
}
