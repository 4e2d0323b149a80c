package audit

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-booking/internal/models"
)

// Logger persists events as AuditLog rows.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		RestaurantID: ev.RestaurantID,
		UserID:       ev.UserID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
		CreatedAt:    ev.OccurredAt,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// LogSink writes events to the application log; used when no database is configured.
type LogSink struct{}

func (LogSink) Write(_ context.Context, ev Event) error {
	logrusEntry(ev).Info("audit")
	return nil
}

func logrusEntry(ev Event) *logrus.Entry {
	fields := logrus.Fields{
		"restaurant_id": ev.RestaurantID,
		"action":        ev.Action,
		"entity":        ev.Entity,
	}
	if ev.EntityID != nil {
		fields["entity_id"] = *ev.EntityID
	}
	if ev.UserID != nil {
		fields["user_id"] = *ev.UserID
	}
	if ev.Metadata != nil {
		fields["metadata"] = ev.Metadata
	}
	return logrus.WithFields(fields)
}
