package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event describes an invoice event to store in the outbox.
type Event struct {
	ShopID    snowflake.ID
	Type      string
	Payload   map[string]any
	DedupeKey string
}

// InvoiceEvent is the persisted outbox row.
type InvoiceEvent struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	ShopID    snowflake.ID      `gorm:"not null;index;uniqueIndex:idx_invoice_events_dedupe"`
	EventType string            `gorm:"type:text;not null;index"`
	Payload   datatypes.JSONMap `gorm:"type:jsonb"`
	DedupeKey *string           `gorm:"type:text;uniqueIndex:idx_invoice_events_dedupe"`
	Published bool              `gorm:"not null;default:false"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (InvoiceEvent) TableName() string { return "invoice_events" }

// Outbox writes invoice events, usually inside the mutating transaction.
type Outbox struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewOutbox(db *gorm.DB, genID *snowflake.Node) *Outbox {
	return &Outbox{db: db, genID: genID}
}

// Publish stores an event on the default connection.
func (o *Outbox) Publish(ctx context.Context, event Event) error {
	return o.publish(ctx, o.db, event)
}

// PublishTx stores an event inside an existing transaction so the event
// commits or rolls back together with the mutation it describes.
func (o *Outbox) PublishTx(ctx context.Context, tx *gorm.DB, event Event) error {
	if tx == nil {
		return errors.New("missing_transaction")
	}
	return o.publish(ctx, tx, event)
}

func (o *Outbox) publish(ctx context.Context, db *gorm.DB, event Event) error {
	if o == nil || db == nil || o.genID == nil {
		return errors.New("outbox_unavailable")
	}
	if event.ShopID == 0 {
		return errors.New("invalid_shop_id")
	}
	eventType := strings.TrimSpace(event.Type)
	if eventType == "" {
		return errors.New("missing_event_type")
	}

	payload := datatypes.JSONMap{}
	for key, value := range event.Payload {
		if strings.TrimSpace(key) == "" {
			continue
		}
		payload[key] = value
	}

	dedupe := strings.TrimSpace(event.DedupeKey)
	var dedupeValue any
	if dedupe != "" {
		dedupeValue = dedupe
	}

	now := time.Now().UTC()
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoice_events (id, shop_id, event_type, payload, dedupe_key, published, created_at)
		 VALUES (?, ?, ?, ?, ?, false, ?)
		 ON CONFLICT (shop_id, dedupe_key) DO NOTHING`,
		o.genID.Generate(),
		event.ShopID,
		eventType,
		payload,
		dedupeValue,
		now,
	).Error
}
