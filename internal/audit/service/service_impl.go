package service

import (
	"context"
	"strings"
	"time"

	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/audit/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shopcontext"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
	}
}

// Record writes one audit row. Audit failures are logged, never surfaced:
// a missing audit entry must not fail the mutation it describes.
func (s *Service) Record(ctx context.Context, tx *gorm.DB, entry domain.Entry) error {
	db := tx
	if db == nil {
		db = s.db
	}

	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 || strings.TrimSpace(entry.Action) == "" {
		return nil
	}

	actorType := entry.ActorType
	if actorType == "" {
		actorType = domain.ActorTypeSystem
	}

	row := domain.AuditLog{
		ID:         s.genID.Generate(),
		ShopID:     shopID,
		ActorType:  string(actorType),
		Action:     entry.Action,
		TargetType: entry.TargetType,
		Metadata:   datatypes.JSONMap(entry.Metadata),
		CreatedAt:  time.Now().UTC(),
	}
	if entry.ActorID != "" {
		row.ActorID = &entry.ActorID
	}
	if entry.TargetID != "" {
		row.TargetID = &entry.TargetID
	}
	if row.Metadata == nil {
		row.Metadata = datatypes.JSONMap{}
	}

	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		s.log.Warn("audit write failed",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}
	return nil
}
