package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/slideforge/slideforge-backend/internal/platform/envutil"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("component", "PostgresService")

	host := envutil.Str("POSTGRES_HOST", "localhost")
	port := envutil.Str("POSTGRES_PORT", "5432")
	user := envutil.Str("POSTGRES_USER", "postgres")
	password := envutil.Str("POSTGRES_PASSWORD", "")
	name := envutil.Str("POSTGRES_NAME", "slideforge")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("connecting to postgres", "host", host, "database", name)
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: conn, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("auto migrating postgres tables")
	err := s.db.AutoMigrate(
		&types.Prompt{},
		&types.Deck{},
		&types.MediaAsset{},
		&types.GenerationEvent{},
	)
	if err != nil {
		s.log.Error("auto migration failed", "error", err)
		return err
	}

	constraints := []string{
		`ALTER TABLE "deck"
		 ADD CONSTRAINT "fk_deck_prompt_id"
		 FOREIGN KEY ("prompt_id") REFERENCES "prompt"("id")
		 ON DELETE CASCADE`,
		`ALTER TABLE "media_asset"
		 ADD CONSTRAINT "fk_media_asset_deck_id"
		 FOREIGN KEY ("deck_id") REFERENCES "deck"("id")
		 ON DELETE CASCADE`,
		`ALTER TABLE "generation_event"
		 ADD CONSTRAINT "fk_generation_event_deck_id"
		 FOREIGN KEY ("deck_id") REFERENCES "deck"("id")
		 ON DELETE CASCADE`,
	}
	for _, stmt := range constraints {
		if err := s.db.Exec(stmt).Error; err != nil {
			// Re-running migrations hits existing constraints.
			s.log.Debug("constraint already present or rejected", "error", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }
