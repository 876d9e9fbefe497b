package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/who-owns-this/internal/models"
	"gorm.io/gorm"
)

// uniqueIndexes are the storage constraints the services treat as the
// source of truth for team codes and member names.
var uniqueIndexes = []struct {
	model interface{}
	name  string
}{
	{&models.Team{}, "TeamCode"},
	{&models.Member{}, "idx_members_name_team"},
}

// Migrate creates or updates the tables and verifies the unique indexes.
func Migrate(db *gorm.DB) error {
	logrus.Info("Running database migrations...")
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, idx := range uniqueIndexes {
		if !db.Migrator().HasIndex(idx.model, idx.name) {
			return fmt.Errorf("unique index %s missing after migration", idx.name)
		}
	}

	logrus.Info("Database migrations completed")
	return nil
}
