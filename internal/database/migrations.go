package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Plan entry indexes: window queries filter by user set and date range
		{"plan_entries", "idx_plan_entries_user_date", "user_id, entry_date"},
		{"plan_entries", "idx_plan_entries_entry_date", "entry_date"},
		{"plan_entries", "idx_plan_entries_location_id", "location_id"},

		// Membership join tables
		{"team_members", "idx_team_members_team_id", "team_id"},
		{"team_members", "idx_team_members_user_id", "user_id"},
		{"service_members", "idx_service_members_service_id", "service_id"},
		{"service_members", "idx_service_members_user_id", "user_id"},

		// Scope resolution by manager
		{"teams", "idx_teams_manager_id", "manager_id"},
		{"services", "idx_services_manager_id", "manager_id"},

		// Occupancy base capacity lookups
		{"users", "idx_users_default_location_id", "default_location_id"},
	}

	for _, idx := range indexes {
		exists, err := indexExists(db, idx.table, idx.name)
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if exists {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

func indexExists(db *gorm.DB, table, name string) (bool, error) {
	var count int64

	switch db.Dialector.Name() {
	case "postgres":
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, table, name).Count(&count).Error
		return count > 0, err
	case "mysql":
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, table, name).Count(&count).Error
		return count > 0, err
	default:
		// sqlite in tests; GORM's migrator handles it
		return db.Migrator().HasIndex(table, name), nil
	}
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
