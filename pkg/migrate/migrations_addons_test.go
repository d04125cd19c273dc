package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAddonMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_addon_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no addon migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE addon_field_type AS ENUM",
		"CREATE TABLE IF NOT EXISTS addon_groups",
		"CREATE TABLE IF NOT EXISTS addon_group_categories",
		"CREATE TABLE IF NOT EXISTS addon_fields",
		"CREATE TABLE IF NOT EXISTS addon_field_options",
		"FOREIGN KEY (field_id) REFERENCES addon_fields(id) ON DELETE CASCADE",
		"CHECK (price >= 0)",
		"DROP TABLE IF EXISTS addon_field_options",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
