package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/roster"
)

func TestHolidayService_SaveAndLookup(t *testing.T) {
	config := newFakeConfigRepo()
	svc := NewHolidayService(config)

	err := svc.SaveYear(2024, map[string]string{
		"2024-10-03": "Tag der Deutschen Einheit",
		"2024-12-25": "1. Weihnachtstag",
	})
	if err != nil {
		t.Fatalf("SaveYear: %v", err)
	}

	name, ok := svc.IsHoliday(roster.Date(2024, time.October, 3))
	if !ok || name != "Tag der Deutschen Einheit" {
		t.Errorf("IsHoliday = %q, %v", name, ok)
	}
	if _, ok := svc.IsHoliday(roster.Date(2024, time.October, 4)); ok {
		t.Error("ordinary day flagged as holiday")
	}
	if _, ok := svc.IsHoliday(roster.Date(2025, time.October, 3)); ok {
		t.Error("holiday leaked into another year")
	}
}

func TestHolidayService_SaveReplacesYear(t *testing.T) {
	config := newFakeConfigRepo()
	svc := NewHolidayService(config)

	if err := svc.SaveYear(2024, map[string]string{"2024-01-01": "Neujahr"}); err != nil {
		t.Fatalf("SaveYear: %v", err)
	}
	// Warm the cache, then replace the year.
	if _, err := svc.GetYear(2024); err != nil {
		t.Fatalf("GetYear: %v", err)
	}
	if err := svc.SaveYear(2024, map[string]string{"2024-05-01": "Tag der Arbeit"}); err != nil {
		t.Fatalf("SaveYear: %v", err)
	}

	if _, ok := svc.IsHoliday(roster.Date(2024, time.January, 1)); ok {
		t.Error("stale cache served after save")
	}
	if _, ok := svc.IsHoliday(roster.Date(2024, time.May, 1)); !ok {
		t.Error("replacement year not visible")
	}
}

func TestHolidayService_GarbageBlobTreatedAsEmpty(t *testing.T) {
	config := newFakeConfigRepo()
	config.values[models.ConfigKeyHolidays] = "{broken"
	svc := NewHolidayService(config)

	holidays, err := svc.GetYear(2024)
	if err != nil {
		t.Fatalf("GetYear: %v", err)
	}
	if len(holidays) != 0 {
		t.Errorf("holidays = %v, want empty", holidays)
	}
}

func TestHolidayService_MigrateLegacyFile(t *testing.T) {
	config := newFakeConfigRepo()
	svc := NewHolidayService(config)

	// Already-stored years win over the file.
	if err := svc.SaveYear(2024, map[string]string{"2024-01-01": "Neujahr"}); err != nil {
		t.Fatalf("SaveYear: %v", err)
	}

	path := filepath.Join(t.TempDir(), "holidays.json")
	legacy := `{"2024":{"2024-12-25":"Weihnachten"},"2025":{"2025-01-01":"Neujahr"}}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	if err := svc.MigrateLegacyFile(path); err != nil {
		t.Fatalf("MigrateLegacyFile: %v", err)
	}

	if _, ok := svc.IsHoliday(roster.Date(2025, time.January, 1)); !ok {
		t.Error("migrated year missing")
	}
	if _, ok := svc.IsHoliday(roster.Date(2024, time.December, 25)); ok {
		t.Error("legacy file overwrote the stored 2024 map")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("legacy file not renamed away")
	}
	if _, err := os.Stat(path + ".migrated"); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}

	// A second run with no file present is a no-op.
	if err := svc.MigrateLegacyFile(path); err != nil {
		t.Errorf("second migration: %v", err)
	}
}
