package database

import (
	"testing"
)

// useTestDB points the package-level DB at an in-memory SQLite
// instance for the duration of a test.
func useTestDB(t *testing.T) {
	t.Helper()
	prev := DB
	DB = setupTestDB(t)
	t.Cleanup(func() { DB = prev })
}

func TestInitializeDefaults(t *testing.T) {
	useTestDB(t)

	if err := InitializeDefaults(); err != nil {
		t.Fatalf("InitializeDefaults: %v", err)
	}

	for _, key := range []string{SettingKeyReportWebhookURL, SettingKeyRegisterWebhookURL} {
		setting, err := GetSetting(key)
		if err != nil {
			t.Fatalf("expected seeded setting %s: %v", key, err)
		}
		if setting.Value != "" {
			t.Errorf("expected empty seeded value for %s, got %q", key, setting.Value)
		}
	}

	settings, err := GetNotificationSettings()
	if err != nil {
		t.Fatalf("expected default notification settings: %v", err)
	}
	if settings.Enabled {
		t.Error("expected notifications disabled by default")
	}

	// Running again must not duplicate rows.
	if err := InitializeDefaults(); err != nil {
		t.Fatalf("second InitializeDefaults: %v", err)
	}
	var count int64
	DB.Model(&Setting{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 settings rows, got %d", count)
	}
}

func TestSetAndGetSetting(t *testing.T) {
	useTestDB(t)

	if err := SetSetting(SettingKeyReportWebhookURL, "https://hooks.example.com/report"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}

	setting, err := GetSetting(SettingKeyReportWebhookURL)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if setting.Value != "https://hooks.example.com/report" {
		t.Errorf("unexpected value %q", setting.Value)
	}

	// Update in place, no second row.
	if err := SetSetting(SettingKeyReportWebhookURL, "https://hooks.example.com/v2"); err != nil {
		t.Fatalf("SetSetting update: %v", err)
	}
	var count int64
	DB.Model(&Setting{}).Where("key = ?", SettingKeyReportWebhookURL).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 row for key, got %d", count)
	}
	if got := GetWebhookURL(SettingKeyReportWebhookURL); got != "https://hooks.example.com/v2" {
		t.Errorf("GetWebhookURL = %q", got)
	}
}

func TestGetWebhookURL_Unset(t *testing.T) {
	useTestDB(t)

	if got := GetWebhookURL("missing_key"); got != "" {
		t.Errorf("expected empty URL for missing key, got %q", got)
	}
}
