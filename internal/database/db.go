package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance
var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string, logLevel logger.LogLevel) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

// AutoMigrate runs database migrations
func AutoMigrate() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&User{},
		&ConfigItem{},
		&Incident{},
		&Setting{},
		&NotificationSettings{},
		&AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// InitializeDefaults creates default records if they don't exist
func InitializeDefaults() error {
	log.Println("Initializing default database records...")

	// Seed the well-known setting keys with empty values so the UI
	// always has a row to update.
	for _, key := range []string{SettingKeyReportWebhookURL, SettingKeyRegisterWebhookURL} {
		var count int64
		DB.Model(&Setting{}).Where("key = ?", key).Count(&count)
		if count == 0 {
			if err := DB.Create(&Setting{Key: key}).Error; err != nil {
				return fmt.Errorf("failed to seed setting %s: %w", key, err)
			}
			log.Printf("Seeded setting key: %s", key)
		}
	}

	// Create default notification settings if they don't exist
	var count int64
	DB.Model(&NotificationSettings{}).Count(&count)
	if count == 0 {
		defaults := &NotificationSettings{
			Enabled: false, // Disabled by default until configured
		}
		if err := DB.Create(defaults).Error; err != nil {
			return fmt.Errorf("failed to create default notification settings: %w", err)
		}
		log.Println("Created default notification settings (disabled)")
	}

	return nil
}

// GetSetting retrieves a setting row by key
func GetSetting(key string) (*Setting, error) {
	var setting Setting
	if err := DB.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSetting updates (or creates) the value for a setting key
func SetSetting(key, value string) error {
	var setting Setting
	err := DB.Where("key = ?", key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return DB.Create(&Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	return DB.Model(&setting).Update("value", value).Error
}

// GetWebhookURL returns the webhook URL stored under the given key,
// or an empty string when unset.
func GetWebhookURL(key string) string {
	setting, err := GetSetting(key)
	if err != nil {
		return ""
	}
	return setting.Value
}

// GetNotificationSettings retrieves notification settings from the database
func GetNotificationSettings() (*NotificationSettings, error) {
	var settings NotificationSettings
	if err := DB.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
