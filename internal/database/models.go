package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONB is a custom type for PostgreSQL JSONB columns
type JSONB map[string]interface{}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, j)
}

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// UserRole represents the role of a dashboard user
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleOperator UserRole = "operator"
	UserRoleViewer   UserRole = "viewer"
)

// ValidUserRoles returns all accepted user roles
func ValidUserRoles() []UserRole {
	return []UserRole{UserRoleAdmin, UserRoleOperator, UserRoleViewer}
}

// User represents a dashboard user who can own configuration items
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Role      UserRole  `gorm:"type:varchar(50);not null;default:'viewer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items []ConfigItem `gorm:"foreignKey:OwnerID" json:"items,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// ItemType represents the type of a configuration item
type ItemType string

const (
	ItemTypeServer        ItemType = "server"
	ItemTypeWorkstation   ItemType = "workstation"
	ItemTypeNetworkDevice ItemType = "network_device"
	ItemTypeSoftware      ItemType = "software"
	ItemTypeLicense       ItemType = "license"
	ItemTypeService       ItemType = "service"
)

// ValidItemTypes returns all accepted configuration item types
func ValidItemTypes() []ItemType {
	return []ItemType{
		ItemTypeServer,
		ItemTypeWorkstation,
		ItemTypeNetworkDevice,
		ItemTypeSoftware,
		ItemTypeLicense,
		ItemTypeService,
	}
}

// ItemStatus represents the lifecycle status of a configuration item
type ItemStatus string

const (
	ItemStatusActive      ItemStatus = "active"
	ItemStatusInactive    ItemStatus = "inactive"
	ItemStatusMaintenance ItemStatus = "maintenance"
	ItemStatusRetired     ItemStatus = "retired"
)

// ItemEnvironment represents the deployment environment of an item
type ItemEnvironment string

const (
	EnvironmentProduction  ItemEnvironment = "production"
	EnvironmentStaging     ItemEnvironment = "staging"
	EnvironmentDevelopment ItemEnvironment = "development"
	EnvironmentTesting     ItemEnvironment = "testing"
)

// ConfigItem represents a typed asset tracked in the CMDB.
// Type-specific optional attributes (serial number, license seats,
// IP address, ...) live in the Attributes JSONB column; the typed
// columns cover what every item has.
type ConfigItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UUID        string          `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Type        ItemType        `gorm:"type:varchar(50);not null;index" json:"type"`
	Status      ItemStatus      `gorm:"type:varchar(50);not null;default:'active';index" json:"status"`
	Environment ItemEnvironment `gorm:"type:varchar(50);not null;default:'production';index" json:"environment"`
	OwnerID     *uint           `gorm:"index" json:"owner_id,omitempty"`
	Description string          `gorm:"type:text" json:"description"`
	Attributes  JSONB           `gorm:"type:jsonb" json:"attributes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Owner     *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Incidents []Incident `gorm:"foreignKey:ConfigItemID" json:"incidents,omitempty"`
}

// BeforeCreate hook assigns a UUID when none was provided
func (c *ConfigItem) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.NewString()
	}
	return nil
}

func (ConfigItem) TableName() string {
	return "config_items"
}

// IncidentStatus represents the status of an incident
type IncidentStatus string

const (
	IncidentStatusOpen       IncidentStatus = "open"
	IncidentStatusInProgress IncidentStatus = "in_progress"
	IncidentStatusResolved   IncidentStatus = "resolved"
	IncidentStatusClosed     IncidentStatus = "closed"
)

// IncidentSeverity represents the severity of an incident
type IncidentSeverity string

const (
	IncidentSeverityCritical IncidentSeverity = "critical"
	IncidentSeverityHigh     IncidentSeverity = "high"
	IncidentSeverityMedium   IncidentSeverity = "medium"
	IncidentSeverityLow      IncidentSeverity = "low"
)

// Incident represents an incident raised against a configuration item
type Incident struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	Severity     IncidentSeverity `gorm:"type:varchar(50);not null;default:'medium';index" json:"severity"`
	Status       IncidentStatus   `gorm:"type:varchar(50);not null;default:'open';index" json:"status"`
	ConfigItemID uint             `gorm:"not null;index" json:"config_item_id"`
	ReportedByID *uint            `gorm:"index" json:"reported_by_id,omitempty"`
	ResolvedAt   *time.Time       `json:"resolved_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relationships
	ConfigItem ConfigItem `gorm:"foreignKey:ConfigItemID" json:"config_item,omitempty"`
	ReportedBy *User      `gorm:"foreignKey:ReportedByID" json:"reported_by,omitempty"`
}

func (Incident) TableName() string {
	return "incidents"
}

// Setting is a keyed configuration row. The workflow webhook URLs
// live here under well-known keys.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:128;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Well-known setting keys
const (
	SettingKeyReportWebhookURL   = "report_webhook_url"
	SettingKeyRegisterWebhookURL = "register_webhook_url"
)

// NotificationSettings stores Slack notification configuration
type NotificationSettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BotToken  string    `gorm:"type:text" json:"bot_token"`
	Channel   string    `gorm:"type:varchar(255)" json:"channel"`
	Enabled   bool      `gorm:"default:false" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsConfigured returns true if the Slack token and channel are set
func (n *NotificationSettings) IsConfigured() bool {
	return n.BotToken != "" && n.Channel != ""
}

// IsActive returns true if notifications are enabled and configured
func (n *NotificationSettings) IsActive() bool {
	return n.Enabled && n.IsConfigured()
}

func (NotificationSettings) TableName() string {
	return "notification_settings"
}

// AuditAction represents the kind of action recorded in the audit log
type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionTrigger AuditAction = "trigger"
)

// AuditLog is an append-only record of CRUD actions and webhook
// triggers. Rows are never updated or deleted.
type AuditLog struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Action    AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`
	Entity    string      `gorm:"size:64;not null;index" json:"entity"`
	EntityID  string      `gorm:"size:64;index" json:"entity_id"`
	Actor     string      `gorm:"size:128" json:"actor"`
	Success   bool        `gorm:"default:true;index" json:"success"`
	Message   string      `gorm:"type:text" json:"message"`
	Details   JSONB       `gorm:"type:jsonb" json:"details"`
	CreatedAt time.Time   `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
