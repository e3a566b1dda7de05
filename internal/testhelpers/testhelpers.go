// Package testhelpers provides reusable testing utilities for Atlas.
//
// This package contains:
// - HTTP test helpers (creating test requests, asserting responses)
// - Sample data builders for the CMDB models
// - Assertion helpers
package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atlascmdb/atlas/internal/database"
)

// ========================================
// HTTP Test Helpers
// ========================================

// HTTPTestContext holds components for HTTP handler testing
type HTTPTestContext struct {
	T        *testing.T
	Recorder *httptest.ResponseRecorder
	Request  *http.Request
}

// NewHTTPTestContext creates a new HTTP test context
func NewHTTPTestContext(t *testing.T, method, path string, body io.Reader) *HTTPTestContext {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	return &HTTPTestContext{
		T:        t,
		Recorder: httptest.NewRecorder(),
		Request:  req,
	}
}

// WithHeader adds a header to the request
func (ctx *HTTPTestContext) WithHeader(key, value string) *HTTPTestContext {
	ctx.Request.Header.Set(key, value)
	return ctx
}

// WithJSONBody sets JSON body on the request
func (ctx *HTTPTestContext) WithJSONBody(v interface{}) *HTTPTestContext {
	ctx.T.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		ctx.T.Fatalf("failed to marshal JSON body: %v", err)
	}
	ctx.Request = httptest.NewRequest(ctx.Request.Method, ctx.Request.URL.String(), bytes.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx
}

// WithBearerToken adds Authorization Bearer header
func (ctx *HTTPTestContext) WithBearerToken(token string) *HTTPTestContext {
	return ctx.WithHeader("Authorization", "Bearer "+token)
}

// Execute runs the handler and returns the response
func (ctx *HTTPTestContext) Execute(handler http.Handler) *HTTPTestContext {
	handler.ServeHTTP(ctx.Recorder, ctx.Request)
	return ctx
}

// ExecuteFunc runs the handler func and returns the response
func (ctx *HTTPTestContext) ExecuteFunc(handler http.HandlerFunc) *HTTPTestContext {
	handler(ctx.Recorder, ctx.Request)
	return ctx
}

// AssertStatus checks the response status code
func (ctx *HTTPTestContext) AssertStatus(expected int) *HTTPTestContext {
	ctx.T.Helper()
	if ctx.Recorder.Code != expected {
		ctx.T.Errorf("expected status %d, got %d. Body: %s", expected, ctx.Recorder.Code, ctx.Recorder.Body.String())
	}
	return ctx
}

// AssertBodyContains checks if response body contains substring
func (ctx *HTTPTestContext) AssertBodyContains(substr string) *HTTPTestContext {
	ctx.T.Helper()
	body := ctx.Recorder.Body.String()
	if !strings.Contains(body, substr) {
		ctx.T.Errorf("expected body to contain %q, got: %s", substr, body)
	}
	return ctx
}

// DecodeJSON decodes response body as JSON
func (ctx *HTTPTestContext) DecodeJSON(v interface{}) *HTTPTestContext {
	ctx.T.Helper()
	if err := json.NewDecoder(ctx.Recorder.Body).Decode(v); err != nil {
		ctx.T.Fatalf("failed to decode JSON response: %v", err)
	}
	return ctx
}

// ========================================
// Sample Data Builders
// ========================================

// ConfigItemBuilder builds ConfigItem instances for testing
type ConfigItemBuilder struct {
	item database.ConfigItem
}

// NewConfigItemBuilder creates a new item builder with defaults
func NewConfigItemBuilder() *ConfigItemBuilder {
	return &ConfigItemBuilder{
		item: database.ConfigItem{
			Name:        "test-item",
			Type:        database.ItemTypeServer,
			Status:      database.ItemStatusActive,
			Environment: database.EnvironmentProduction,
			Attributes:  database.JSONB{},
		},
	}
}

// WithName sets the item name
func (b *ConfigItemBuilder) WithName(name string) *ConfigItemBuilder {
	b.item.Name = name
	return b
}

// WithType sets the item type
func (b *ConfigItemBuilder) WithType(t database.ItemType) *ConfigItemBuilder {
	b.item.Type = t
	return b
}

// WithStatus sets the item status
func (b *ConfigItemBuilder) WithStatus(status database.ItemStatus) *ConfigItemBuilder {
	b.item.Status = status
	return b
}

// WithEnvironment sets the item environment
func (b *ConfigItemBuilder) WithEnvironment(env database.ItemEnvironment) *ConfigItemBuilder {
	b.item.Environment = env
	return b
}

// WithOwner sets the owning user ID
func (b *ConfigItemBuilder) WithOwner(id uint) *ConfigItemBuilder {
	b.item.OwnerID = &id
	return b
}

// WithAttribute adds a type-specific attribute
func (b *ConfigItemBuilder) WithAttribute(key string, value interface{}) *ConfigItemBuilder {
	if b.item.Attributes == nil {
		b.item.Attributes = database.JSONB{}
	}
	b.item.Attributes[key] = value
	return b
}

// Build returns the constructed item
func (b *ConfigItemBuilder) Build() database.ConfigItem {
	return b.item
}

// IncidentBuilder builds Incident instances for testing
type IncidentBuilder struct {
	incident database.Incident
}

// NewIncidentBuilder creates a new incident builder
func NewIncidentBuilder() *IncidentBuilder {
	return &IncidentBuilder{
		incident: database.Incident{
			Title:    "Test Incident",
			Severity: database.IncidentSeverityMedium,
			Status:   database.IncidentStatusOpen,
		},
	}
}

// WithTitle sets the title
func (b *IncidentBuilder) WithTitle(title string) *IncidentBuilder {
	b.incident.Title = title
	return b
}

// WithSeverity sets the severity
func (b *IncidentBuilder) WithSeverity(severity database.IncidentSeverity) *IncidentBuilder {
	b.incident.Severity = severity
	return b
}

// WithStatus sets the status
func (b *IncidentBuilder) WithStatus(status database.IncidentStatus) *IncidentBuilder {
	b.incident.Status = status
	return b
}

// WithConfigItem sets the affected item ID
func (b *IncidentBuilder) WithConfigItem(id uint) *IncidentBuilder {
	b.incident.ConfigItemID = id
	return b
}

// Build returns the constructed incident
func (b *IncidentBuilder) Build() database.Incident {
	return b.incident
}

// UserBuilder builds User instances for testing
type UserBuilder struct {
	user database.User
}

// NewUserBuilder creates a new user builder
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		user: database.User{
			Name: "test-user",
			Role: database.UserRoleViewer,
		},
	}
}

// WithName sets the user name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

// WithEmail sets the user email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithRole sets the user role
func (b *UserBuilder) WithRole(role database.UserRole) *UserBuilder {
	b.user.Role = role
	return b
}

// Build returns the constructed user
func (b *UserBuilder) Build() database.User {
	return b.user
}

// ========================================
// Assertion Helpers
// ========================================

// AssertEqual checks equality with a helpful error message
func AssertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// AssertError checks that an error occurred
func AssertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected error, got nil", msg)
	}
}

// AssertNoError checks that no error occurred
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", msg, err)
	}
}
