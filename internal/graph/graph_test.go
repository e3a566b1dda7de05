package graph

import (
	"testing"

	"github.com/atlascmdb/atlas/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerID(id uint) *uint { return &id }

func TestBuild_Empty(t *testing.T) {
	g := Build(nil, nil, nil)

	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
	assert.NotNil(t, g.Nodes, "nodes must serialize as [] not null")
	assert.NotNil(t, g.Edges, "edges must serialize as [] not null")
}

func TestBuild_ItemsAndOwners(t *testing.T) {
	users := []database.User{
		{ID: 1, Name: "alice", Role: database.UserRoleAdmin},
	}

	items := []database.ConfigItem{
		{UUID: "u-1", Name: "web-01", Type: database.ItemTypeServer, Status: database.ItemStatusActive, Environment: "production", OwnerID: ownerID(1)},
		{UUID: "u-2", Name: "db-01", Type: database.ItemTypeServer, Status: database.ItemStatusActive, Environment: "production"},
	}
	items[0].ID = 10
	items[1].ID = 11

	g := Build(items, users, nil)

	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 1)

	assert.Equal(t, "user:1", g.Nodes[0].ID)
	assert.Equal(t, "alice", g.Nodes[0].Label)
	assert.Equal(t, "item:u-1", g.Nodes[1].ID)
	assert.Equal(t, "server", g.Nodes[1].Attributes["item_type"])

	assert.Equal(t, Edge{From: "item:u-1", To: "user:1", Type: "OWNED_BY"}, g.Edges[0])
}

func TestBuild_SkipsUnknownOwner(t *testing.T) {
	items := []database.ConfigItem{
		{UUID: "u-1", Name: "web-01", Type: database.ItemTypeServer, OwnerID: ownerID(99)},
	}
	items[0].ID = 10

	g := Build(items, nil, nil)

	assert.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Edges, "edge to a missing user must be dropped")
}

func TestBuild_OpenIncidentsOnly(t *testing.T) {
	items := []database.ConfigItem{
		{UUID: "u-1", Name: "web-01", Type: database.ItemTypeServer},
	}
	items[0].ID = 10

	incidents := []database.Incident{
		{Title: "down", Severity: database.IncidentSeverityHigh, Status: database.IncidentStatusOpen, ConfigItemID: 10},
		{Title: "fixed", Severity: database.IncidentSeverityLow, Status: database.IncidentStatusResolved, ConfigItemID: 10},
		{Title: "closed", Severity: database.IncidentSeverityLow, Status: database.IncidentStatusClosed, ConfigItemID: 10},
		{Title: "orphan", Severity: database.IncidentSeverityLow, Status: database.IncidentStatusOpen, ConfigItemID: 99},
	}
	incidents[0].ID = 1
	incidents[1].ID = 2
	incidents[2].ID = 3
	incidents[3].ID = 4

	g := Build(items, nil, incidents)

	require.Len(t, g.Nodes, 2, "only the open incident on a known item is kept")
	assert.Equal(t, "incident:1", g.Nodes[1].ID)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, Edge{From: "incident:1", To: "item:u-1", Type: "AFFECTS"}, g.Edges[0])
}

func TestBuild_StacksIncidentsOutward(t *testing.T) {
	items := []database.ConfigItem{
		{UUID: "u-1", Name: "web-01", Type: database.ItemTypeServer},
	}
	items[0].ID = 10

	incidents := []database.Incident{
		{Title: "first", Severity: database.IncidentSeverityHigh, Status: database.IncidentStatusOpen, ConfigItemID: 10},
		{Title: "second", Severity: database.IncidentSeverityHigh, Status: database.IncidentStatusOpen, ConfigItemID: 10},
	}
	incidents[0].ID = 1
	incidents[1].ID = 2

	g := Build(items, nil, incidents)
	require.Len(t, g.Nodes, 3)

	item := g.Nodes[0]
	first := g.Nodes[1]
	second := g.Nodes[2]

	distItem := item.X*item.X + item.Y*item.Y
	distFirst := first.X*first.X + first.Y*first.Y
	distSecond := second.X*second.X + second.Y*second.Y

	assert.Greater(t, distFirst, distItem)
	assert.Greater(t, distSecond, distFirst, "stacked incidents move further out")
}

func TestBuild_Deterministic(t *testing.T) {
	items := []database.ConfigItem{
		{UUID: "u-1", Name: "a", Type: database.ItemTypeServer},
		{UUID: "u-2", Name: "b", Type: database.ItemTypeServer},
		{UUID: "u-3", Name: "c", Type: database.ItemTypeServer},
	}
	for i := range items {
		items[i].ID = uint(i + 1)
	}

	first := Build(items, nil, nil)
	second := Build(items, nil, nil)
	assert.Equal(t, first, second)
}

func TestRingPosition(t *testing.T) {
	// A single node sits at the top of the ring.
	x, y := ringPosition(0, 1, 100)
	assert.InDelta(t, 0, x, 0.01)
	assert.InDelta(t, -100, y, 0.01)

	// Zero nodes collapse to the origin.
	x, y = ringPosition(0, 0, 100)
	assert.Zero(t, x)
	assert.Zero(t, y)
}
