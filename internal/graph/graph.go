// Package graph builds the relationship view of the CMDB: one pass
// joining configuration items to their owners and open incidents,
// with deterministic layout coordinates so the dashboard can render
// the result without its own layout step.
package graph

import (
	"fmt"
	"math"

	"github.com/atlascmdb/atlas/internal/database"
)

// Node is a vertex in the relationship graph. IDs are namespaced:
// "item:<uuid>", "user:<id>", "incident:<id>".
type Node struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"` // "item", "user", "incident"
	Label      string                 `json:"label"`
	X          float64                `json:"x"`
	Y          float64                `json:"y"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// Edge connects two nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"` // "OWNED_BY", "AFFECTS"
}

// Graph is the full payload returned by the graph endpoint.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Layout radii. Owners sit on the inner ring, items on the outer
// ring, incidents just outside their item.
const (
	userRadius     = 120.0
	itemRadius     = 320.0
	incidentOffset = 90.0
)

// Build joins items to owning users and open incidents and lays the
// result out radially. Output order and coordinates are deterministic
// for a given input order.
func Build(items []database.ConfigItem, users []database.User, incidents []database.Incident) Graph {
	g := Graph{Nodes: []Node{}, Edges: []Edge{}}

	userNodeID := make(map[uint]string, len(users))
	for i, u := range users {
		id := fmt.Sprintf("user:%d", u.ID)
		userNodeID[u.ID] = id
		x, y := ringPosition(i, len(users), userRadius)
		g.Nodes = append(g.Nodes, Node{
			ID:    id,
			Type:  "user",
			Label: u.Name,
			X:     x,
			Y:     y,
			Attributes: map[string]interface{}{
				"role": string(u.Role),
			},
		})
	}

	itemNodeID := make(map[uint]string, len(items))
	for i, item := range items {
		id := "item:" + item.UUID
		itemNodeID[item.ID] = id
		x, y := ringPosition(i, len(items), itemRadius)
		g.Nodes = append(g.Nodes, Node{
			ID:    id,
			Type:  "item",
			Label: item.Name,
			X:     x,
			Y:     y,
			Attributes: map[string]interface{}{
				"item_type":   string(item.Type),
				"status":      string(item.Status),
				"environment": string(item.Environment),
			},
		})

		if item.OwnerID != nil {
			if ownerID, ok := userNodeID[*item.OwnerID]; ok {
				g.Edges = append(g.Edges, Edge{From: id, To: ownerID, Type: "OWNED_BY"})
			}
		}
	}

	// Open incidents hang off their item, pushed outward from the
	// item's ring position.
	perItem := make(map[uint]int)
	for _, inc := range incidents {
		if inc.Status == database.IncidentStatusResolved || inc.Status == database.IncidentStatusClosed {
			continue
		}
		itemID, ok := itemNodeID[inc.ConfigItemID]
		if !ok {
			continue
		}

		var ix, iy float64
		for _, n := range g.Nodes {
			if n.ID == itemID {
				ix, iy = n.X, n.Y
				break
			}
		}
		// Stack multiple incidents on the same item further out.
		perItem[inc.ConfigItemID]++
		scale := 1.0 + incidentOffset*float64(perItem[inc.ConfigItemID])/itemRadius
		id := fmt.Sprintf("incident:%d", inc.ID)
		g.Nodes = append(g.Nodes, Node{
			ID:    id,
			Type:  "incident",
			Label: inc.Title,
			X:     ix * scale,
			Y:     iy * scale,
			Attributes: map[string]interface{}{
				"severity": string(inc.Severity),
				"status":   string(inc.Status),
			},
		})
		g.Edges = append(g.Edges, Edge{From: id, To: itemID, Type: "AFFECTS"})
	}

	return g
}

// ringPosition places index i of n evenly on a circle of radius r,
// starting at the top and going clockwise.
func ringPosition(i, n int, r float64) (float64, float64) {
	if n <= 0 {
		return 0, 0
	}
	angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
	x := r * math.Cos(angle)
	y := r * math.Sin(angle)
	// Round to keep the JSON stable across platforms.
	return math.Round(x*100) / 100, math.Round(y*100) / 100
}
