package tools

import (
	"fmt"
	"sync"
)

// CollectedPlace is a structured search hit recorded by a tool.
type CollectedPlace struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
	Source  string  `json:"source"`
}

// Collector accumulates structured places across all tool calls in one
// agent run, deduplicated by rounded coordinates.
type Collector struct {
	mu     sync.Mutex
	places []CollectedPlace
	seen   map[string]bool
}

func NewCollector() *Collector {
	return &Collector{seen: make(map[string]bool)}
}

func (c *Collector) Add(place CollectedPlace) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := fmt.Sprintf("%.4f,%.4f", place.Lat, place.Lon)
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.places = append(c.places, place)
}

func (c *Collector) Places() []CollectedPlace {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CollectedPlace, len(c.places))
	copy(out, c.places)
	return out
}
