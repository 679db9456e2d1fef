// Package catalog holds the static table of fest events.  The table is the
// read-only source of truth for event names, prices and registration
// requirements; there is no mutation path.
package catalog

import (
	"errors"
	"time"

	"github.com/cache2k25/registration-backend/internal/model"
)

// ErrEventNotFound is returned by Lookup for unknown event IDs.  Callers
// must treat it as a 404, never substitute a default event.
var ErrEventNotFound = errors.New("event not found")

// Catalog is an immutable set of events indexed by ID.
type Catalog struct {
	byID  map[string]*model.Event
	order []string // preserves listing order for All()
}

// New returns the Cache2K25 event catalog.
func New() *Catalog {
	deadline := time.Date(2025, time.March, 12, 23, 59, 59, 0, time.UTC)
	events := []model.Event{
		{
			ID:          "web-dev",
			Name:        "Web Development Challenge",
			Category:    model.CategoryTechnical,
			Description: "Build and ship a working web app against the clock.",
			Price:       500,
			Deadline:    deadline,
		},
		{
			ID:              "poster-presentation",
			Name:            "Poster Presentation",
			Category:        model.CategoryTechnical,
			Description:     "Present a technical poster in front of a jury panel.",
			Price:           300,
			RequiresTeam:    true,
			TeamSize:        2,
			MaxParticipants: 60,
			Deadline:        deadline,
		},
		{
			ID:              "techexpo",
			Name:            "Tech Expo",
			Category:        model.CategoryTechnical,
			Description:     "Demo a hardware or software project at the expo floor.",
			Price:           400,
			RequiresTeam:    true,
			TeamSize:        3,
			Deadline:        deadline,
		},
		{
			ID:          "pycharm",
			Name:        "PyCharm Programming Contest",
			Category:    model.CategoryTechnical,
			Description: "Timed Python problem-solving rounds.",
			Price:       350,
			Deadline:    deadline,
		},
		{
			ID:              "technical-quiz",
			Name:            "Technical Quiz",
			Category:        model.CategoryTechnical,
			Description:     "Rapid-fire quiz across CS fundamentals.",
			Price:           200,
			RequiresTeam:    true,
			TeamSize:        2,
			MaxParticipants: 100,
			Deadline:        deadline,
		},
		{
			ID:          "photo-contest",
			Name:        "Photography Contest",
			Category:    model.CategoryNonTechnical,
			Description: "Theme revealed on the day; shoot and submit on campus.",
			Price:       250,
			Deadline:    deadline,
		},
		{
			ID:          "tech-meme-contest",
			Name:        "Tech Meme Contest",
			Category:    model.CategoryNonTechnical,
			Description: "Original tech memes, judged by audience vote.",
			Price:       150,
			Deadline:    deadline,
		},
		{
			ID:              "bgmi-esports",
			Name:            "BGMI Esports Tournament",
			Category:        model.CategoryNonTechnical,
			Description:     "Squad-based BGMI knockout tournament.",
			Price:           400,
			RequiresTeam:    true,
			TeamSize:        4,
			RequiresGameIDs: true,
			Deadline:        deadline,
		},
		{
			ID:              "freefire-esports",
			Name:            "Free Fire Esports Championship",
			Category:        model.CategoryNonTechnical,
			Description:     "Squad-based Free Fire championship bracket.",
			Price:           400,
			RequiresTeam:    true,
			TeamSize:        4,
			RequiresGameIDs: true,
			Deadline:        deadline,
		},
	}

	c := &Catalog{byID: make(map[string]*model.Event, len(events))}
	for i := range events {
		e := &events[i]
		c.byID[e.ID] = e
		c.order = append(c.order, e.ID)
	}
	return c
}

// Lookup returns the event for the given ID or ErrEventNotFound.
func (c *Catalog) Lookup(id string) (*model.Event, error) {
	e, ok := c.byID[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return e, nil
}

// All returns every event in catalog order.  The returned slice is a copy;
// the events themselves are shared and must not be mutated.
func (c *Catalog) All() []*model.Event {
	out := make([]*model.Event, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
