package seed

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"alumnihub/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/events.yml
var eventsFixture []byte

type eventFixture struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Location    string `yaml:"location"`
}

// FixtureEvents decodes the embedded event fixture.
func FixtureEvents() ([]models.Event, error) {
	return parseEvents(eventsFixture)
}

func parseEvents(data []byte) ([]models.Event, error) {
	var doc struct {
		Events []eventFixture `yaml:"events"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode events fixture: %w", err)
	}

	out := make([]models.Event, 0, len(doc.Events))
	for i, e := range doc.Events {
		date, err := parseFixtureDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i, e.Title, err)
		}
		out = append(out, models.Event{
			Title:       strings.TrimSpace(e.Title),
			Description: strings.TrimSpace(e.Description),
			Date:        date,
			Location:    strings.TrimSpace(e.Location),
		})
	}
	return out, nil
}

func parseFixtureDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
