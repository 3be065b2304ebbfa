// Package profile serves the static career timeline shown on the experience
// page. The data ships embedded in the binary; there is no admin surface to
// edit it at runtime.
package profile

import (
	"encoding/json"
	"fmt"

	_ "embed"
)

//go:embed experience.json
var experienceRaw []byte

type ExperienceItem struct {
	ID          int      `json:"id"`
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
	Tags        []string `json:"tags"`
}

// Experience returns the embedded timeline, newest first as authored.
func Experience() ([]ExperienceItem, error) {
	var items []ExperienceItem
	if err := json.Unmarshal(experienceRaw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse embedded experience data: %w", err)
	}
	return items, nil
}
