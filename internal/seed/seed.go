// Package seed holds the bundled default creator records used to bootstrap
// an empty or unreadable persistence slot. The data is opaque: it is loaded
// from an embedded JSON file, never computed.
package seed

import (
	_ "embed"
	"encoding/json"

	"mowhoob/internal/models"
)

//go:embed creators.json
var creatorsJSON []byte

// Creators returns a fresh deep copy of the bundled seed set, so callers can
// mutate their copy without corrupting subsequent bootstraps.
func Creators() []models.Creator {
	var creators []models.Creator
	if err := json.Unmarshal(creatorsJSON, &creators); err != nil {
		// The file is embedded at compile time; failing to parse it is a
		// build defect, not a runtime condition.
		panic("seed: invalid creators.json: " + err.Error())
	}
	return creators
}
