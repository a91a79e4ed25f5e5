package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const snapshotSchemaURL = "ares_snapshot.schema.json"

const gateSchema = `{
	"type": "object",
	"required": ["threshold", "available"],
	"properties": {
		"threshold": {"type": "integer"},
		"available": {"type": "boolean"}
	}
}`

// SnapshotSchema describes the body line of an Ares snapshot file.
var SnapshotSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["header", "ares"],
	"properties": {
		"header": {
			"type": "object",
			"required": ["version", "game_id"],
			"properties": {
				"version": {"type": "integer", "minimum": 1, "maximum": 1},
				"game_id": {"type": "string", "minLength": 1},
				"generation": {"type": "integer", "minimum": 0}
			}
		},
		"seed": {"type": "integer"},
		"temperature": {"type": "integer", "minimum": -30, "maximum": 8},
		"oxygen": {"type": "integer", "minimum": 0, "maximum": 14},
		"ares": {
			"type": "object",
			"required": ["hazards", "milestones"],
			"properties": {
				"active": {"type": "boolean"},
				"include_hazards": {"type": "boolean"},
				"hazards": {
					"type": "object",
					"required": ["erosion_ocean_count", "remove_dust_storms_ocean_count", "severe_erosion_temperature", "severe_dust_storm_oxygen"],
					"properties": {
						"erosion_ocean_count": ` + gateSchema + `,
						"remove_dust_storms_ocean_count": ` + gateSchema + `,
						"severe_erosion_temperature": ` + gateSchema + `,
						"severe_dust_storm_oxygen": ` + gateSchema + `
					}
				},
				"milestones": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["player_id", "count"],
						"properties": {
							"player_id": {"type": "string", "minLength": 1},
							"count": {"type": "integer", "minimum": 0}
						}
					}
				}
			}
		},
		"tiles": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["space", "kind"],
				"properties": {
					"space": {"type": "string"},
					"kind": {"type": "string", "minLength": 1},
					"owner": {"type": "string"},
					"protected_hazard": {"type": "boolean"}
				}
			}
		},
		"claims": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["space", "owner"],
				"properties": {
					"space": {"type": "string"},
					"owner": {"type": "string", "minLength": 1}
				}
			}
		},
		"dealer_drawn": {"type": "integer", "minimum": 0},
		"dealer_stacked": {
			"type": "array",
			"items": {"type": "integer", "minimum": 0}
		}
	}
}`

var (
	snapshotSchemaOnce sync.Once
	snapshotSchema     *jsonschema.Schema
	snapshotSchemaErr  error
)

func compiledSnapshotSchema() (*jsonschema.Schema, error) {
	snapshotSchemaOnce.Do(func() {
		snapshotSchema, snapshotSchemaErr = jsonschema.CompileString(snapshotSchemaURL, SnapshotSchema)
	})
	return snapshotSchema, snapshotSchemaErr
}

// ValidateSnapshot checks a raw snapshot body against SnapshotSchema.
func ValidateSnapshot(raw []byte) error {
	s, err := compiledSnapshotSchema()
	if err != nil {
		return fmt.Errorf("compile snapshot schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("snapshot schema: %w", err)
	}
	return nil
}
