package combatserver

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
)

// StartEncounterRequest asks for a new encounter against a named monster template.
type StartEncounterRequest struct {
	Character character.CombatantStats `json:"character"`
	Monster   string                   `json:"monster"`
	// Tier overrides the template's tier when set.
	Tier string `json:"tier,omitempty"`
}

// EncounterResponse carries the state of one encounter.
type EncounterResponse struct {
	EncounterID string             `json:"encounter_id"`
	State       encounter.Snapshot `json:"state"`
}

// SubmitIntentRequest submits one player intent.
type SubmitIntentRequest struct {
	EncounterID string `json:"encounter_id"`
	Kind        string `json:"kind"`
	ID          string `json:"id,omitempty"`
}

// EncounterRequest names an encounter.
type EncounterRequest struct {
	EncounterID string `json:"encounter_id"`
}

// AbandonEncounterResponse reports whether a live encounter was discarded.
type AbandonEncounterResponse struct {
	Abandoned bool `json:"abandoned"`
}

// toStruct converts v to a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("converting %T to struct: %w", v, err)
	}
	return out, nil
}

// fromStruct fills v from the JSON form of s.
func fromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("converting struct: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %T: %w", v, err)
	}
	return nil
}
