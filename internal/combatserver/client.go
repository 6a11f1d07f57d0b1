package combatserver

import (
	"context"

	"google.golang.org/grpc"

	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
)

// Client is a typed wrapper over CombatServiceClient. Rejections come back as gRPC
// status errors; KindFromStatus recovers their kind.
type Client struct {
	raw CombatServiceClient
}

// NewClient creates a Client over cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{raw: NewCombatServiceClient(cc)}
}

// Start begins an encounter between char and the named monster template.
func (c *Client) Start(ctx context.Context, char character.CombatantStats, monsterName, tier string) (EncounterResponse, error) {
	in, err := toStruct(StartEncounterRequest{Character: char, Monster: monsterName, Tier: tier})
	if err != nil {
		return EncounterResponse{}, err
	}
	out, err := c.raw.StartEncounter(ctx, in)
	if err != nil {
		return EncounterResponse{}, err
	}
	var resp EncounterResponse
	return resp, fromStruct(out, &resp)
}

// Submit resolves one intent in the encounter id.
func (c *Client) Submit(ctx context.Context, id string, intent encounter.Intent) (*encounter.Resolution, error) {
	in, err := toStruct(SubmitIntentRequest{EncounterID: id, Kind: string(intent.Kind), ID: intent.ID})
	if err != nil {
		return nil, err
	}
	out, err := c.raw.SubmitIntent(ctx, in)
	if err != nil {
		return nil, err
	}
	res := new(encounter.Resolution)
	if err := fromStruct(out, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns the state of the live encounter id.
func (c *Client) Get(ctx context.Context, id string) (EncounterResponse, error) {
	in, err := toStruct(EncounterRequest{EncounterID: id})
	if err != nil {
		return EncounterResponse{}, err
	}
	out, err := c.raw.GetEncounter(ctx, in)
	if err != nil {
		return EncounterResponse{}, err
	}
	var resp EncounterResponse
	return resp, fromStruct(out, &resp)
}

// Abandon discards the encounter id and reports whether it was live.
func (c *Client) Abandon(ctx context.Context, id string) (bool, error) {
	in, err := toStruct(EncounterRequest{EncounterID: id})
	if err != nil {
		return false, err
	}
	out, err := c.raw.AbandonEncounter(ctx, in)
	if err != nil {
		return false, err
	}
	var resp AbandonEncounterResponse
	return resp.Abandoned, fromStruct(out, &resp)
}
