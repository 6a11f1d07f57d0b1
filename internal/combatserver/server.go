package combatserver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
	"github.com/cory-johannsen/geoquest/internal/storage/postgres"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . MonsterCatalog,OutcomeRecorder,SnapshotStore

// MonsterCatalog spawns level-scaled monsters from named templates.
type MonsterCatalog interface {
	Spawn(name string, characterLevel int, tier combat.Tier) (monster.Stats, error)
}

// OutcomeRecorder persists terminal encounter outcomes.
type OutcomeRecorder interface {
	Record(ctx context.Context, rec postgres.OutcomeRecord) (postgres.OutcomeRecord, error)
}

// SnapshotStore caches live encounter state across restarts.
type SnapshotStore interface {
	Save(ctx context.Context, snap encounter.Snapshot) error
	Delete(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]encounter.Snapshot, error)
}

// Server implements CombatServiceServer on top of an encounter.Manager.
//
// The recorder and store are optional; a nil collaborator is skipped. Their failures
// are logged and never fail an RPC whose intent already resolved.
type Server struct {
	manager  *encounter.Manager
	catalog  MonsterCatalog
	recorder OutcomeRecorder
	store    SnapshotStore
	logger   *zap.Logger
}

// NewServer creates a Server.
//
// Precondition: manager, catalog and logger must be non-nil.
func NewServer(manager *encounter.Manager, catalog MonsterCatalog, recorder OutcomeRecorder, store SnapshotStore, logger *zap.Logger) *Server {
	return &Server{
		manager:  manager,
		catalog:  catalog,
		recorder: recorder,
		store:    store,
		logger:   logger,
	}
}

// StartEncounter spawns the requested monster for the character's level and starts
// an encounter.
func (s *Server) StartEncounter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req StartEncounterRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.Monster == "" {
		return nil, status.Error(codes.InvalidArgument, "monster is required")
	}

	mon, err := s.catalog.Spawn(req.Monster, req.Character.Level, combat.Tier(req.Tier))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	sess, err := s.manager.Start(req.Character, mon)
	if err != nil {
		return nil, statusOf(err)
	}

	snap := sess.Snapshot()
	s.save(ctx, snap)
	s.logger.Info("encounter started",
		zap.String("encounter_id", snap.ID),
		zap.String("character", req.Character.Name),
		zap.String("monster", mon.Name),
		zap.String("tier", string(mon.Tier)),
		zap.Int("monster_level", mon.Level),
	)
	return toStruct(EncounterResponse{EncounterID: snap.ID, State: snap})
}

// SubmitIntent resolves one player intent. A terminal resolution is recorded and its
// cached snapshot dropped; otherwise the snapshot is refreshed.
func (s *Server) SubmitIntent(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SubmitIntentRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	intent, err := encounter.ParseIntent(req.Kind, req.ID)
	if err != nil {
		return nil, statusOf(err)
	}

	sess, ok := s.manager.Get(req.EncounterID)
	if !ok {
		return nil, statusOf(combaterr.New(combaterr.KindSessionTerminated, "no live encounter %q", req.EncounterID))
	}
	res, err := s.manager.Submit(req.EncounterID, intent)
	if err != nil {
		return nil, statusOf(err)
	}

	snap := sess.Snapshot()
	if res.Outcome.Terminal() {
		s.record(ctx, snap, res)
		s.drop(ctx, snap.ID)
	} else {
		s.save(ctx, snap)
	}
	return toStruct(res)
}

// GetEncounter returns the current state of a live encounter.
func (s *Server) GetEncounter(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EncounterRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	sess, ok := s.manager.Get(req.EncounterID)
	if !ok {
		return nil, statusOf(combaterr.New(combaterr.KindSessionTerminated, "no live encounter %q", req.EncounterID))
	}
	return toStruct(EncounterResponse{EncounterID: req.EncounterID, State: sess.Snapshot()})
}

// AbandonEncounter discards a live encounter without recording an outcome.
func (s *Server) AbandonEncounter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EncounterRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	abandoned := s.manager.Abandon(req.EncounterID)
	if abandoned {
		s.drop(ctx, req.EncounterID)
	}
	return toStruct(AbandonEncounterResponse{Abandoned: abandoned})
}

// Resume adopts every cached snapshot into the manager.
//
// Postcondition: Returns the number of encounters adopted. Snapshots that cannot be
// adopted are dropped from the store.
func (s *Server) Resume(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	start := time.Now()
	snaps, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading cached encounters: %w", err)
	}
	adopted := 0
	for _, snap := range snaps {
		if _, err := s.manager.Adopt(snap); err != nil {
			s.logger.Warn("discarding cached encounter",
				zap.String("encounter_id", snap.ID),
				zap.Error(err),
			)
			s.drop(ctx, snap.ID)
			continue
		}
		adopted++
	}
	s.logger.Info("resumed cached encounters",
		zap.Int("adopted", adopted),
		zap.Int("cached", len(snaps)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return adopted, nil
}

// Reap expires encounters idle for at least idle and drops their snapshots.
func (s *Server) Reap(ctx context.Context, idle time.Duration) []string {
	reaped := s.manager.Reap(idle)
	for _, id := range reaped {
		s.drop(ctx, id)
	}
	return reaped
}

func (s *Server) save(ctx context.Context, snap encounter.Snapshot) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, snap); err != nil {
		s.logger.Warn("caching encounter snapshot", zap.String("encounter_id", snap.ID), zap.Error(err))
	}
}

func (s *Server) drop(ctx context.Context, id string) {
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("dropping encounter snapshot", zap.String("encounter_id", id), zap.Error(err))
	}
}

func (s *Server) record(ctx context.Context, snap encounter.Snapshot, res *encounter.Resolution) {
	s.logger.Info("encounter ended",
		zap.String("encounter_id", snap.ID),
		zap.String("outcome", res.Outcome.String()),
		zap.Int("rounds", res.Round),
	)
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.Record(ctx, postgres.NewOutcomeRecord(snap, res)); err != nil {
		s.logger.Error("recording encounter outcome", zap.String("encounter_id", snap.ID), zap.Error(err))
	}
}
