// Package main provides the combat service binary that resolves encounters over gRPC.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/cory-johannsen/geoquest/internal/combatserver"
	"github.com/cory-johannsen/geoquest/internal/config"
	"github.com/cory-johannsen/geoquest/internal/game/dice"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
	"github.com/cory-johannsen/geoquest/internal/game/gamedata"
	"github.com/cory-johannsen/geoquest/internal/observability"
	"github.com/cory-johannsen/geoquest/internal/scripting"
	"github.com/cory-johannsen/geoquest/internal/server"
	"github.com/cory-johannsen/geoquest/internal/storage/postgres"
	"github.com/cory-johannsen/geoquest/internal/storage/redis"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and environment only")
	envFile := flag.String("env", ".env", "dotenv file loaded before configuration; missing is ignored")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading %s: %v", *envFile, err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "combatd")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = observability.Sync(logger) }()

	ctx := context.Background()

	src := dice.NewCryptoSource()
	if cfg.Combat.Seed != 0 {
		src = dice.NewSeededSource(cfg.Combat.Seed)
		logger.Warn("using seeded dice source", zap.Uint64("seed", cfg.Combat.Seed))
	}
	roller := dice.NewLoggedRoller(src, logger)

	// Game data
	dataStart := time.Now()
	data, err := loadData(cfg.Content)
	if err != nil {
		logger.Fatal("loading game data", zap.Error(err))
	}
	logger.Info("game data loaded",
		zap.Int("spells", data.Spells.Len()),
		zap.Int("monsters", len(data.Monsters.Names())),
		zap.Duration("elapsed", time.Since(dataStart)),
	)

	// Lua hooks
	scriptMgr := scripting.NewManager(roller, logger, cfg.Combat.ScriptInstructionLimit)
	defer scriptMgr.Close()
	if err := loadScripts(scriptMgr, data, cfg.Content.ScriptsDir); err != nil {
		logger.Fatal("loading scripts", zap.Error(err))
	}
	logger.Info("scripts loaded", zap.Strings("scopes", scriptMgr.Scopes()))

	// Storage
	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("connecting to redis", zap.Error(err))
	}
	store := redis.NewSnapshotStore(redisClient, cfg.Redis.KeyPrefix, cfg.Combat.IdleTimeout)

	manager := encounter.NewManager(data.Tables(),
		encounter.WithSource(src),
		encounter.WithLogger(logger),
		encounter.WithScripts(scriptMgr),
	)
	svc := combatserver.NewServer(manager, data, postgres.NewOutcomeRepository(pool.DB()), store, logger)
	if _, err := svc.Resume(ctx); err != nil {
		logger.Warn("resuming cached encounters", zap.Error(err))
	}

	grpcServer := grpc.NewServer()
	combatserver.RegisterCombatServiceServer(grpcServer, svc)

	lifecycle := server.NewLifecycle(logger)

	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func(ctx context.Context) error {
			t := time.NewTicker(30 * time.Second)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
					if err := pool.Health(ctx, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				}
			}
		},
		StopFn: func(context.Context) { pool.Close() },
	})

	lifecycle.Add("redis", &server.FuncService{
		StartFn: func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		},
		StopFn: func(context.Context) {
			if err := redisClient.Close(); err != nil {
				logger.Warn("closing redis client", zap.Error(err))
			}
		},
	})

	lifecycle.Add("reaper", server.Ticker(cfg.Combat.ReapInterval, func(ctx context.Context) {
		svc.Reap(ctx, cfg.Combat.IdleTimeout)
	}))

	lifecycle.Add("grpc", &server.FuncService{
		StartFn: func(context.Context) error {
			lis, err := net.Listen("tcp", cfg.Combat.Addr())
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Combat.Addr(), err)
			}
			logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
			return grpcServer.Serve(lis)
		},
		StopFn: func(ctx context.Context) {
			done := make(chan struct{})
			go func() {
				grpcServer.GracefulStop()
				close(done)
			}()
			select {
			case <-done:
			case <-ctx.Done():
				grpcServer.Stop()
			}
		},
	})

	logger.Info("combat service initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("grpc_addr", cfg.Combat.Addr()),
		zap.Duration("idle_timeout", cfg.Combat.IdleTimeout),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func loadData(cfg config.ContentConfig) (*gamedata.Data, error) {
	if cfg.DataDir != "" {
		return gamedata.LoadDir(cfg.DataDir)
	}
	return gamedata.Load()
}

func loadScripts(mgr *scripting.Manager, data *gamedata.Data, scriptsDir string) error {
	if scriptsDir != "" {
		return mgr.LoadTree(os.DirFS(scriptsDir), ".")
	}
	if data.Scripts == nil {
		return nil
	}
	return mgr.LoadTree(data.Scripts, ".")
}
