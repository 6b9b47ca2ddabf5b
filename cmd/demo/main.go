// cmd/demo/main.go
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/rhighs/quadtree-demo/pkg/audio"
	"github.com/rhighs/quadtree-demo/pkg/config"
	"github.com/rhighs/quadtree-demo/pkg/engine"
	"github.com/rhighs/quadtree-demo/pkg/health"
	"github.com/rhighs/quadtree-demo/pkg/logging"
	"github.com/rhighs/quadtree-demo/pkg/network"
	"github.com/rhighs/quadtree-demo/pkg/render"
	engorender "github.com/rhighs/quadtree-demo/pkg/render/engo"
	"github.com/rhighs/quadtree-demo/pkg/telemetry"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	rendererName := flag.String("renderer", "engo", "Renderer: engo, terminal or null")
	listenAddr := flag.String("listen", "", "Spectator feed address (overrides config)")
	recordPath := flag.String("record", "", "Record frame telemetry to this SQLite file")
	mute := flag.Bool("mute", false, "Disable collision sounds")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	simConfig := loadConfig(ctx, logger, *configPath)
	if *listenAddr != "" {
		simConfig.Network.ListenAddress = *listenAddr
	}
	if *recordPath != "" {
		simConfig.Telemetry.Path = *recordPath
	}

	game := engine.NewGame(simConfig)

	if !*mute && *rendererName != "terminal" {
		// The terminal renderer stays silent: speaker output over a
		// remote shell is more annoying than useful.
		sound := audio.NewPlayer()
		sound.Attach(game.EventBus)
		defer sound.Close()
	}

	var recorder *telemetry.Recorder
	if simConfig.Telemetry.Path != "" {
		store, err := telemetry.OpenStore(simConfig.Telemetry.Path)
		if err != nil {
			logger.Error(ctx, "Failed to open telemetry store", err,
				"path", simConfig.Telemetry.Path,
			)
			os.Exit(1)
		}
		defer store.Close()
		recorder = telemetry.NewRecorder(store, simConfig.Telemetry.BatchSize)
		defer recorder.Stop()
	}

	server := network.NewSpectatorServer(game)
	if err := server.Start(simConfig.Network.ListenAddress); err != nil {
		logger.Error(ctx, "Failed to start spectator server", err,
			"address", simConfig.Network.ListenAddress,
		)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Stop(shutdownCtx)
	}()

	observe := func(stats engine.FrameStats) {
		if recorder != nil {
			recorder.Record(stats)
		}
	}

	switch *rendererName {
	case "engo":
		scene := engorender.NewDemoScene(game)
		scene.Observer = observe
		engorender.Run(scene, int(simConfig.WorldWidth), int(simConfig.WorldHeight))

	case "terminal":
		if err := runTerminal(game, observe); err != nil {
			logger.Error(ctx, "Terminal renderer failed", err)
			os.Exit(1)
		}

	case "null":
		runHeadless(ctx, logger, game, simConfig, observe)

	default:
		logger.Error(ctx, "Unknown renderer", nil,
			"renderer", *rendererName,
		)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context, logger *logging.Logger, path string) *config.SimConfig {
	var simConfig *config.SimConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		simConfig = config.DefaultConfig()
	} else {
		simConfig, err = config.LoadConfig(path)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", path,
			)
			os.Exit(1)
		}
	}

	if err := config.ApplyEnvironmentOverrides(simConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}
	return simConfig
}

// runTerminal drives the simulation from a tcell event loop.
func runTerminal(game *engine.Game, observe func(engine.FrameStats)) error {
	r, err := render.NewTerminalRenderer(game.Config.WorldWidth, game.Config.WorldHeight)
	if err != nil {
		return err
	}
	defer r.Close()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			events <- r.PollEvent()
		}
	}()

	game.Start()
	defer game.Stop()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			input := r.TranslateEvent(ev)
			if input.Quit {
				return nil
			}
			if input.MouseWorld != nil {
				game.MovePlayer(*input.MouseWorld, time.Since(last).Seconds())
			}
			if input.WheelSteps != 0 {
				game.ResizePlayer(input.WheelSteps)
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			stats := game.Update(dt)
			observe(stats)
			drawFrame(r, game, stats)
		}
	}
}

func drawFrame(r *render.TerminalRenderer, game *engine.Game, stats engine.FrameStats) {
	game.EntityLock.RLock()
	r.Clear()
	for _, region := range game.SpatialIndex.Regions(nil) {
		r.RenderRegion(region)
	}
	for _, particle := range game.Particles {
		r.RenderParticle(particle)
	}
	r.RenderPlayer(game.Player)
	r.RenderHUD(stats.Tick, stats.Particles, stats.Candidates, stats.Collisions)
	game.EntityLock.RUnlock()
	r.Present()
}

// runHeadless ticks the simulation with no display, serving only the
// spectator feed, telemetry and health endpoints.
func runHeadless(ctx context.Context, logger *logging.Logger, game *engine.Game, simConfig *config.SimConfig, observe func(engine.FrameStats)) {
	healthServer := startHealthServer(ctx, logger, game, simConfig)

	game.Start()
	defer game.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			observe(game.Update(dt))

		case <-sigChan:
			logger.Info(ctx, "Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			healthServer.Shutdown(shutdownCtx)
			return
		}
	}
}

func startHealthServer(ctx context.Context, logger *logging.Logger, game *engine.Game, simConfig *config.SimConfig) *http.Server {
	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewSimulationHealthCheck(
		func() bool { return game.Running },
		func() uint64 { return game.LastStats().Tick },
		10*time.Second,
	))
	checker.AddCheck(health.NewFeedHealthCheck(
		func() string { return simConfig.Network.ListenAddress },
	))
	checker.AddCheck(health.NewParticleLoadHealthCheck(100000, func() int {
		return game.LastStats().Particles
	}))

	healthPort := "8080"
	if envPort := os.Getenv("QUADTREE_HEALTH_PORT"); envPort != "" {
		if _, err := strconv.Atoi(envPort); err == nil {
			healthPort = envPort
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.LivenessHandler)
	mux.HandleFunc("/ready", checker.ReadinessHandler)

	healthServer := &http.Server{
		Addr:         ":" + healthPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info(ctx, "Starting health check server", "port", healthPort)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()
	return healthServer
}
