// cmd/spectate/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/rhighs/quadtree-demo/pkg/config"
	"github.com/rhighs/quadtree-demo/pkg/entity"
	"github.com/rhighs/quadtree-demo/pkg/logging"
	"github.com/rhighs/quadtree-demo/pkg/network"
	"github.com/rhighs/quadtree-demo/pkg/physics"
	"github.com/rhighs/quadtree-demo/pkg/render"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	url := flag.String("url", "ws://localhost:4580/ws", "Spectator feed URL")
	worldWidth := flag.Float64("width", 1000, "World width of the watched simulation")
	worldHeight := flag.Float64("height", 600, "World height of the watched simulation")
	flag.Parse()

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "Invalid environment configuration", err)
		os.Exit(1)
	}

	client := network.NewSpectatorClient(*url, envConfig)
	if err := client.Connect(ctx); err != nil {
		logger.Error(ctx, "Failed to connect to spectator feed", err,
			"url", *url,
		)
		os.Exit(1)
	}
	defer client.Close()

	r, err := render.NewTerminalRenderer(*worldWidth, *worldHeight)
	if err != nil {
		logger.Error(ctx, "Failed to initialize terminal", err)
		os.Exit(1)
	}
	defer r.Close()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			events <- r.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-events:
			if r.TranslateEvent(ev).Quit {
				return
			}

		case frame, ok := <-client.Frames():
			if !ok {
				// Feed dropped; leave the terminal cleanly.
				return
			}
			drawFrame(r, frame)
		}
	}
}

func drawFrame(r *render.TerminalRenderer, frame *network.Frame) {
	r.Clear()
	for _, region := range frame.Regions {
		r.RenderRegion(physics.NewRect(region.X, region.Y, region.W, region.H))
	}
	for _, p := range frame.Particles {
		r.RenderParticle(entity.NewParticle(0, physics.Vector2D{X: p.X, Y: p.Y}, 0, 1))
	}
	player := entity.NewPlayer(0,
		physics.Vector2D{X: frame.Player.X, Y: frame.Player.Y},
		frame.Player.Radius, frame.Player.Radius, frame.Player.Radius, 0)
	r.RenderPlayer(player)
	r.RenderHUD(frame.Tick, frame.Stats.Particles, frame.Stats.Candidates, frame.Stats.Collisions)
	r.Present()
}
