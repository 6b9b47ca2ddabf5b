package network

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rhighs/quadtree-demo/pkg/config"
	"github.com/rhighs/quadtree-demo/pkg/engine"
	"github.com/rhighs/quadtree-demo/pkg/entity"
	"github.com/rhighs/quadtree-demo/pkg/physics"
)

func TestFrameFromState(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Spawn.Rate = 0
	game := engine.NewGame(cfg)
	game.Particles = append(game.Particles,
		entity.NewParticle(entity.GenerateID(), physics.Vector2D{X: 10, Y: 20}, 100, 1))
	game.Update(0.01)

	frame := FrameFromState(game.GetGameState())

	if frame.Tick != 1 {
		t.Errorf("expected tick 1, got %d", frame.Tick)
	}
	if len(frame.Particles) != 1 {
		t.Fatalf("expected 1 particle, got %d", len(frame.Particles))
	}
	if frame.Player.Radius != cfg.Player.Radius {
		t.Errorf("player radius %g, expected %g", frame.Player.Radius, cfg.Player.Radius)
	}
	if len(frame.Regions) < 4 {
		t.Errorf("expected root quadrants in frame, got %d regions", len(frame.Regions))
	}
}

func TestFrameMsgpackRoundTrip(t *testing.T) {
	frame := &Frame{
		Tick:      42,
		Player:    PlayerFrame{X: 500, Y: 300, Radius: 100},
		Particles: []ParticleFrame{{X: 1, Y: 2}, {X: 3, Y: 4}},
		Regions:   []RectFrame{{X: 0, Y: 0, W: 500, H: 300}},
		Stats:     StatsFrame{Particles: 2, Candidates: 1, Collisions: 1, DurationUS: 250},
	}

	data, err := msgpack.Marshal(frame)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Frame
	if err := msgpack.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Tick != 42 || len(decoded.Particles) != 2 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
	if decoded.Stats.DurationUS != 250 {
		t.Errorf("stats mismatch: %+v", decoded.Stats)
	}
}

// startTestServer runs the hub and broadcast loops behind an httptest
// server and returns a websocket URL for it.
func startTestServer(t *testing.T, game *engine.Game) (*SpectatorServer, string) {
	t.Helper()
	s := NewSpectatorServer(game)
	go s.hubLoop()
	go s.broadcastLoop()

	ts := httptest.NewServer(s.routes())
	t.Cleanup(func() {
		close(s.done)
		ts.Close()
	})

	return s, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func testGame() *engine.Game {
	cfg := config.DefaultConfig()
	cfg.Spawn.Rate = 0
	cfg.Network.UpdateRate = 50
	return engine.NewGame(cfg)
}

func TestSpectatorServer_BroadcastsFrames(t *testing.T) {
	game := testGame()
	game.Update(0.01)
	_, url := startTestServer(t, game)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("expected binary message, got type %d", msgType)
	}

	var frame Frame
	if err := msgpack.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if frame.Tick != game.CurrentTick {
		t.Errorf("frame tick %d, expected %d", frame.Tick, game.CurrentTick)
	}
}

func TestSpectatorServer_RejectsWhenFull(t *testing.T) {
	game := testGame()
	game.Config.Network.MaxSpectators = 1
	s, url := startTestServer(t, game)

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("first dial failed: %v", err)
	}
	defer first.Close()

	// Wait for the hub to register the first spectator.
	deadline := time.Now().Add(time.Second)
	for s.SpectatorCount() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if _, _, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Error("second dial should be refused")
	}
}

func TestSpectatorClient_ReceivesFrames(t *testing.T) {
	game := testGame()
	game.Update(0.01)
	_, url := startTestServer(t, game)

	client := NewSpectatorClient(url, testEnvConfig())
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer client.Close()

	if !client.Connected() {
		t.Error("client should report connected")
	}

	select {
	case frame := <-client.Frames():
		if frame == nil {
			t.Fatal("expected frame, channel closed")
		}
		if frame.Tick != game.CurrentTick {
			t.Errorf("frame tick %d, expected %d", frame.Tick, game.CurrentTick)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
	}
}

func TestSpectatorClient_ConnectFailsForDeadServer(t *testing.T) {
	env := testEnvConfig()
	client := NewSpectatorClient("ws://127.0.0.1:1/ws", env)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err == nil {
		t.Fatal("expected connect error")
	}
	if client.Connected() {
		t.Error("client should not report connected")
	}
}
