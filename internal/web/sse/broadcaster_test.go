package sse

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/testutil"
)

func TestWrapForOOBSwap(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		html     string
		expected string
	}{
		{"simple content", "status", "Next: O", `<div id="status" hx-swap-oob="true">Next: O</div>`},
		{"empty content", "history", "", `<div id="history" hx-swap-oob="true"></div>`},
		{"nested content", "board", `<div class="board-row"></div>`, `<div id="board" hx-swap-oob="true"><div class="board-row"></div></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := WrapForOOBSwap(tt.id, tt.html); result != tt.expected {
				t.Errorf("WrapForOOBSwap(%q, %q)\ngot:  %q\nwant: %q", tt.id, tt.html, result, tt.expected)
			}
		})
	}
}

func wonGame(t *testing.T) *model.Game {
	t.Helper()
	g := model.NewGame("ABC123")
	for _, idx := range []int{0, 1, 4, 2, 8} {
		if !g.ApplyMove(idx) {
			t.Fatalf("move %d rejected", idx)
		}
	}
	return g
}

func TestRenderer_RenderGameEvent(t *testing.T) {
	g := wonGame(t)
	events, err := NewRenderer().RenderGameEvent(context.Background(), model.Event{Type: model.EventMoveApplied, GameID: g.ID}, g)
	if err != nil {
		t.Fatalf("RenderGameEvent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	update := events[0]
	if update.EventName != EventGameUpdate {
		t.Errorf("first event = %q, want %q", update.EventName, EventGameUpdate)
	}
	for _, want := range []string{
		`<div id="board" hx-swap-oob="true">`,
		`<div id="status" hx-swap-oob="true">Winner: O</div>`,
		`<div id="history" hx-swap-oob="true">`,
		"Goto Move #5",
	} {
		if !strings.Contains(update.Data, want) {
			t.Errorf("game-update missing %q", want)
		}
	}

	state := events[1]
	if state.EventName != EventGameState {
		t.Errorf("second event = %q, want %q", state.EventName, EventGameState)
	}
	var data StateData
	if err := json.Unmarshal([]byte(state.Data), &data); err != nil {
		t.Fatalf("game-state is not JSON: %v", err)
	}
	if data.Winner != "O" || data.Next != "" || data.MoveCount != 5 || data.HistoryLength != 6 {
		t.Errorf("unexpected state %+v", data)
	}
	if data.Board[0] != "O" || data.Board[1] != "X" || data.Board[3] != "" {
		t.Errorf("unexpected board %v", data.Board)
	}
}

func TestNewStateDataInProgress(t *testing.T) {
	g := model.NewGame("ABC123")
	g.ApplyMove(4)

	data := NewStateData(model.EventMoveApplied, g)
	if data.Next != "X" || data.Winner != "" || data.Status != "Next: X" {
		t.Errorf("unexpected state %+v", data)
	}
}

func TestBroadcaster_GameChangedReachesWatchers(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	g := wonGame(t)
	hub := manager.GetOrCreateHub(g.ID)
	client := NewClient(hub, "tab1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	broadcaster.GameChanged(context.Background(), g, model.Event{Type: model.EventMoveApplied, GameID: g.ID})

	var received []string
	for len(received) < 2 {
		select {
		case msg := <-client.send:
			received = append(received, string(msg))
		case <-time.After(time.Second):
			t.Fatalf("received %d messages, want 2", len(received))
		}
	}

	if !strings.HasPrefix(received[0], "event: game-update\n") {
		t.Errorf("first message = %q", received[0])
	}
	if !strings.HasPrefix(received[1], "event: game-state\n") {
		t.Errorf("second message = %q", received[1])
	}
}

func TestBroadcaster_GameChangedWithoutWatchers(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// Must not create a hub or panic
	broadcaster.GameChanged(context.Background(), model.NewGame("NOBODY"), model.Event{Type: model.EventGameCreated})

	if manager.HubCount() != 0 {
		t.Errorf("HubCount() = %d, want 0", manager.HubCount())
	}
}

func TestBroadcaster_GameDeletedClosesStreams(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	g := model.NewGame("GONE")
	hub := manager.GetOrCreateHub(g.ID)
	client := NewClient(hub, "tab1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	broadcaster.GameChanged(context.Background(), g, model.Event{Type: model.EventGameDeleted, GameID: g.ID})

	select {
	case _, ok := <-client.send:
		if ok {
			t.Errorf("expected the stream to be closed, got a message")
		}
	case <-time.After(time.Second):
		t.Fatal("client stream was not closed")
	}
	if manager.GetHub(g.ID) != nil {
		t.Error("hub still registered after delete")
	}
}
