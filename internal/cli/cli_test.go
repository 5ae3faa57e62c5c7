package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleGame() Game {
	return Game{
		ID:        "GAME0001",
		Board:     []string{"O", "X", "", "", "O", "", "", "", ""},
		MoveCount: 3,
		Next:      strPtr("X"),
		Status:    "Next: X",
		State:     "in_progress",
		History: []History{
			{Index: 0, Label: "Goto Move #0"},
			{Index: 1, Label: "Goto Move #1"},
			{Index: 2, Label: "Goto Move #2"},
			{Index: 3, Label: "Goto Move #3", Current: true},
		},
	}
}

func textOutput(buf *bytes.Buffer) *Output {
	return NewOutput(buf, &Config{Output: FormatText, NoColor: true})
}

func TestPrintGameText(t *testing.T) {
	var buf bytes.Buffer
	textOutput(&buf).Print(sampleGame())

	out := buf.String()
	assert.Contains(t, out, "Game: GAME0001")
	assert.Contains(t, out, "    O | X | 2\n")
	assert.Contains(t, out, "    3 | O | 5\n")
	assert.Contains(t, out, "    6 | 7 | 8\n")
	assert.Contains(t, out, "Next: X")
	assert.Contains(t, out, "  Goto Move #0\n")
	assert.Contains(t, out, "  Goto Move #3  <- current\n")
	assert.NotContains(t, out, "\x1b[", "no escape codes with colors disabled")
}

func TestPrintMoveResultIgnored(t *testing.T) {
	var buf bytes.Buffer
	textOutput(&buf).Print(MoveResult{Applied: false, Game: sampleGame()})

	assert.True(t, strings.HasPrefix(buf.String(), "Move ignored"))
	assert.Contains(t, buf.String(), "Game: GAME0001")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutput(&buf, &Config{Output: FormatJSON}).Print(sampleGame())

	var g Game
	require.NoError(t, json.Unmarshal(buf.Bytes(), &g))
	assert.Equal(t, sampleGame(), g)
}

func TestPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	textOutput(&buf).PrintMessage("Game deleted")
	assert.Equal(t, "Game deleted\n", buf.String())

	buf.Reset()
	NewOutput(&buf, &Config{Output: FormatJSON}).PrintMessage("Game deleted")
	assert.JSONEq(t, `{"message":"Game deleted"}`, buf.String())
}

func TestConfigValidate(t *testing.T) {
	c := &Config{ServerURL: "http://localhost:8080", Output: FormatText}
	assert.NoError(t, c.Validate())

	c.Output = "yaml"
	assert.Error(t, c.Validate())

	c.Output = FormatJSON
	c.ServerURL = ""
	assert.Error(t, c.Validate())
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv(ServerEnv, "http://example.test:9000")
	t.Setenv("NO_COLOR", "1")

	c := DefaultConfig()
	assert.Equal(t, "http://example.test:9000", c.ServerURL)
	assert.True(t, c.NoColor)
	assert.Equal(t, FormatText, c.Output)
}

func TestClientDecodesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"GAME_NOT_FOUND","message":"Game not found"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL + "/")
	err := c.Get(context.Background(), "/api/v1/games/NOPE", nil)
	require.Error(t, err)
	assert.Equal(t, "Game not found (GAME_NOT_FOUND)", err.Error())
}

func TestClientNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewClient(server.URL).Get(context.Background(), "/", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestClientSendsJSONBody(t *testing.T) {
	var got map[string]int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/games/G1/moves", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"applied":true,"game":{"id":"G1","move_count":1}}`))
	}))
	defer server.Close()

	var result MoveResult
	err := NewClient(server.URL).Post(context.Background(), "/api/v1/games/G1/moves", map[string]int{"index": 4}, &result)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"index": 4}, got)
	assert.True(t, result.Applied)
	assert.Equal(t, 1, result.Game.MoveCount)
}

func TestClientLogsRequestsWhenAsked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	var log bytes.Buffer
	c := NewClient(server.URL).LogRequestsTo(&log)
	require.NoError(t, c.Get(context.Background(), "/api/v1/health", nil))

	line := log.String()
	assert.Contains(t, line, "method=GET")
	assert.Contains(t, line, "url="+server.URL+"/api/v1/health")
	assert.Contains(t, line, "status=200")
}

func TestVerboseFlagLogsToStderr(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","storage":"memory"}`))
	}))
	defer server.Close()

	for _, tc := range []struct {
		args   []string
		logged bool
	}{
		{[]string{"--server", server.URL, "health"}, false},
		{[]string{"--server", server.URL, "-v", "health"}, true},
	} {
		var stdout, stderr bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetArgs(tc.args)
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)

		require.NoError(t, cmd.Execute())
		assert.Equal(t, tc.logged, strings.Contains(stderr.String(), "/api/v1/health"), tc.args)
		assert.NotContains(t, stdout.String(), "method=GET")
	}
}

func TestRootRejectsUnknownOutput(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--output", "yaml", "health"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestMoveRejectsNonNumericIndex(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"game", "move", "G1", "centre"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid index")
}

func TestPrintEventSummarisesState(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, "game-state", `{"move_count":2,"status":"Next: O"}`, false)
	assert.Contains(t, buf.String(), "game-state: move 2, Next: O")

	buf.Reset()
	printEvent(&buf, "game-update", "<div>\n</div>", true)
	var evt SSEEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &evt))
	assert.Equal(t, "game-update", evt.Event)
	assert.Equal(t, "<div>\n</div>", evt.Data)
}

func TestPlayOptions(t *testing.T) {
	opts, err := playOptions("", "line")
	require.NoError(t, err)
	assert.Nil(t, opts.Bot)

	opts, err = playOptions("x", "random")
	require.NoError(t, err)
	require.NotNil(t, opts.Bot)
	assert.Equal(t, "X", string(opts.Bot.Mark))

	_, err = playOptions("Z", "line")
	assert.Error(t, err)

	_, err = playOptions("O", "minimax")
	assert.Error(t, err)
}
