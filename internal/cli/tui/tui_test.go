package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
)

func cellText(u *UI, row, col int) string {
	return strings.TrimSpace(u.Board.GetCell(row, col).Text)
}

func statusText(u *UI) string {
	return strings.TrimSpace(u.Status.GetText(true))
}

func historyLabels(u *UI) []string {
	labels := make([]string, u.History.GetItemCount())
	for i := range labels {
		labels[i], _ = u.History.GetItemText(i)
	}
	return labels
}

func TestNewShowsEmptyBoard(t *testing.T) {
	u := New(Options{})

	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			assert.Equal(t, "", cellText(u, row, col))
		}
	}
	assert.Equal(t, "Next: O", statusText(u))
	assert.Equal(t, []string{"Goto Move #0 (current)"}, historyLabels(u))
}

func TestPlayRendersMove(t *testing.T) {
	u := New(Options{})

	require.True(t, u.Play(1, 1))

	assert.Equal(t, "O", cellText(u, 1, 1))
	assert.Equal(t, "Next: X", statusText(u))
	assert.Equal(t, []string{"Goto Move #0", "Goto Move #1 (current)"}, historyLabels(u))
	assert.Equal(t, 1, u.History.GetCurrentItem())
}

func TestPlayRejectsOccupiedAndOffBoard(t *testing.T) {
	u := New(Options{})
	require.True(t, u.Play(0, 0))

	assert.False(t, u.Play(0, 0))
	assert.False(t, u.Play(3, 0))
	assert.False(t, u.Play(0, -1))
	assert.Equal(t, 1, u.Game().MoveCount)
}

func TestWinStopsPlay(t *testing.T) {
	u := New(Options{})
	// O:0, X:1, O:4, X:2, O:8
	for _, m := range [][2]int{{0, 0}, {0, 1}, {1, 1}, {0, 2}, {2, 2}} {
		require.True(t, u.Play(m[0], m[1]))
	}

	assert.Equal(t, "Winner: O", statusText(u))
	assert.False(t, u.Play(1, 0))
	assert.Equal(t, "", cellText(u, 1, 0))
}

func TestJumpAndBranch(t *testing.T) {
	u := New(Options{})
	for _, m := range [][2]int{{0, 0}, {0, 1}, {1, 1}} {
		require.True(t, u.Play(m[0], m[1]))
	}

	require.True(t, u.Jump(1))
	assert.Equal(t, "O", cellText(u, 0, 0))
	assert.Equal(t, "", cellText(u, 0, 1))
	assert.Equal(t, "Next: X", statusText(u))
	assert.Len(t, historyLabels(u), 4, "jumping keeps later entries")
	assert.Equal(t, 1, u.History.GetCurrentItem())

	require.True(t, u.Play(2, 2))
	assert.Equal(t, "X", cellText(u, 2, 2))
	assert.Equal(t, "", cellText(u, 1, 1))
	assert.Len(t, historyLabels(u), 3, "a move discards the abandoned branch")

	assert.False(t, u.Jump(5))
}

func TestSelectingHistoryItemJumps(t *testing.T) {
	u := New(Options{})
	require.True(t, u.Play(0, 0))
	require.True(t, u.Play(1, 1))

	u.History.SetCurrentItem(0)
	handler := u.History.InputHandler()
	handler(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(p tview.Primitive) {})

	assert.Equal(t, 0, u.Game().MoveCount)
	assert.Equal(t, "", cellText(u, 0, 0))
}

func TestResetKey(t *testing.T) {
	u := New(Options{})
	require.True(t, u.Play(0, 0))

	ev := u.handleKey(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	assert.Nil(t, ev)
	assert.Equal(t, 0, u.Game().MoveCount)
	assert.Equal(t, "", cellText(u, 0, 0))

	other := tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)
	assert.Equal(t, other, u.handleKey(other))
}

func newBotUI(mark model.Mark) *UI {
	return New(Options{Bot: bot.NewPlayer(mark, bot.NewLineStrategy(mocks.NewMockRandom()))})
}

func TestBotAnswersEachMove(t *testing.T) {
	u := newBotUI(model.MarkX)

	require.True(t, u.Play(0, 0))

	// The line strategy takes the centre
	assert.Equal(t, "X", cellText(u, 1, 1))
	assert.Equal(t, 2, u.Game().MoveCount)
	assert.Equal(t, "Next: O", statusText(u))
}

func TestBotPlayingOMovesFirst(t *testing.T) {
	u := newBotUI(model.MarkO)

	assert.Equal(t, "O", cellText(u, 1, 1))
	assert.Equal(t, 1, u.Game().MoveCount)

	u.Reset()
	assert.Equal(t, "O", cellText(u, 1, 1))
	assert.Equal(t, 1, u.Game().MoveCount)
}

func TestBotWaitsAfterJump(t *testing.T) {
	u := newBotUI(model.MarkX)
	require.True(t, u.Play(0, 0))
	require.Equal(t, 2, u.Game().MoveCount)

	// Back to X's turn: the human cannot play for the bot
	require.True(t, u.Jump(1))
	assert.False(t, u.Play(2, 2))
	assert.Equal(t, 1, u.Game().MoveCount)

	require.True(t, u.BotMove())
	assert.Equal(t, 2, u.Game().MoveCount)
	assert.False(t, u.BotMove(), "now it is O's turn")
}
