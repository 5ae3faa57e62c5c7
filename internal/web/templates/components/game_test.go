package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/model"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func playedGame(t *testing.T, moves ...int) *model.Game {
	t.Helper()
	g := model.NewGame("ABC123")
	for _, m := range moves {
		require.True(t, g.ApplyMove(m))
	}
	return g
}

func TestBoardRendersNineCellsInRows(t *testing.T) {
	g := playedGame(t, 0, 4)
	doc := render(t, Board(g))

	assert.Equal(t, 3, doc.Find(".board-row").Length())
	cells := doc.Find("button.square")
	require.Equal(t, 9, cells.Length())

	assert.Equal(t, "O", cells.Eq(0).Text())
	assert.Equal(t, "X", cells.Eq(4).Text())
	assert.Equal(t, "", cells.Eq(8).Text())
}

func TestBoardCellsPostTheirIndex(t *testing.T) {
	doc := render(t, Board(playedGame(t)))

	doc.Find("form.cell-form").Each(func(i int, form *goquery.Selection) {
		action, _ := form.Attr("action")
		assert.Equal(t, "/game/ABC123/move", action)
		hxPost, _ := form.Attr("hx-post")
		assert.Equal(t, action, hxPost)
		value, _ := form.Find("input[name=index]").Attr("value")
		assert.Equal(t, string(rune('0'+i)), value)
	})
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Next: O", render(t, Status(playedGame(t))).Text())
	assert.Equal(t, "Next: X", render(t, Status(playedGame(t, 0))).Text())
	assert.Equal(t, "Winner: O", render(t, Status(playedGame(t, 0, 1, 4, 2, 8))).Text())
}

func TestHistoryHasOneEntryPerSnapshot(t *testing.T) {
	g := playedGame(t, 0, 1, 4)
	doc := render(t, History(g))

	buttons := doc.Find("li button")
	require.Equal(t, 4, buttons.Length())
	for i := 0; i < 4; i++ {
		assert.Equal(t, model.HistoryLabel(i), buttons.Eq(i).Text())
	}
	assert.Equal(t, 1, doc.Find("li.current").Length())
	assert.Equal(t, "Goto Move #3", doc.Find("li.current button").Text())
}

func TestHistoryMarksJumpedSnapshot(t *testing.T) {
	g := playedGame(t, 0, 1, 4)
	require.True(t, g.JumpToHistory(1))
	doc := render(t, History(g))

	assert.Equal(t, 4, doc.Find("li").Length())
	assert.Equal(t, "Goto Move #1", doc.Find("li.current button").Text())
}

func TestGameFragmentHasNoStreamConnection(t *testing.T) {
	doc := render(t, Game(playedGame(t, 0)))

	container := doc.Find("#game")
	require.Equal(t, 1, container.Length())
	assert.Equal(t, 0, doc.Find("[sse-connect]").Length())

	assert.Equal(t, 9, doc.Find("#"+BoardID+" button.square").Length())
	assert.Equal(t, "Next: X", doc.Find("#"+StatusID).Text())
	assert.Equal(t, 2, doc.Find("#"+HistoryID+" li").Length())
}

func TestLiveWrapsGameOutsideSwapTarget(t *testing.T) {
	doc := render(t, Live(playedGame(t, 0)))

	live := doc.Find("#game-live")
	require.Equal(t, 1, live.Length())
	connect, _ := live.Attr("sse-connect")
	assert.Equal(t, "/game/ABC123/events", connect)
	assert.Equal(t, 1, live.Find("[sse-swap=game-update]").Length())

	// forms replace #game, which sits inside the connected wrapper
	game := live.Children().Filter("#game")
	require.Equal(t, 1, game.Length())
	_, connected := game.Attr("sse-connect")
	assert.False(t, connected)
	game.Find("form").Each(func(_ int, form *goquery.Selection) {
		target, _ := form.Attr("hx-target")
		assert.Equal(t, "#game", target)
	})
}

func TestGameIDIsEscaped(t *testing.T) {
	g := model.NewGame(`<script>"`)
	var buf bytes.Buffer
	require.NoError(t, Game(g).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "<script>")
}
