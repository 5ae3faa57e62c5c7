// Package tui runs a game in the terminal, hot-seat or against the computer,
// using the same game model as the server. No server or storage is involved.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
)

const (
	helpText    = "Enter: play / jump   Tab: board <-> history   n: new game   q: quit"
	botHelpText = "Enter: play / jump   Tab: board <-> history   b: computer moves   n: new game   q: quit"
)

// Options configures a UI
type Options struct {
	// Bot plays one side when set; otherwise both players share the keyboard
	Bot *bot.Player
}

// UI is a terminal game, either hot-seat or against a bot
type UI struct {
	App     *tview.Application
	Board   *tview.Table
	Status  *tview.TextView
	History *tview.List
	Layout  *tview.Flex

	game *model.Game
	bot  *bot.Player
}

// New builds the widgets for a fresh game. Nothing is drawn until Run.
func New(opts Options) *UI {
	u := &UI{
		App:     tview.NewApplication(),
		Board:   tview.NewTable(),
		Status:  tview.NewTextView(),
		History: tview.NewList(),
		game:    model.NewGame("local"),
		bot:     opts.Bot,
	}

	u.Board.SetBorders(true).
		SetSelectable(true, true).
		SetSelectedFunc(func(row, col int) {
			u.Play(row, col)
		})
	u.Board.SetBorder(true).SetTitle(" Board ")

	u.History.ShowSecondaryText(false)
	u.History.SetBorder(true).SetTitle(" History ")

	u.Status.SetBorder(true).SetTitle(" Status ")

	help := tview.NewTextView().SetText(helpText)
	if u.bot != nil {
		help.SetText(botHelpText)
	}

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.Board, 9, 0, true).
		AddItem(u.Status, 3, 0, false)

	u.Layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(left, 21, 0, true).
			AddItem(u.History, 0, 1, false), 0, 1, true).
		AddItem(help, 1, 0, false)

	u.App.SetInputCapture(u.handleKey)
	u.respond()
	u.render()

	return u
}

// Run takes over the terminal until the user quits
func (u *UI) Run() error {
	return u.App.SetRoot(u.Layout, true).SetFocus(u.Board).EnableMouse(true).Run()
}

// Game returns a copy of the game being played
func (u *UI) Game() *model.Game {
	return u.game.Clone()
}

// Play places the current player's mark at row, col, then lets the bot
// answer. It reports whether the move was accepted. On the bot's turn
// only BotMove can play.
func (u *UI) Play(row, col int) bool {
	if row < 0 || row >= model.BoardSize || col < 0 || col >= model.BoardSize {
		return false
	}
	if u.bot != nil && u.bot.ToMove(u.game) {
		return false
	}
	if !u.game.ApplyMove(model.Index(row, col)) {
		return false
	}
	u.respond()
	u.render()
	return true
}

// BotMove asks the bot to play now, for when a history jump left it to move
func (u *UI) BotMove() bool {
	if !u.respond() {
		return false
	}
	u.render()
	return true
}

func (u *UI) respond() bool {
	if u.bot == nil {
		return false
	}
	_, moved := u.bot.Respond(u.game)
	return moved
}

// Jump rewinds (or fast-forwards) to history entry i
func (u *UI) Jump(i int) bool {
	if !u.game.JumpToHistory(i) {
		return false
	}
	u.render()
	return true
}

// Reset starts a new game
func (u *UI) Reset() {
	u.game = model.NewGame("local")
	u.respond()
	u.render()
}

func (u *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		if u.Board.HasFocus() {
			u.App.SetFocus(u.History)
		} else {
			u.App.SetFocus(u.Board)
		}
		return nil
	case tcell.KeyEscape:
		u.App.Stop()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			u.App.Stop()
			return nil
		case 'n':
			u.Reset()
			return nil
		case 'b':
			u.BotMove()
			return nil
		}
	}
	return event
}

func (u *UI) render() {
	u.renderBoard()
	u.renderStatus()
	u.renderHistory()
}

func (u *UI) renderBoard() {
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			u.Board.SetCell(row, col, boardCell(u.game.Board[model.Index(row, col)]))
		}
	}
}

func boardCell(m model.Mark) *tview.TableCell {
	text, colour := "   ", tcell.ColorDefault
	switch m {
	case model.MarkO:
		text, colour = " O ", tcell.ColorAqua
	case model.MarkX:
		text, colour = " X ", tcell.ColorFuchsia
	}
	return tview.NewTableCell(text).
		SetTextColor(colour).
		SetAlign(tview.AlignCenter)
}

func (u *UI) renderStatus() {
	u.Status.SetText(u.game.StatusText())
	if u.game.IsWon() {
		u.Status.SetTextColor(tcell.ColorGreen)
	} else {
		u.Status.SetTextColor(tcell.ColorDefault)
	}
}

func (u *UI) renderHistory() {
	u.History.Clear()
	for i := range u.game.History {
		label := model.HistoryLabel(i)
		if i == u.game.MoveCount {
			label = fmt.Sprintf("%s (current)", label)
		}
		u.History.AddItem(label, "", 0, func() {
			u.Jump(i)
		})
	}
	u.History.SetCurrentItem(u.game.MoveCount)
}
