package pages

import (
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
	CurrentGame *model.Game // the session's game, if it still exists
}

// GameData holds data for the game page
type GameData struct {
	layout.PageData
	Game *model.Game
}
