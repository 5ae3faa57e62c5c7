package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/cli/tui"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
)

func newPlayCmd() *cobra.Command {
	var botMark, strategy string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in this terminal",
		Long: `Play tic-tac-toe in the terminal, against a friend on one keyboard or
against the computer with --bot. O moves first.

Use the arrow keys and Enter to play a cell. Tab moves to the history list,
where Enter jumps back to that move. Playing from an earlier move discards
the moves that came after it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := playOptions(botMark, strategy)
			if err != nil {
				return err
			}
			return tui.New(opts).Run()
		},
	}

	cmd.Flags().StringVar(&botMark, "bot", "", "Let the computer play O or X")
	cmd.Flags().StringVar(&strategy, "strategy", bot.StrategyLine,
		"Computer strategy: "+strings.Join(bot.StrategyNames(), ", "))

	return cmd
}

func playOptions(botMark, strategy string) (tui.Options, error) {
	if botMark == "" {
		return tui.Options{}, nil
	}

	mark := model.Mark(strings.ToUpper(botMark))
	if mark != model.MarkO && mark != model.MarkX {
		return tui.Options{}, fmt.Errorf("--bot must be O or X, got %q", botMark)
	}

	s, err := bot.NewStrategy(strategy, random.New())
	if err != nil {
		return tui.Options{}, err
	}
	return tui.Options{Bot: bot.NewPlayer(mark, s)}, nil
}
