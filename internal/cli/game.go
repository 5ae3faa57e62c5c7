package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameJumpCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post(cmd.Context(), "/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game's board, status and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(cmd.Context(), gamePath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg)
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <index>",
		Short: "Play the current player's mark on a cell (0-8, row by row)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index: %w", err)
			}

			req := map[string]int{"index": index}
			var result MoveResult

			if err := client.Post(cmd.Context(), gamePath(args[0])+"/moves", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg)
			out.Print(result)
			return nil
		},
	}
}

func newGameJumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jump <id> <move>",
		Short: "Go back (or forward) to the board after a given move",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid move number: %w", err)
			}

			req := map[string]int{"index": index}
			var result Game

			if err := client.Post(cmd.Context(), gamePath(args[0])+"/jump", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg)
			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), gamePath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}

func gamePath(id string) string {
	return "/api/v1/games/" + url.PathEscape(id)
}
