package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanbd/kanbd/internal/board"
	"github.com/kanbd/kanbd/internal/config"
	"github.com/kanbd/kanbd/internal/todo"
	"github.com/kanbd/kanbd/internal/ui"
)

var moveCmd = &cobra.Command{
	Use:   "move <id> <pending|done>",
	Short: "Move a todo to the other lane",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	id, to := args[0], todo.Status(args[1])

	b := board.New(config.Dir())
	if err := b.Move(id, to); err != nil {
		return err
	}

	fmt.Printf("%s moved %s to %s\n", ui.DoneStyle.Render(ui.IconDone), id, to)
	return nil
}
