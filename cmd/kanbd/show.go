package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanbd/kanbd/internal/board"
	"github.com/kanbd/kanbd/internal/config"
	"github.com/kanbd/kanbd/internal/todo"
	"github.com/kanbd/kanbd/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo's metadata and rendered body",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	b := board.New(config.Dir())
	item, err := b.Find(args[0])
	if err != nil {
		return err
	}

	fmt.Println(ui.AccentStyle.Bold(true).Render(item.Title))
	fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("%s · %s · %s", item.ID, item.Status, item.Area)))
	if item.Created != "" {
		fmt.Println(ui.MutedStyle.Render("created " + item.Created))
	}
	if len(item.Files) > 0 {
		fmt.Println(ui.MutedStyle.Render("files: " + strings.Join(item.Files, ", ")))
	}
	fmt.Println()

	content, err := os.ReadFile(item.Path) // #nosec G304 - path resolved by the board
	if err != nil {
		return fmt.Errorf("read todo: %w", err)
	}

	if body := strings.TrimSpace(todo.Body(content)); body != "" {
		fmt.Print(ui.RenderMarkdown(body))
	}

	return nil
}
