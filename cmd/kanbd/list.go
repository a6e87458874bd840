package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanbd/kanbd/internal/board"
	"github.com/kanbd/kanbd/internal/config"
	"github.com/kanbd/kanbd/internal/todo"
	"github.com/kanbd/kanbd/internal/ui"
)

var (
	listStatus string
	listArea   string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos in both lanes",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only show one lane (pending|done)")
	listCmd.Flags().StringVar(&listArea, "area", "", "Only show todos in the given area")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listStatus != "" && !todo.Status(listStatus).Valid() {
		return fmt.Errorf("invalid --status %q (want pending or done)", listStatus)
	}

	b := board.New(config.Dir())
	snapshot, err := b.List()
	if err != nil {
		return err
	}

	lanes := []struct {
		status todo.Status
		items  []todo.Item
	}{
		{todo.StatusPending, filterArea(snapshot.Pending)},
		{todo.StatusDone, filterArea(snapshot.Done)},
	}

	if listJSON {
		out := map[string][]todo.Item{}
		for _, lane := range lanes {
			if listStatus == "" || listStatus == string(lane.status) {
				out[string(lane.status)] = lane.items
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, lane := range lanes {
		if listStatus != "" && listStatus != string(lane.status) {
			continue
		}
		printLane(lane.status, lane.items)
	}

	return nil
}

func filterArea(items []todo.Item) []todo.Item {
	if listArea == "" {
		return items
	}
	out := make([]todo.Item, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Area, listArea) {
			out = append(out, item)
		}
	}
	return out
}

func printLane(status todo.Status, items []todo.Item) {
	header := fmt.Sprintf("%s (%d)", strings.ToUpper(string(status)), len(items))
	fmt.Println(ui.LaneStyle.Render(header))

	icon := ui.PendingStyle.Render(ui.IconPending)
	if status == todo.StatusDone {
		icon = ui.DoneStyle.Render(ui.IconDone)
	}

	for _, item := range items {
		meta := item.ID + " · " + item.Area
		if item.Created != "" {
			meta += " · " + item.Created
		}
		fmt.Printf("  %s %s  %s\n", icon, item.Title, ui.MutedStyle.Render(meta))
	}
	fmt.Println()
}
