package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kanbd/kanbd/internal/config"
	"github.com/kanbd/kanbd/internal/ui"
)

var (
	boardDir string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "kanbd",
	Short: "kanbd - kanban board over a todo-file directory",
	Long: `A local kanban board backed by flat files. Todos live as markdown files
in two sibling directories, pending/ and done/; moving a card is a file
rename and nothing else. Files are written by external tools; kanbd only
lists and moves them.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("kanbd version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help() // Help() always returns nil for cobra commands
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.DisableColor()
		}
	},
}

func init() {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&boardDir, "dir", config.DefaultDir, "Board directory containing pending/ and done/")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled output")
	_ = config.BindFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))

	rootCmd.Flags().BoolP("version", "V", false, "Print version information")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
