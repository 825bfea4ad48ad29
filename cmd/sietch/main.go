package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/sietch/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	baseURL    string
	logLevel   string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "sietch",
	Short: "Terminal client for the harvester swarm",
	Long: `sietch breeds, lists, renames and recycles harvesters on a remote
swarm service. Without a subcommand it opens the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to configuration file")
	pf.StringVar(&baseURL, "base-url", "", "Swarm service base URL (overrides config)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Skip startup banner")

	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(versionCmd, configCmd, listCmd, breedCmd, renameCmd, recycleCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if !quiet {
		tui.ShowBanner(os.Stdout, Version)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app := tui.NewApp(ctx, rt.exec, rt.cfg, rt.palettes)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
