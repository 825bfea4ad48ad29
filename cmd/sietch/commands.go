package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/sietch/internal/config"
	"github.com/pders01/sietch/internal/session"
	"github.com/pders01/sietch/internal/state"
	"github.com/pders01/sietch/internal/storage"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("sietch %s\n", Version)
		fmt.Println("Harvester swarm client")
		fmt.Println("github.com/pders01/sietch")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration to ~/.config/sietch/config.toml",
	Run: func(_ *cobra.Command, _ []string) {
		home, _ := os.UserHomeDir()
		configFile := filepath.Join(home, ".config", "sietch", "config.toml")

		if err := config.GenerateDefaultConfig(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default configuration at: %s\n", configFile)
	},
}

var (
	listPage   int
	listSearch string
	listChart  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show one page of the swarm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		if listPage < 1 {
			return fmt.Errorf("page %d out of range", listPage)
		}

		sess := rt.session(nil)
		if err := sess.Mount(cmd.Context()); err != nil {
			return err
		}
		if listPage > 1 {
			if err := sess.LoadPage(cmd.Context(), listPage); err != nil {
				return err
			}
			if sess.State().PageNumber != listPage {
				return fmt.Errorf("page %d out of range (1-%d)", listPage, sess.State().TotalPages)
			}
		}
		sess.Search(listSearch)

		out := newPrinter(cmd.OutOrStdout(), rt)
		out.page(sess.State())
		if listChart {
			out.chart(sess.Chart())
		}
		return nil
	},
}

var breedCmd = &cobra.Command{
	Use:   "breed NAME",
	Short: "Breed a new harvester",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		sess := rt.session(nil)
		err = sess.Create(cmd.Context(), strings.Join(args, " "))
		return rt.report(cmd, sess, err)
	},
}

var renameTo string

var renameCmd = &cobra.Command{
	Use:   "rename ID CURRENT",
	Short: "Give a harvester a new name",
	Long: `Rename the harvester ID, currently named CURRENT. Without --to the new
name is read from the terminal, seeded with CURRENT.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		var prompt session.Prompter = session.NewTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		if cmd.Flags().Changed("to") {
			prompt = session.StaticPrompter{Answer: renameTo, Accept: true}
		}

		sess := rt.session(prompt)
		err = sess.Rename(cmd.Context(), args[0], args[1])
		return rt.report(cmd, sess, err)
	},
}

var recycleYes bool

var recycleCmd = &cobra.Command{
	Use:   "recycle ID",
	Short: "Recycle a harvester",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		var prompt session.Prompter = session.NewTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		if recycleYes {
			prompt = session.StaticPrompter{Accept: true}
		}

		sess := rt.session(prompt)
		err = sess.Delete(cmd.Context(), args[0])
		return rt.report(cmd, sess, err)
	},
}

var (
	historyLimit int
	historyID    string
)

var historyCmd = &cobra.Command{
	Use:   "history [QUERY]",
	Short: "Show or search the local mutation journal",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.store == nil {
			return fmt.Errorf("journal is disabled or unavailable")
		}

		out := newPrinter(cmd.OutOrStdout(), rt)
		if historyID != "" {
			entry, err := rt.store.Get(historyID)
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no journal entry %s", historyID)
			}
			if err != nil {
				return fmt.Errorf("reading journal: %w", err)
			}
			out.entry(entry)
			return nil
		}

		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			entries, err := rt.store.List(historyLimit)
			if err != nil {
				return fmt.Errorf("reading journal: %w", err)
			}
			out.entries(entries)
		} else {
			results, err := rt.searcher.Search(query, historyLimit)
			if err != nil {
				return fmt.Errorf("searching journal: %w", err)
			}
			out.results(query, results)
		}
		out.journalStats(rt.journalStats())
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page to show")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show names containing this text")
	listCmd.Flags().BoolVarP(&listChart, "chart", "c", false, "Also draw the top names chart")

	renameCmd.Flags().StringVar(&renameTo, "to", "", "New name (skips the prompt)")
	recycleCmd.Flags().BoolVarP(&recycleYes, "yes", "y", false, "Do not ask for confirmation")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show")
	historyCmd.Flags().StringVar(&historyID, "id", "", "Show one journal entry in full")
}

func (rt *runtime) session(prompt session.Prompter) *session.Session {
	return session.New(rt.exec, prompt, state.New(rt.cfg.API.PageSize, rt.cfg.IsDarkTheme()))
}

// report prints the outcome of a mutation and the page fetched after it.
func (rt *runtime) report(cmd *cobra.Command, sess *session.Session, err error) error {
	st := sess.State()
	out := newPrinter(cmd.OutOrStdout(), rt)
	if err != nil {
		if st.Status == "" {
			return err
		}
		return errors.New(st.Status)
	}
	if st.Status == "" {
		out.println("Nothing changed.")
		return nil
	}
	out.status(st.Status)
	if len(st.Items) > 0 || st.TotalCount > 0 {
		out.page(st)
	}
	return nil
}
