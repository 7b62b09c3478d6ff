package cmd

import (
	"github.com/spf13/cobra"

	"mediapress/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showHistory()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run's per-item results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		record, err := store.GetRun(args[0])
		if err != nil {
			return err
		}
		ui.RenderRunDetail(record)
		return nil
	},
}

func showHistory() error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListRuns()
	if err != nil {
		return err
	}
	ui.RenderHistory(records)
	return nil
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
}
