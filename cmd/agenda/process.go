package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/agenda/internal/config"
	"github.com/example/agenda/internal/engine"
	"github.com/example/agenda/internal/export"
	"github.com/example/agenda/internal/i18n"
	"github.com/example/agenda/internal/logging"
)

func newProcessCmd() *cobra.Command {
	var snapshotDSN string

	cmd := &cobra.Command{
		Use:   "process <config-file> <requests-file>",
		Short: "Process one reservation batch and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], snapshotDSN)
		},
	}
	cmd.Flags().StringVar(&snapshotDSN, "snapshot", "", "SQLite DSN to write the run snapshot to (overrides AGENDA_SNAPSHOT_DSN)")

	return cmd
}

func runProcess(ctx context.Context, out io.Writer, configPath, requestsPath, snapshotDSN string) error {
	logger := logging.New(os.Stderr, slog.LevelWarn)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if snapshotDSN == "" {
		snapshotDSN = cfg.SnapshotDSN
	}

	configFile, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer configFile.Close()

	run, err := config.ParseRun(configFile, cfg.DefaultLocale)
	if err != nil {
		return err
	}

	input, err := i18n.Load(run.InputLocale)
	if err != nil {
		return err
	}
	output, err := i18n.Load(run.OutputLocale)
	if err != nil {
		return err
	}

	sentinel := cfg.ClosedSentinel
	if sentinel == "" {
		sentinel = input.ClosedSentinel()
	}

	requestsFile, err := os.Open(requestsPath)
	if err != nil {
		return fmt.Errorf("open requests file: %w", err)
	}
	defer requestsFile.Close()

	pipeline := engine.NewPipelineWithLogger(input, sentinel, nil, nil, logger)
	result, err := pipeline.ProcessBatch(ctx, requestsFile)
	if err != nil {
		return err
	}

	printResult(out, result, run, output)

	if snapshotDSN != "" {
		if err := writeSnapshot(ctx, snapshotDSN, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nsnapshot written to %s\n", snapshotDSN)
	}

	return nil
}

func printResult(out io.Writer, result engine.BatchResult, run config.Run, output *i18n.Translator) {
	fmt.Fprintf(out, "%s %d (run %s)\n", output.MonthName(run.Month), run.Year, result.RunID)
	fmt.Fprintf(out, "accepted: %d, rejected: %d, incidents: %d\n",
		len(result.Accepted), len(result.Rejected), len(result.Incidents))

	occupancy := engine.ProjectMonth(result.Cells, run.Year, run.Month)
	for _, room := range occupancy.Rooms() {
		fmt.Fprintf(out, "\n%s\n", room)
		for _, date := range occupancy.Dates(room) {
			for _, slot := range occupancy.Slots(room, date) {
				activity, _ := occupancy.Activity(room, date, slot)
				fmt.Fprintf(out, "  %s %s  %s\n", date, slot.Label(), activity)
			}
		}
	}

	if len(result.Incidents) > 0 {
		fmt.Fprintln(out, "\nincidents:")
		for _, incident := range result.Incidents {
			fmt.Fprintf(out, "  [%s] %s\n", incident.Category, incident.Message())
		}
	}
}

func writeSnapshot(ctx context.Context, dsn string, result engine.BatchResult) error {
	snapshot, err := export.Open(dsn)
	if err != nil {
		return err
	}
	defer snapshot.Close()

	if err := snapshot.Migrate(ctx); err != nil {
		return err
	}
	return snapshot.WriteBatch(ctx, result)
}
