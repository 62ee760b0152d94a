package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/tabhome/internal/config"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, archived bundles and usage",
		Long: `Display the current tabhome status including:
  - Configuration file and data locations
  - Archived bundle count and the current bundle
  - Recorded home screen events
  - Event broker statistics`,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	// Check if first run
	if config.IsFirstRun() {
		fmt.Fprintln(out, "Status: Not configured")
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Run 'tabhome' to create the default configuration.")
		return nil
	}

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := context.Background()

	// Print header
	fmt.Fprintln(out, "tabhome Status")
	fmt.Fprintln(out, strings.Repeat("─", 40))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Config File:  %s\n", config.GlobalConfigPath())
	fmt.Fprintf(out, "Database:     %s\n", svc.db.Path())
	if v, err := svc.db.SchemaVersion(); err == nil {
		fmt.Fprintf(out, "Schema:       v%d\n", v)
	}
	fmt.Fprintf(out, "Bundle Limit: %d\n", svc.cfg.BundleLimit())
	fmt.Fprintf(out, "Start Mode:   %s\n", modeName(svc.cfg.StartPrivate()))
	fmt.Fprintln(out)

	// Bundles
	count, err := svc.storage.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting bundles: %w", err)
	}
	fmt.Fprintln(out, "Bundles:")
	fmt.Fprintf(out, "  Stored: %d\n", count)
	current, err := svc.storage.Current(ctx)
	if err != nil {
		return fmt.Errorf("loading current bundle: %w", err)
	}
	if current != nil {
		fmt.Fprintf(out, "  Current: %s (%d tabs)\n", shortID(current.ID), len(current.Tabs))
	} else {
		fmt.Fprintln(out, "  Current: none")
	}
	fmt.Fprintln(out)

	// Analytics
	counts, err := svc.recorder.Counts(ctx)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	printCounts(out, counts)
	fmt.Fprintln(out)

	// Brokers
	fmt.Fprintln(out, "Brokers:")
	for _, m := range svc.hub.AllMetrics() {
		fmt.Fprintf(out, "  %s: published=%d dropped=%d subscribers=%d\n",
			m.Name, m.PublishCount, m.DropCount, m.SubscriberCount)
	}

	return nil
}

func printCounts(out io.Writer, counts map[string]int) {
	fmt.Fprintln(out, "Events:")
	if len(counts) == 0 {
		fmt.Fprintln(out, "  None recorded")
		return
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %d\n", name, counts[name])
	}
}

func modeName(private bool) string {
	if private {
		return "private"
	}
	return "normal"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
