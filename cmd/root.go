// Package cmd provides the CLI commands for tabhome.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/guilhermegouw/tabhome/internal/config"
	"github.com/guilhermegouw/tabhome/internal/debug"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabhome",
		Short: "A home screen for your browser tabs",
		Long: `tabhome keeps your open tabs, normal and private, on one home screen.

Archive the normal tabs into a bundle to start fresh, and bring any
archived bundle back later from the home screen or the library.`,
		SilenceUsage: true,
		RunE:         runTUI,
	}

	cmd.Flags().Bool("debug", false, "Enable debug logging to the data directory")
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newBundlesCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if err := config.EnsureGlobalConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to create config file: %v\n", err)
	}

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	// Enable debug logging if requested.
	debugMode, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("getting debug flag: %w", err)
	}
	if debugMode || svc.cfg.Options.Debug {
		logPath := svc.cfg.DebugLogPath()
		if debugErr := debug.Enable(logPath); debugErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to enable debug logging: %v\n", debugErr)
		} else {
			defer debug.Disable()
			fmt.Fprintf(os.Stderr, "Debug: %s\n", logPath)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := svc.reopenCurrent(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to reopen last session: %v\n", err)
	}

	navigator := tui.NewNavigator()
	controller := home.NewController(home.ControllerConfig{
		RouterConfig: home.RouterConfig{
			Manager:   svc.manager,
			Storage:   svc.storage,
			Navigator: navigator,
			Tracker:   svc.recorder,
			Mode:      home.NewBrowsingMode(svc.cfg.StartPrivate()),
		},
		BundleLimit: svc.cfg.BundleLimit(),
	})

	deps := tui.Deps{
		Config:     svc.cfg,
		ConfigPath: config.GlobalConfigPath(),
		Hub:        svc.hub,
		Manager:    svc.manager,
		Storage:    svc.storage,
		Controller: controller,
		Navigator:  navigator,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.storage.Watch(gctx, svc.manager)
	})
	g.Go(func() error {
		// The autosave watcher stops with the TUI.
		defer cancel()
		return tui.Run(gctx, deps)
	})
	return g.Wait()
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
