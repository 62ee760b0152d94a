package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/tabhome/internal/bundle"
)

// newBundlesCmd creates the bundles command group.
func newBundlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundles",
		Short: "Manage archived tab bundles",
		Long: `Manage the bundles tabhome archives your tabs into.

Examples:
  tabhome bundles list            List archived bundles, newest first
  tabhome bundles search golang   Find bundles by tab title or URL
  tabhome bundles delete <id>     Delete a bundle by id or id prefix`,
	}

	cmd.AddCommand(newBundlesListCmd())
	cmd.AddCommand(newBundlesSearchCmd())
	cmd.AddCommand(newBundlesDeleteCmd())

	return cmd
}

func newBundlesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withStorage(func(ctx context.Context, s *bundle.Storage, defaultLimit int) error {
				if limit <= 0 {
					limit = defaultLimit
				}
				bundles, err := s.Bundles(ctx, limit)
				if err != nil {
					return fmt.Errorf("listing bundles: %w", err)
				}
				printBundles(cmd.OutOrStdout(), bundles)
				return nil
			})
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum number of bundles to list (default: home.bundle_limit)")

	return cmd
}

func newBundlesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search archived bundles by tab title or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(func(ctx context.Context, s *bundle.Storage, limit int) error {
				bundles, err := s.Search(ctx, args[0], limit)
				if err != nil {
					return fmt.Errorf("searching bundles: %w", err)
				}
				printBundles(cmd.OutOrStdout(), bundles)
				return nil
			})
		},
	}
}

func newBundlesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(func(ctx context.Context, s *bundle.Storage, _ int) error {
				b, err := findBundle(ctx, s, args[0])
				if err != nil {
					return err
				}
				if err := s.Remove(ctx, b); err != nil {
					return fmt.Errorf("deleting bundle: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted bundle %s (%d tabs)\n", shortID(b.ID), len(b.Tabs))
				return nil
			})
		},
	}
}

func withStorage(fn func(ctx context.Context, s *bundle.Storage, limit int) error) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	return fn(context.Background(), svc.storage, svc.cfg.BundleLimit())
}

// findBundle resolves a full id or a unique id prefix.
func findBundle(ctx context.Context, s *bundle.Storage, id string) (*bundle.Bundle, error) {
	b, err := s.Get(ctx, id)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, bundle.ErrNotFound) {
		return nil, fmt.Errorf("loading bundle: %w", err)
	}

	count, err := s.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting bundles: %w", err)
	}
	all, err := s.Bundles(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("listing bundles: %w", err)
	}

	var match *bundle.Bundle
	for _, candidate := range all {
		if !strings.HasPrefix(candidate.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("bundle id %q is ambiguous", id)
		}
		match = candidate
	}
	if match == nil {
		return nil, fmt.Errorf("bundle %q: %w", id, bundle.ErrNotFound)
	}
	return match, nil
}

func printBundles(out io.Writer, bundles []*bundle.Bundle) {
	if len(bundles) == 0 {
		fmt.Fprintln(out, "No bundles found.")
		return
	}

	for _, b := range bundles {
		marker := " "
		if b.Current {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s  %s  %d tabs\n",
			marker, shortID(b.ID), b.LastSavedAt.Format("2006-01-02 15:04"), len(b.Tabs))
		for _, t := range b.Tabs {
			title := t.Title
			if title == "" {
				title = t.URL
			}
			fmt.Fprintf(out, "    %s\n", title)
		}
	}
}
