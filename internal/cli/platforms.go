package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GintasS/social-media-post-generator/internal/features/platforms/domain"
)

func newPlatformsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "Inspect and extend the platform registry",
	}
	cmd.AddCommand(newPlatformsListCmd(a))
	cmd.AddCommand(newPlatformsShowCmd(a))
	cmd.AddCommand(newPlatformsAddCmd(a))
	return cmd
}

func newPlatformsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered platforms in registry order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, closeStore, err := a.localRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			catalog, err := registry.ListPlatforms(cmd.Context())
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), catalog)
			return nil
		},
	}
}

func printCatalog(w io.Writer, catalog domain.Catalog) {
	if len(catalog.Platforms) == 0 {
		dimColor.Fprintln(w, "no platforms registered")
		return
	}
	for _, p := range catalog.Platforms {
		fmt.Fprintf(w, "%-12s %-12s max %d chars, %d hashtags\n", p.Key, p.DisplayName, p.MaxLength, p.HashtagLimit)
	}
}

func newPlatformsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show every stored rule of one platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, closeStore, err := a.localRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			catalog, err := registry.ListPlatforms(cmd.Context())
			if err != nil {
				return err
			}
			p, ok := catalog.Lookup(strings.ToLower(args[0]))
			if !ok {
				return fmt.Errorf("platform %q is not registered", args[0])
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n", p.Key, p.DisplayName)
			for _, rule := range p.Rules {
				dimColor.Fprintf(w, "  %s: %s\n", rule.Name, rule.Value)
			}
			return nil
		},
	}
}

func newPlatformsAddCmd(a *app) *cobra.Command {
	var (
		maxLength    int
		hashtagLimit int
		displayName  string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a new platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxLength <= 0 {
				return fmt.Errorf("--max-length must be greater than 0")
			}
			if hashtagLimit < 0 {
				return fmt.Errorf("--hashtag-limit must not be negative")
			}
			name := args[0]
			if displayName == "" {
				displayName = name
			}

			registry, closeStore, err := a.localRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			platform, err := registry.RegisterPlatform(cmd.Context(), name, maxLength, hashtagLimit, displayName)
			if err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✓ Platform '%s' added as %s\n", name, platform.Name)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxLength, "max-length", 0, "maximum post length")
	cmd.Flags().IntVar(&hashtagLimit, "hashtag-limit", 0, "maximum number of hashtags")
	cmd.Flags().StringVar(&displayName, "display-name", "", "human-readable name (defaults to NAME)")
	_ = cmd.MarkFlagRequired("max-length")
	return cmd
}
