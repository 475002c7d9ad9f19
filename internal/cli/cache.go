package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached render and layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := cache.Open(cmd.Context(), c.cacheSpecOrEnv())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printWarning("Cache backend %s cannot be cleared", describeBackend(c.cacheSpecOrEnv()))
				return nil
			}
			if err := clearer.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared cache")
			printDetail("Backend: %s", describeBackend(c.cacheSpecOrEnv()))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := c.cacheSpecOrEnv()
			if spec != "" {
				fmt.Println(describeBackend(spec))
				return nil
			}
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// describeBackend names a cache spec without leaking URL credentials.
func describeBackend(spec string) string {
	switch {
	case spec == "":
		dir, err := cache.DefaultDir()
		if err != nil {
			return "default directory"
		}
		return dir
	case spec == "none" || spec == "off":
		return "disabled"
	}
	scheme, rest, ok := strings.Cut(spec, "://")
	if !ok {
		return spec
	}
	if _, host, hasUser := strings.Cut(rest, "@"); hasUser {
		rest = host
	}
	return scheme + "://" + rest
}
