package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goliq/internal/borehole"
)

var cacheFiles []string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parsed boring-log cache",
	Long: `Parsed boring logs are cached in a SQLite database keyed by the file
content and the parser version, so repeated runs skip XML parsing.
The database location is cache.path in the configuration.`,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the cache location and entry count",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(c *borehole.Cache) error {
			n, err := c.Count(context.Background())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Path:\t%s\n", cfg.Cache.Path)
			fmt.Fprintf(w, "  Enabled:\t%t\n", cfg.Cache.Enabled)
			fmt.Fprintf(w, "  Entries:\t%d\n", n)
			fmt.Fprintf(w, "  Parser:\tv%s\n", borehole.ParserVersion)
			return w.Flush()
		})
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every cached record",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(c *borehole.Cache) error {
			n, err := c.Purge(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d cached records.\n", n)
			return nil
		})
	},
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Drop the cached records of specific files",
	Long: `Drop cached records by file. The current content of the file is
hashed and removed, together with every record stored from that path.

Example:
  goliq cache invalidate --file 01_000701.XML`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(c *borehole.Cache) error {
			ctx := context.Background()
			for _, path := range cacheFiles {
				removed, err := c.InvalidatePath(ctx, path)
				if err != nil {
					return err
				}
				if data, err := os.ReadFile(path); err == nil {
					if err := c.Invalidate(ctx, borehole.Key(data)); err != nil {
						return err
					}
				}
				fmt.Printf("%s: removed %d records\n", path, removed)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	cacheCmd.AddCommand(cacheInvalidateCmd)

	cacheInvalidateCmd.Flags().StringSliceVarP(&cacheFiles, "file", "f", nil, "Boring-log XML file, repeatable [required]")
	cacheInvalidateCmd.MarkFlagRequired("file")
}

func withCache(fn func(*borehole.Cache) error) error {
	c, err := borehole.OpenCache(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("open cache %s: %w", cfg.Cache.Path, err)
	}
	defer c.Close()
	return fn(c)
}
