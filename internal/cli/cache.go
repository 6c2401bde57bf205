package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand groups the layout cache maintenance subcommands. They manage
// the file backend only; redis entries expire through their TTL.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := layoutCacheDir(configPath)
			if err != nil {
				return err
			}
			if dir == "" {
				printInfo("Caching is disabled")
				return nil
			}

			entries, freed, err := clearLayoutDir(dir)
			if err != nil {
				return err
			}
			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Removed %d cached layouts (%s)", entries, formatSize(freed))
			printDetail("Directory: %s", dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/wayfind/config.toml)")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the layout cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := layoutCacheDir(configPath)
			if err != nil {
				return err
			}
			if dir == "" {
				printInfo("Caching is disabled")
				return nil
			}
			fmt.Println(dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/wayfind/config.toml)")
	return cmd
}

// layoutCacheDir resolves the file backend's directory from the config.
// Returns "" when caching is disabled, and an error for backends that keep
// no local files.
func layoutCacheDir(configPath string) (string, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return "", err
	}
	switch cfg.Cache.Backend {
	case "", "file":
		if cfg.Cache.Dir != "" {
			return cfg.Cache.Dir, nil
		}
		return cacheDir()
	case "none":
		return "", nil
	default:
		return "", fmt.Errorf("the %s cache backend keeps no local files; entries expire through their TTL", cfg.Cache.Backend)
	}
}

// clearLayoutDir deletes every cached layout under dir and prunes the
// emptied shard directories, returning the entry count and bytes freed.
func clearLayoutDir(dir string) (int, int64, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	entries := 0
	var freed int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if os.Remove(path) == nil {
			entries++
			freed += info.Size()
		}
		return nil
	})
	if err != nil {
		return entries, freed, err
	}

	// Shard directories are one level deep, so a single pass empties them.
	if shards, err := os.ReadDir(dir); err == nil {
		for _, s := range shards {
			if s.IsDir() {
				_ = os.Remove(filepath.Join(dir, s.Name()))
			}
		}
	}
	return entries, freed, nil
}

// formatSize renders a byte count with a binary unit suffix.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
