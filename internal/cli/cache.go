package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Cache subdirectories under the cache root.
const (
	cacheHTTP      = "http"
	cacheArtifacts = "artifacts"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the page and artifact caches",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var pagesOnly, artifactsOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached pages and rendered charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.Config.ResolveCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			subdirs := []string{cacheHTTP, cacheArtifacts}
			switch {
			case pagesOnly && !artifactsOnly:
				subdirs = []string{cacheHTTP}
			case artifactsOnly && !pagesOnly:
				subdirs = []string{cacheArtifacts}
			}

			total := 0
			for _, sub := range subdirs {
				n, err := clearDir(filepath.Join(dir, sub))
				if err != nil {
					return err
				}
				total += n
			}

			if total == 0 {
				printInfo("Cache is empty")
			} else {
				printSuccess("Cleared %d cached entries", total)
			}
			printDetail("Directory: %s", dir)
			if c.Config.RedisAddr != "" {
				printDetail("Artifacts in Redis (%s) expire on their own", c.Config.RedisAddr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pagesOnly, "pages", false, "clear only fetched pages")
	cmd.Flags().BoolVar(&artifactsOnly, "artifacts", false, "clear only rendered charts")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.Config.ResolveCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// clearDir removes every file below dir and then the emptied
// subdirectories. dir itself is kept. A missing dir counts as empty.
func clearDir(dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	count := 0
	var subdirs []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if path == dir {
			return nil
		}
		if info.IsDir() {
			subdirs = append(subdirs, path)
			return nil
		}
		if err := os.Remove(path); err == nil {
			count++
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	// deepest first
	for i := len(subdirs) - 1; i >= 0; i-- {
		os.Remove(subdirs[i])
	}
	return count, nil
}
