package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/storage"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <board.json>",
		Short: "Replace the board with an exported JSON file",
		Long: `Replace the current board with one written by "poolboard export json".

Sessions that reference a missing pool or course are dropped.

Example:
  poolboard import ~/backups/board.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			st, dropped, err := readBoard(sourcePath)
			if err != nil {
				return err
			}

			b.store.Load(st)
			if err := b.save(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d pools, %d courses and %d sessions from %s\n",
				len(st.Pools), len(st.Courses), len(st.Sessions), sourcePath)
			if dropped > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatMuted(fmt.Sprintf("Dropped %d sessions with a missing pool or course", dropped)))
			}
			return nil
		},
	}

	return cmd
}

// readBoard loads a board document from path.
func readBoard(path string) (schedule.State, int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return schedule.State{}, 0, fmt.Errorf("board file does not exist: %s", path)
		}
		return schedule.State{}, 0, fmt.Errorf("checking board file: %w", err)
	}
	if info.IsDir() {
		return schedule.State{}, 0, fmt.Errorf("board file path is a directory: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return schedule.State{}, 0, fmt.Errorf("reading board file: %w", err)
	}
	return storage.Decode(raw)
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
