package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/jsongen/watch"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Regenerate type definitions whenever a JSON file changes",
	Long: `Watch a JSON file and rerun generation every time it changes. Takes
the same generation flags as the generate command. Changes are
debounced, so editors that save in bursts trigger a single run.

Examples:
  jsongen watch data.json -o types.go
  jsongen watch api.json -l go -l python -o generated/`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	registerGenerateFlags(WatchCmd.Flags())
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Run once up front so a broken input shows up immediately
	// instead of on the first save.
	if err := generateOnce(cmd, args); err != nil {
		pterm.Error.Printf("%v\n", err)
	}

	w, err := watch.New(args[0])
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnChange(func(path string) error {
		if err := generateOnce(cmd, args); err != nil {
			pterm.Error.Printf("%v\n", err)
			return nil
		}
		pterm.Success.Printf("Regenerated at %s\n", time.Now().Format("15:04:05"))
		return nil
	})
	w.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printf("Watching %s (Ctrl-C to stop)\n", args[0])
	<-ctx.Done()
	return nil
}
