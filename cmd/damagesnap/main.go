// Command damagesnap is the terminal client of the DamageSnap wildfire
// recovery platform.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"damagesnap/internal/api"
	"damagesnap/internal/bootstrap"
	"damagesnap/internal/config"
	"damagesnap/internal/toast"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	apiURL  string
	timeout time.Duration

	// Runtime, set up by the root PersistentPreRunE.
	rt *bootstrap.Client

	// Overridable in tests.
	stdout        io.Writer      = os.Stdout
	notifier      toast.Notifier = toast.NewTerminal(os.Stderr)
	loadConfig                   = config.LoadConfig
	clientOptions                = bootstrap.ClientOptions{LogOutput: os.Stderr}
)

// offline marks commands that never talk to the API.
const offline = "offline"

var rootCmd = &cobra.Command{
	Use:   "damagesnap",
	Short: "DamageSnap - wildfire damage reporting and community recovery",
	Long: `DamageSnap connects people affected by wildfires with the volunteers,
donors and neighbours who help them recover.

Report damage with a photo and let the AI assess it, find recovery sites
that need volunteers, ask for help, join events and follow the community
feed, all from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := cmd.Annotations[offline]; ok {
			return nil
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.APIBaseURL = apiURL
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		rt, err = bootstrap.InitClient(cmd.Context(), cfg, clientOptions)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		return rt.Close()
	},
}

// reportedError is a failure the user has already seen as a toast.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// load unwraps a result, showing a toast when it failed.
func load[T any](res api.Result[T], title string) (T, error) {
	if !res.OK() {
		notifier.Notify(toast.Failure(title, res.Error))
		var zero T
		return zero, reported(res.Err())
	}
	return res.Value(), nil
}

// commandContext bounds one command by the --timeout flag.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "DamageSnap API base URL (or set API_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-command timeout (0 waits indefinitely)")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(feedCmd, recentCmd)
	rootCmd.AddCommand(postsCmd, helpCmd, eventsCmd, chatCmd, leaderboardCmd)
	rootCmd.AddCommand(damageCmd, recoveryCmd)
	rootCmd.AddCommand(aiCmd, queueCmd, debugCmd)
	rootCmd.AddCommand(safetyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var rep *reportedError
		if !errors.As(err, &rep) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
