package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"damagesnap/internal/aistatus"
	"damagesnap/internal/api"
	"damagesnap/internal/forms"
	"damagesnap/internal/ui"

	"github.com/spf13/cobra"
)

var (
	watchInterval time.Duration
	safetyWidth   int
	rawFormat     string
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Manage the AI analysis server",
}

var aiSetURLCmd = &cobra.Command{
	Use:   "set-url <url>",
	Short: "Point the API at an AI analysis server",
	Args:  cobra.ExactArgs(1),
	RunE:  runAISetURL,
}

var aiStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the AI analysis server is online",
	RunE:  runAIStatus,
}

var aiWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the AI analysis server status until interrupted",
	RunE:  runAIWatch,
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect the analysis queue",
}

var queuePendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Show the next pending analysis request",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRaw(cmd, "Error", (*api.Client).PendingAnalysis)
	},
}

var queueStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the analysis queue status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRaw(cmd, "Error", (*api.Client).QueueStatus)
	},
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Server diagnostics",
}

var debugEndpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the API endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRaw(cmd, "Error", (*api.Client).Endpoints)
	},
}

var debugInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show server debug information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRaw(cmd, "Error", (*api.Client).DebugInfo)
	},
}

var safetyCmd = &cobra.Command{
	Use:         "safety",
	Short:       "Show the volunteer safety guidelines",
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.Safety(stdout, safetyWidth)
		return nil
	},
}

func init() {
	aiWatchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Polling interval (default AI_STATUS_INTERVAL)")
	safetyCmd.Flags().IntVar(&safetyWidth, "width", 80, "Wrap width")
	for _, c := range []*cobra.Command{queueCmd, debugCmd} {
		c.PersistentFlags().StringVar(&rawFormat, "format", "json", "Output format: json or yaml")
	}

	aiCmd.AddCommand(aiSetURLCmd, aiStatusCmd, aiWatchCmd)
	queueCmd.AddCommand(queuePendingCmd, queueStatusCmd)
	debugCmd.AddCommand(debugEndpointsCmd, debugInfoCmd)
}

func runAISetURL(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	f := forms.AIServerForm{ServerURL: args[0]}
	return reported(f.Submit(ctx, rt.API, notifier))
}

func runAIStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	st := aistatus.Check(ctx, rt.API)
	fmt.Fprintln(stdout, ui.Field("AI Server Status", st.String()))
	return nil
}

// runAIWatch is bound by the signal context only, not by --timeout.
func runAIWatch(cmd *cobra.Command, args []string) error {
	interval := watchInterval
	if interval <= 0 {
		interval = rt.Config.AIStatusInterval
	}
	p := aistatus.Poller{Checker: rt.API, Interval: interval}
	err := p.Run(cmd.Context(), func(st aistatus.Status) {
		fmt.Fprintf(stdout, "%s %s\n", ui.Muted(st.CheckedAt.Format("15:04:05")), st)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runRaw(cmd *cobra.Command, title string, get func(*api.Client, context.Context) api.Result[json.RawMessage]) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	raw, err := load(get(rt.API, ctx), title)
	if err != nil {
		return err
	}
	switch rawFormat {
	case "yaml", "yml":
		return ui.YAML(stdout, raw)
	case "json", "":
		return ui.JSON(stdout, raw)
	default:
		return fmt.Errorf("unknown format %q", rawFormat)
	}
}
