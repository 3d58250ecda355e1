package main

import (
	"damagesnap/internal/feed"
	"damagesnap/internal/toast"
	"damagesnap/internal/ui"

	"github.com/spf13/cobra"
)

var (
	feedQuery   = feed.DefaultQuery()
	recentLimit int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show posts, damage reports, help requests and events, newest first",
	Long: `Show the combined community feed.

The four collections are fetched concurrently. A collection that fails to
load is reported and the others are still shown.`,
	RunE: runFeed,
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show what you might have missed",
	RunE:  runRecent,
}

func init() {
	for _, c := range []*cobra.Command{feedCmd, recentCmd} {
		c.Flags().IntVar(&feedQuery.PostsLimit, "limit", feedQuery.PostsLimit, "Number of posts to fetch")
		c.Flags().IntVar(&feedQuery.PostsOffset, "offset", feedQuery.PostsOffset, "Posts to skip")
		c.Flags().Float64Var(&feedQuery.Latitude, "lat", feedQuery.Latitude, "Latitude of the damage report search")
		c.Flags().Float64Var(&feedQuery.Longitude, "lon", feedQuery.Longitude, "Longitude of the damage report search")
		c.Flags().Float64Var(&feedQuery.Radius, "radius", feedQuery.Radius, "Damage report search radius")
	}
	recentCmd.Flags().IntVarP(&recentLimit, "count", "n", feed.DefaultRecentLimit, "Number of activities to show")
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	res := feed.Fetch(ctx, rt.API, feedQuery)
	if res.AllFailed() {
		notifier.Notify(toast.Failure("Error", "Failed to load the community feed."))
	}
	ui.Feed(stdout, res)
	return nil
}

func runRecent(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	res := feed.Fetch(ctx, rt.API, feedQuery)
	if res.AllFailed() {
		notifier.Notify(toast.Failure("Error", "Failed to load recent activities."))
	}
	ui.Recent(stdout, feed.Recent(res.Items, recentLimit))
	return nil
}
