package main

import (
	"strings"

	"damagesnap/internal/api"
	"damagesnap/internal/forms"
	"damagesnap/internal/leaderboard"
	"damagesnap/internal/models"
	"damagesnap/internal/ui"

	"github.com/spf13/cobra"
)

var (
	helpForm     forms.HelpRequestForm
	donationForm forms.DonationForm
	eventForm    forms.VolunteerEventForm
	chatLimit    int
)

var helpCmd = &cobra.Command{
	Use:     "help-requests",
	Aliases: []string{"requests"},
	Short:   "Browse, create and fund help requests",
}

var helpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List help requests",
	RunE:  runHelpList,
}

var helpCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Ask the community for help",
	RunE:  runHelpCreate,
}

var helpDonateCmd = &cobra.Command{
	Use:   "donate <help-request-id>",
	Short: "Donate to a help request",
	Args:  cobra.ExactArgs(1),
	RunE:  runHelpDonate,
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse, create and join volunteer events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List volunteer events",
	RunE:  runEventsList,
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Schedule a volunteer event",
	RunE:  runEventsCreate,
}

var eventsJoinCmd = &cobra.Command{
	Use:   "join <event-id>",
	Short: "Join a volunteer event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsJoin,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Community chat",
}

var chatSendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a chat message",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChatSend,
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent chat messages",
	RunE:  runChatList,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the community leaderboard",
	RunE:  runLeaderboard,
}

func init() {
	f := helpCreateCmd.Flags()
	f.StringVar(&helpForm.Title, "title", "", "Title")
	f.StringVar(&helpForm.Location, "location", "", "Location")
	f.StringVar(&helpForm.Description, "description", "", "What is needed")
	f.StringVar(&helpForm.FundingGoal, "goal", "", "Funding goal in dollars")
	f.StringVar(&helpForm.Category, "category", "", "Category, e.g. housing")
	f.StringVar(&helpForm.Urgency, "urgency", "", "Urgency: low, medium, high or critical")

	f = helpDonateCmd.Flags()
	f.StringVar(&donationForm.Amount, "amount", "", "Amount in dollars")
	f.StringVar(&donationForm.DonorName, "name", "", "Donor name")
	f.StringVar(&donationForm.Email, "email", "", "Donor email")

	f = eventsCreateCmd.Flags()
	f.StringVar(&eventForm.Title, "title", "", "Title")
	f.StringVar(&eventForm.Location, "location", "", "Location")
	f.StringVar(&eventForm.Description, "description", "", "Description")
	f.StringVar(&eventForm.Date, "date", "", "Date (YYYY-MM-DD)")
	f.StringVar(&eventForm.StartTime, "start", "", "Start time (HH:MM)")
	f.StringVar(&eventForm.EndTime, "end", "", "End time (HH:MM)")
	f.StringVar(&eventForm.MaxVolunteers, "max-volunteers", "", "Maximum number of volunteers")
	f.StringVar(&eventForm.Category, "category", "", "Category, e.g. cleanup")
	f.StringVar(&eventForm.Difficulty, "difficulty", "", "Difficulty: easy, moderate or hard")

	chatListCmd.Flags().IntVar(&chatLimit, "limit", api.DefaultChatLimit, "Number of messages")

	helpCmd.AddCommand(helpListCmd, helpCreateCmd, helpDonateCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsCreateCmd, eventsJoinCmd)
	chatCmd.AddCommand(chatSendCmd, chatListCmd)
}

func runHelpList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	reqs, err := load(rt.API.ListHelpRequests(ctx), "Error")
	if err != nil {
		return err
	}
	ui.HelpRequests(stdout, reqs)
	return nil
}

func runHelpCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	h, err := helpForm.Submit(ctx, rt.API, notifier)
	if err != nil {
		return reported(err)
	}
	ui.HelpRequests(stdout, []models.HelpRequest{*h})
	return nil
}

func runHelpDonate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	donationForm.HelpRequestID = id
	_, err = donationForm.Submit(ctx, rt.API, notifier)
	return reported(err)
}

func runEventsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	events, err := load(rt.API.ListEvents(ctx), "Error")
	if err != nil {
		return err
	}
	ui.Events(stdout, events)
	return nil
}

func runEventsCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	e, err := eventForm.Submit(ctx, rt.API, notifier)
	if err != nil {
		return reported(err)
	}
	ui.Events(stdout, []models.VolunteerEvent{*e})
	return nil
}

func runEventsJoin(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	return reported(forms.JoinEvent(ctx, rt.API, id, notifier))
}

func runChatSend(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	msg, err := load(rt.API.SendMessage(ctx, models.ChatMessage{Content: strings.Join(args, " ")}), "Message Failed")
	if err != nil {
		return err
	}
	ui.Chat(stdout, []models.ChatEntry{msg})
	return nil
}

func runChatList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	msgs, err := load(rt.API.ListMessages(ctx, chatLimit), "Error")
	if err != nil {
		return err
	}
	ui.Chat(stdout, msgs)
	return nil
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	board, err := load(rt.API.Leaderboard(ctx), "Error")
	if err != nil {
		return err
	}
	ui.Title(stdout, "Community Leaderboard", "Top contributors to the recovery effort")
	return leaderboard.Render(stdout, board)
}
