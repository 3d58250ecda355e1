package main

import (
	"damagesnap/internal/analysis"
	"damagesnap/internal/api"
	"damagesnap/internal/forms"
	"damagesnap/internal/media"
	"damagesnap/internal/models"
	"damagesnap/internal/toast"
	"damagesnap/internal/ui"

	"github.com/spf13/cobra"
)

var (
	analyzeLocation string
	analyzeReport   bool

	damageForm  forms.DamageReportForm
	damagePhoto string

	searchLat    float64
	searchLon    float64
	searchRadius float64

	recoveryForm  forms.RecoveryLocationForm
	recoveryPhoto string
	volunteerMsg  string
)

var damageCmd = &cobra.Command{
	Use:   "damage",
	Short: "Analyze, report and browse wildfire damage",
}

var damageAnalyzeCmd = &cobra.Command{
	Use:   "analyze <photo>",
	Short: "Ask the AI to assess the damage in a photo",
	Long: `Upload a photo for AI damage assessment.

An optional --location is geocoded first; when that fails the analysis
still runs without coordinates. With --report the result is filed as a
damage report, using --lat/--lon when the location could not be resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: runDamageAnalyze,
}

var damageReportCmd = &cobra.Command{
	Use:   "report",
	Short: "File a damage report",
	RunE:  runDamageReport,
}

var damageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List damage reports near a point",
	RunE:  runDamageList,
}

var recoveryCmd = &cobra.Command{
	Use:   "recovery",
	Short: "Recovery locations that need volunteers",
}

var recoveryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recovery locations near a point",
	RunE:  runRecoveryList,
}

var recoveryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a recovery location",
	RunE:  runRecoveryCreate,
}

var recoveryVolunteerCmd = &cobra.Command{
	Use:   "volunteer <location-id>",
	Short: "Volunteer at a recovery location",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecoveryVolunteer,
}

var recoveryVolunteersCmd = &cobra.Command{
	Use:   "volunteers <location-id>",
	Short: "List the volunteers of a recovery location",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecoveryVolunteers,
}

func init() {
	f := damageAnalyzeCmd.Flags()
	f.StringVar(&analyzeLocation, "location", "", "Where the photo was taken, e.g. 123 Main St, Anytown, CA")
	f.BoolVar(&analyzeReport, "report", false, "File a damage report from the analysis")
	f.StringVar(&damageForm.Latitude, "lat", "", "Latitude, when the location cannot be geocoded")
	f.StringVar(&damageForm.Longitude, "lon", "", "Longitude, when the location cannot be geocoded")

	f = damageReportCmd.Flags()
	f.StringVar(&damageForm.Latitude, "lat", "", "Latitude")
	f.StringVar(&damageForm.Longitude, "lon", "", "Longitude")
	f.StringVar(&damageForm.DamageScore, "score", "0", "Damage score from 0 to 10")
	f.StringVar(&damageForm.Description, "description", "", "Description")
	f.StringVar(&damageForm.CostEstimate, "cost", "0", "Estimated repair cost in dollars")
	f.StringVar(&damagePhoto, "photo", "", "Photo to attach")

	for _, c := range []*cobra.Command{damageListCmd, recoveryListCmd} {
		c.Flags().Float64Var(&searchLat, "lat", 0, "Latitude of the search center")
		c.Flags().Float64Var(&searchLon, "lon", 0, "Longitude of the search center")
	}
	damageListCmd.Flags().Float64Var(&searchRadius, "radius", api.DefaultDamageRadius, "Search radius")
	recoveryListCmd.Flags().Float64Var(&searchRadius, "radius", api.DefaultRecoveryRadius, "Search radius")

	f = recoveryCreateCmd.Flags()
	f.StringVar(&recoveryForm.Latitude, "lat", "", "Latitude")
	f.StringVar(&recoveryForm.Longitude, "lon", "", "Longitude")
	f.StringVar(&recoveryForm.Title, "title", "", "Title")
	f.StringVar(&recoveryForm.Description, "description", "", "Description")
	f.StringVar(&recoveryForm.VolunteersNeeded, "volunteers", "", "Number of volunteers needed")
	f.StringVar(&recoveryPhoto, "photo", "", "Photo to attach")

	recoveryVolunteerCmd.Flags().StringVar(&volunteerMsg, "message", "", "Message for the organizer")

	damageCmd.AddCommand(damageAnalyzeCmd, damageReportCmd, damageListCmd)
	recoveryCmd.AddCommand(recoveryListCmd, recoveryCreateCmd, recoveryVolunteerCmd, recoveryVolunteersCmd)
}

// loadPhoto reads an optional photo flag. A bad file is reported as a toast.
func loadPhoto(path string) (*models.Upload, error) {
	if path == "" {
		return nil, nil
	}
	u, _, err := media.LoadPhoto(path)
	if err != nil {
		notifier.Notify(toast.Failure("Input Error", err.Error()))
		return nil, reported(err)
	}
	return &u, nil
}

func runDamageAnalyze(cmd *cobra.Command, args []string) error {
	photo, err := loadPhoto(args[0])
	if err != nil {
		return err
	}

	var userID string
	if analyzeReport {
		if userID, err = currentUserID(cmd); err != nil {
			return err
		}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	flow := analysis.Flow{Geocoder: rt.API, Analyzer: rt.API, Notifier: notifier, Logger: rt.Logger}
	out, err := flow.Run(ctx, analysis.Request{Photo: photo, Location: analyzeLocation})
	if err != nil {
		return reported(err)
	}
	ui.Analysis(stdout, &out.Result, out.Latitude, out.Longitude, out.Description)

	if !analyzeReport {
		return nil
	}
	if out.Result.Details() == nil {
		notifier.Notify(toast.Failure("No Report Filed",
			"The analysis returned no damage details to build a report from."))
		return nil
	}
	report := out.ReportForm(userID)
	if report.Latitude == "" {
		report.Latitude = damageForm.Latitude
	}
	if report.Longitude == "" {
		report.Longitude = damageForm.Longitude
	}
	report.Photo = photo
	created, err := report.Submit(ctx, rt.API, notifier)
	if err != nil {
		return reported(err)
	}
	ui.DamageReports(stdout, []models.DamageReport{*created})
	return nil
}

func runDamageReport(cmd *cobra.Command, args []string) error {
	photo, err := loadPhoto(damagePhoto)
	if err != nil {
		return err
	}
	if damageForm.UserID, err = currentUserID(cmd); err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	damageForm.Photo = photo
	created, err := damageForm.Submit(ctx, rt.API, notifier)
	if err != nil {
		return reported(err)
	}
	ui.DamageReports(stdout, []models.DamageReport{*created})
	return nil
}

func runDamageList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	reports, err := load(rt.API.ListDamageReports(ctx, searchLat, searchLon, searchRadius), "Error")
	if err != nil {
		return err
	}
	ui.DamageReports(stdout, reports)
	return nil
}

func runRecoveryList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	locs, err := load(rt.API.ListRecoveryLocations(ctx, searchLat, searchLon, searchRadius), "Error")
	if err != nil {
		return err
	}
	ui.RecoveryLocations(stdout, locs)
	return nil
}

func runRecoveryCreate(cmd *cobra.Command, args []string) error {
	photo, err := loadPhoto(recoveryPhoto)
	if err != nil {
		return err
	}
	if recoveryForm.UserID, err = currentUserID(cmd); err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	recoveryForm.Photo = photo
	loc, err := recoveryForm.Submit(ctx, rt.API, notifier)
	if err != nil {
		return reported(err)
	}
	ui.RecoveryLocations(stdout, []models.RecoveryLocation{*loc})
	return nil
}

func runRecoveryVolunteer(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	userID, err := currentUserID(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	f := forms.VolunteerForm{UserID: userID, LocationID: id, Message: volunteerMsg}
	_, err = f.Submit(ctx, rt.API, notifier)
	return reported(err)
}

func runRecoveryVolunteers(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	vols, err := load(rt.API.ListVolunteers(ctx, id), "Error")
	if err != nil {
		return err
	}
	ui.Volunteers(stdout, id, vols)
	return nil
}
