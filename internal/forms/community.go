package forms

import (
	"context"
	"strings"

	"damagesnap/internal/api"
	"damagesnap/internal/models"
	"damagesnap/internal/toast"
)

// CommunityClient is the part of the API client the help and event forms use.
type CommunityClient interface {
	CreateHelpRequest(ctx context.Context, in models.HelpRequestCreate) api.Result[models.HelpRequest]
	MakeDonation(ctx context.Context, helpRequestID int64, in models.DonationCreate) api.Result[models.Donation]
	CreateEvent(ctx context.Context, in models.VolunteerEventCreate) api.Result[models.VolunteerEvent]
	JoinEvent(ctx context.Context, eventID int64) api.Result[models.StatusMessage]
}

const requiredFieldsMessage = "Please fill in all required fields."

// HelpRequestForm asks the community for help.
type HelpRequestForm struct {
	Title       string
	Location    string
	Description string
	FundingGoal string
	Category    string
	Urgency     string
}

func (f *HelpRequestForm) Validate() (models.HelpRequestCreate, error) {
	if anyBlank(f.Title, f.Location, f.Description, f.FundingGoal, f.Category, f.Urgency) {
		return models.HelpRequestCreate{}, invalid("Input Error", requiredFieldsMessage)
	}
	goal, ok := parseOptionalInt(f.FundingGoal, 0)
	if !ok || goal < 0 {
		return models.HelpRequestCreate{}, invalid("Input Error", "Funding goal must be a whole number.")
	}
	return models.HelpRequestCreate{
		Title:       f.Title,
		Location:    f.Location,
		Description: f.Description,
		FundingGoal: goal,
		Category:    f.Category,
		Urgency:     f.Urgency,
	}, nil
}

func (f *HelpRequestForm) Submit(ctx context.Context, c CommunityClient, n toast.Notifier) (*models.HelpRequest, error) {
	in, err := f.Validate()
	if err != nil {
		return nil, reject(n, err)
	}
	res := c.CreateHelpRequest(ctx, in)
	if !res.OK() {
		notify(n, toast.Failure("Help Request Failed", res.Error))
		return nil, res.Err()
	}
	notify(n, toast.Success("Help Request Created", "Your help request has been submitted."))
	f.Reset()
	return res.Data, nil
}

func (f *HelpRequestForm) Reset() {
	*f = HelpRequestForm{}
}

// DonationForm donates to a help request.
type DonationForm struct {
	HelpRequestID int64
	Amount        string
	DonorName     string
	Email         string
}

func (f *DonationForm) Submit(ctx context.Context, c CommunityClient, n toast.Notifier) (*models.Donation, error) {
	if anyBlank(f.Amount, f.DonorName, f.Email) {
		return nil, reject(n, invalid("Input Error", requiredFieldsMessage))
	}
	amount, ok := parseOptionalFloat(f.Amount, 0)
	if !ok || amount <= 0 {
		return nil, reject(n, invalid("Input Error", "Donation amount must be a positive number."))
	}
	res := c.MakeDonation(ctx, f.HelpRequestID, models.DonationCreate{Amount: amount, DonorName: f.DonorName, Email: f.Email})
	if !res.OK() {
		notify(n, toast.Failure("Donation Failed", res.Error))
		return nil, res.Err()
	}
	notify(n, toast.Success("Donation Received", "Thank you for supporting the recovery effort!"))
	*f = DonationForm{HelpRequestID: f.HelpRequestID}
	return res.Data, nil
}

// VolunteerEventForm schedules a volunteer event.
type VolunteerEventForm struct {
	Title         string
	Location      string
	Description   string
	Date          string
	StartTime     string
	EndTime       string
	MaxVolunteers string
	Category      string
	Difficulty    string
}

func (f *VolunteerEventForm) Validate() (models.VolunteerEventCreate, error) {
	if anyBlank(f.Title, f.Location, f.Description, f.Date, f.StartTime, f.EndTime, f.MaxVolunteers, f.Category, f.Difficulty) {
		return models.VolunteerEventCreate{}, invalid("Input Error", requiredFieldsMessage)
	}
	max, ok := parseOptionalInt(f.MaxVolunteers, 0)
	if !ok || max <= 0 {
		return models.VolunteerEventCreate{}, invalid("Input Error", "Max volunteers must be a positive whole number.")
	}
	return models.VolunteerEventCreate{
		Title:         f.Title,
		Location:      f.Location,
		Description:   f.Description,
		Date:          f.Date,
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
		MaxVolunteers: max,
		Category:      f.Category,
		Difficulty:    f.Difficulty,
	}, nil
}

func (f *VolunteerEventForm) Submit(ctx context.Context, c CommunityClient, n toast.Notifier) (*models.VolunteerEvent, error) {
	in, err := f.Validate()
	if err != nil {
		return nil, reject(n, err)
	}
	res := c.CreateEvent(ctx, in)
	if !res.OK() {
		notify(n, toast.Failure("Event Creation Failed", res.Error))
		return nil, res.Err()
	}
	notify(n, toast.Success("Volunteer Event Created", "Your event has been scheduled."))
	f.Reset()
	return res.Data, nil
}

func (f *VolunteerEventForm) Reset() {
	*f = VolunteerEventForm{}
}

// JoinEvent signs the current user up for an event and reports the outcome.
func JoinEvent(ctx context.Context, c CommunityClient, eventID int64, n toast.Notifier) error {
	res := c.JoinEvent(ctx, eventID)
	if !res.OK() {
		notify(n, toast.Failure("Failed to Join Event", res.Error))
		return res.Err()
	}
	notify(n, toast.Success("Joined Event", "You have successfully joined the volunteer event!"))
	return nil
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
