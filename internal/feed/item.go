package feed

import (
	"fmt"
	"strconv"
)

// Title is the one-line headline of the item.
func (it Item) Title() string {
	switch {
	case it.Post != nil:
		return it.Post.Content
	case it.DamageReport != nil:
		if it.DamageReport.Description != "" {
			return it.DamageReport.Description
		}
		return "Damage at " + formatCoords(it.DamageReport.Latitude, it.DamageReport.Longitude)
	case it.HelpRequest != nil:
		return it.HelpRequest.Title
	case it.VolunteerEvent != nil:
		return it.VolunteerEvent.Title
	}
	return ""
}

// Location is where the item happened, or "" when unknown.
func (it Item) Location() string {
	switch {
	case it.Post != nil && it.Post.Location != nil:
		return *it.Post.Location
	case it.DamageReport != nil:
		return formatCoords(it.DamageReport.Latitude, it.DamageReport.Longitude)
	case it.HelpRequest != nil:
		return it.HelpRequest.Location
	case it.VolunteerEvent != nil:
		return it.VolunteerEvent.Location
	}
	return ""
}

func formatCoords(lat, lon float64) string {
	return fmt.Sprintf("%s, %s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64))
}
