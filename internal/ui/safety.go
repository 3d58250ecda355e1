package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type guideline struct {
	Heading string
	Text    string
}

type guidelineSection struct {
	Title string
	Items []guideline
}

const safetyIntro = "Your safety is our top priority. Please review these guidelines before engaging in any activities related to wildfire recovery."

const safetyDisclaimer = "These guidelines are for informational purposes only and do not replace professional training or official instructions from emergency services. Always prioritize your safety and the safety of others."

var safetySections = []guidelineSection{
	{
		Title: "General Safety Precautions",
		Items: []guideline{
			{"Assess the Situation", "Before entering any affected area, ensure it has been declared safe by local authorities. Do not enter areas still under active fire or evacuation orders."},
			{"Personal Protective Equipment (PPE)", "Always wear appropriate PPE, including sturdy footwear, long pants, long-sleeved shirts, gloves, eye protection, and a dust mask or respirator."},
			{"Stay Hydrated", "Carry plenty of water and drink regularly, especially in hot or smoky conditions."},
			{"Communicate", "Inform someone of your plans, location, and expected return time. Carry a fully charged mobile phone."},
			{"Hazard Awareness", "Be aware of potential hazards such as unstable structures, downed power lines, hot spots, falling debris, and hazardous materials."},
			{"First Aid", "Carry a basic first aid kit and know how to use it."},
		},
	},
	{
		Title: "Wildfire-Specific Guidelines",
		Items: []guideline{
			{"Smoke Inhalation", "Limit exposure to smoke. If you experience respiratory issues, seek medical attention immediately."},
			{"Ash and Debris", "Ash can conceal dangerous hot spots and sharp objects. Avoid walking through deep ash."},
			{"Wildlife", "Be aware that displaced wildlife may be present and can be unpredictable."},
			{"Equipment Safety", "If using tools or heavy equipment, ensure you are properly trained and follow all safety protocols."},
		},
	},
	{
		Title: "Reporting and Communication",
		Items: []guideline{
			{"Accurate Reporting", "When submitting damage reports, provide accurate and detailed information. Do not put yourself at risk to get a photo."},
			{"Emergency Services", "In case of immediate danger or emergency, contact local emergency services (e.g., 911 or your local equivalent) first."},
			{"Respect Privacy", "When sharing information or photos, respect the privacy of individuals and properties."},
		},
	},
}

var sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)

// Safety writes the volunteer safety guidelines, wrapped to width columns.
func Safety(w io.Writer, width int) {
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)
	item := lipgloss.NewStyle().Width(width - 2).PaddingLeft(2)

	Title(w, "Safety Guidelines", "")
	fmt.Fprintln(w, wrap.Render(safetyIntro))
	for _, sec := range safetySections {
		fmt.Fprintln(w, sectionStyle.Render(sec.Title))
		for _, g := range sec.Items {
			fmt.Fprintln(w, item.Render("• "+labelStyle.Render(g.Heading+":")+" "+g.Text))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, Muted(wrap.Render(safetyDisclaimer)))
}
