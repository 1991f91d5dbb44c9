package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dukerupert/hbnb/internal/view"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("204")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("204"))
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func price(p string) string {
	return fmt.Sprintf("Price: $%s/night", p)
}

func renderCards(cards []view.Card) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		body := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(c.Name),
			price(c.Price),
			mutedStyle.Render("hbnbctl place "+c.ID),
		)
		rendered = append(rendered, cardStyle.Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func renderDetail(d *view.PlaceDetail) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Name) + "\n")
	if d.Description != "" {
		b.WriteString(d.Description + "\n")
	}
	b.WriteString(price(d.Price) + "\n\n")

	b.WriteString(headingStyle.Render("Amenities:") + "\n")
	for _, a := range d.Amenities {
		b.WriteString("  - " + a + "\n")
	}

	b.WriteString("\n" + headingStyle.Render("Reviews:") + "\n")
	reviews := make([]string, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		reviews = append(reviews, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			r.Comment,
			mutedStyle.Render(fmt.Sprintf("By %s - Rating: %d/5", r.Author, r.Rating)),
		)))
	}
	if len(reviews) == 0 {
		b.WriteString(mutedStyle.Render("  No reviews yet."))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, reviews...))
	}
	return b.String()
}
