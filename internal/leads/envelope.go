package leads

import (
	"fmt"
	"html"
	"strings"

	"github.com/gpucloudstore/gpucloud-site/internal/notify"
)

// DefaultBrandLabel is appended to every notification subject.
const DefaultBrandLabel = "GPUcloud.store"

// BuildEnvelope renders a submission into the email sent to the sales inbox.
func BuildEnvelope(sub Submission, brand string, settings notify.Settings) notify.Envelope {
	if strings.TrimSpace(brand) == "" {
		brand = DefaultBrandLabel
	}
	text := PlainTextBody(sub)
	return notify.Envelope{
		Subject:   fmt.Sprintf("New contact from %s - %s", sub.Name, brand),
		From:      settings.From,
		FromName:  settings.FromName,
		To:        settings.To,
		PlainText: text,
		HTML:      `<pre style="white-space:pre-wrap">` + html.EscapeString(text) + `</pre>`,
	}
}

// PlainTextBody lists the contact fields, then the message and any selected
// configurations.
func PlainTextBody(sub Submission) string {
	lines := []string{
		"Name: " + sub.Name,
		"Company: " + orDash(sub.Company),
		"Email: " + sub.Email,
		"Role: " + orDash(sub.Role),
	}
	if sub.Message != "" {
		lines = append(lines, "", "Message:", sub.Message)
	}
	if len(sub.Selections) > 0 {
		lines = append(lines, "", "Selected configurations:")
		for _, sel := range sub.Selections {
			lines = append(lines, selectionLine(sel))
		}
	}
	return strings.Join(lines, "\n")
}

func selectionLine(sel Selection) string {
	qty := sel.Quantity
	if qty < 1 {
		qty = 1
	}
	line := "- " + sel.Title
	if sel.Specs != "" {
		line += " (" + sel.Specs + ")"
	}
	line += fmt.Sprintf(" x%d", qty)
	if sel.Price != "" {
		line += " @ " + sel.Price
	}
	return line
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
