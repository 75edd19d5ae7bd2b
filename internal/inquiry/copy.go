package inquiry

import (
	"strings"

	"golang.org/x/text/language"
)

// Copy is the user-facing text for the submit button and status line.
type Copy struct {
	Submit       string
	Submitting   string
	Success      string
	SubmitError  string
	NetworkError string
}

var supportedLocales = []language.Tag{
	language.AmericanEnglish,
	language.MustParse("de-DE"),
}

var localeMatcher = language.NewMatcher(supportedLocales)

var copies = map[language.Tag]Copy{
	language.AmericanEnglish: {
		Submit:       "Send Inquiry",
		Submitting:   "Sending...",
		Success:      "Message sent successfully! We'll be in touch soon.",
		SubmitError:  "Failed to send message. Please try again or email us directly.",
		NetworkError: "Network error. Please check your connection and try again.",
	},
	language.MustParse("de-DE"): {
		Submit:       "Anfrage senden",
		Submitting:   "Wird gesendet...",
		Success:      "Nachricht erfolgreich gesendet! Wir melden uns in Kürze.",
		SubmitError:  "Nachricht konnte nicht gesendet werden. Bitte versuchen Sie es erneut oder schreiben Sie uns direkt.",
		NetworkError: "Netzwerkfehler. Bitte überprüfen Sie Ihre Verbindung und versuchen Sie es erneut.",
	},
}

// DefaultCopy is the en-US copy.
func DefaultCopy() Copy {
	return copies[language.AmericanEnglish]
}

// ResolveLocale picks the best supported locale for an Accept-Language
// style preference list. Unparseable input yields en-US.
func ResolveLocale(preference string) language.Tag {
	preference = strings.TrimSpace(preference)
	if preference == "" {
		return language.AmericanEnglish
	}
	tags, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(tags) == 0 {
		return language.AmericanEnglish
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return language.AmericanEnglish
	}
	return supportedLocales[idx]
}

// CopyFor returns the copy for the best matching locale.
func CopyFor(preference string) (Copy, language.Tag) {
	tag := ResolveLocale(preference)
	return copies[tag], tag
}
