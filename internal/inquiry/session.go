package inquiry

import (
	"context"
	"net/http"
	"sync"

	"github.com/gpucloudstore/gpucloud-site/internal/cart"
	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
	"golang.org/x/text/language"
)

// Theme is the color scheme of one browsing session.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Session is the state of one browsing tab: theme, locale, the selection
// cart, the inquiry form and the submission client. Nothing here is shared
// between sessions.
type Session struct {
	mu     sync.Mutex
	theme  Theme
	locale language.Tag
	copy   Copy

	cart   *cart.Store
	form   *Form
	client *Client
}

// NewSession creates a session posting to endpoint. The locale is resolved
// from an Accept-Language style preference.
func NewSession(endpoint, localePreference string, httpClient *http.Client, logger *logging.Logger) *Session {
	copy, tag := CopyFor(localePreference)
	return &Session{
		theme:  ThemeDark,
		locale: tag,
		copy:   copy,
		cart:   cart.NewStore(),
		form:   NewForm(),
		client: NewClient(endpoint, httpClient, copy, logger),
	}
}

// Theme returns the current theme.
func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme switches the theme. Unknown values fall back to dark.
func (s *Session) SetTheme(t Theme) {
	if t != ThemeLight {
		t = ThemeDark
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Session) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	return s.theme
}

// Locale returns the active locale.
func (s *Session) Locale() language.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// SetLocale re-resolves the locale and swaps the copy used for new outcomes.
func (s *Session) SetLocale(preference string) language.Tag {
	copy, tag := CopyFor(preference)
	s.mu.Lock()
	s.locale = tag
	s.copy = copy
	s.mu.Unlock()
	s.client.SetCopy(copy)
	return tag
}

// Cart returns the session's selection cart.
func (s *Session) Cart() *cart.Store {
	return s.cart
}

// Form returns the session's inquiry form.
func (s *Session) Form() *Form {
	return s.form
}

// Submit sends the form with the cart's current selections.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	return s.client.Submit(ctx, s.form, s.cart.Selections())
}

// View renders the current outcome in the session's locale.
func (s *Session) View() View {
	s.mu.Lock()
	copy := s.copy
	s.mu.Unlock()
	return Present(s.client.Outcome(), copy)
}

// Outcome returns the current submission outcome.
func (s *Session) Outcome() Outcome {
	return s.client.Outcome()
}
