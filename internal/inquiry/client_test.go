package inquiry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gpucloudstore/gpucloud-site/internal/catalog"
	"github.com/gpucloudstore/gpucloud-site/internal/leads"
	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledForm() *Form {
	f := NewForm()
	f.Set(FieldName, " Jane ")
	f.Set(FieldEmail, "jane@x.com")
	f.Set(FieldMessage, "need 64 GPUs")
	return f
}

func newClient(url string) *Client {
	return NewClient(url, nil, DefaultCopy(), logging.New("error"))
}

func TestSubmit_Success(t *testing.T) {
	var got leads.Submission
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	form := filledForm()
	selections := []leads.Selection{{Title: "H100 x4", Price: "$6.15/hr", Quantity: 2}}

	outcome, err := c.Submit(context.Background(), form, selections)

	require.NoError(t, err)
	assert.Equal(t, Outcome{State: StateSuccess, Message: DefaultCopy().Success}, outcome)
	assert.Equal(t, outcome, c.Outcome())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, selections, got.Selections)
	assert.Equal(t, "", form.Value(FieldName), "form is reset after success")
	assert.Len(t, selections, 1, "selections are left to their owner")
}

func TestSubmit_ValidationBlocksRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	form := NewForm()
	form.Set(FieldName, "Jane")
	form.Set(FieldEmail, "jane@x.com")

	outcome, err := c.Submit(context.Background(), form, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Fields.Has(FieldMessage, leads.KindCrossField))
	assert.Equal(t, Idle(), outcome)
	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.Equal(t, "Jane", form.Value(FieldName))
	assert.Equal(t, leads.MessageOrSelectionMsg, form.Errors()[FieldMessage])
}

func TestSubmit_GatewayErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `{"error":"SendGrid error","detail":"forbidden"}`)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	form := filledForm()

	outcome, err := c.Submit(context.Background(), form, nil)

	var serr *SubmitError
	require.ErrorAs(t, err, &serr)
	assert.False(t, serr.Network)
	assert.Equal(t, http.StatusBadGateway, serr.StatusCode)
	assert.Equal(t, Outcome{State: StateError, Message: "SendGrid error"}, outcome)
	assert.Equal(t, " Jane ", form.Value(FieldName), "form keeps raw input on failure")
}

func TestSubmit_GatewayErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html>oops</html>")
	}))
	defer srv.Close()

	outcome, err := newClient(srv.URL).Submit(context.Background(), filledForm(), nil)

	require.Error(t, err)
	assert.Equal(t, Outcome{State: StateError, Message: DefaultCopy().SubmitError}, outcome)
}

func TestSubmit_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newClient(url)
	form := filledForm()

	outcome, err := c.Submit(context.Background(), form, nil)

	var serr *SubmitError
	require.ErrorAs(t, err, &serr)
	assert.True(t, serr.Network)
	assert.Equal(t, Outcome{State: StateError, Message: DefaultCopy().NetworkError}, outcome)
	assert.Equal(t, " Jane ", form.Value(FieldName))
	assert.Equal(t, "need 64 GPUs", form.Value(FieldMessage))
}

func TestSubmit_RejectsWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		entered <- struct{}{}
		<-release
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), filledForm(), nil)
		done <- err
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never reached the gateway")
	}
	assert.Equal(t, StateLoading, c.Outcome().State)
	assert.True(t, Present(c.Outcome(), DefaultCopy()).ButtonDisabled)

	outcome, err := c.Submit(context.Background(), filledForm(), nil)
	assert.True(t, errors.Is(err, ErrInFlight))
	assert.Equal(t, StateLoading, outcome.State)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, StateSuccess, c.Outcome().State)
}

func TestSession_SubmitUsesCartSelections(t *testing.T) {
	var got leads.Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	s := NewSession(srv.URL, "de-DE", nil, logging.New("error"))
	offering, ok := catalog.Lookup("H100")
	require.True(t, ok)
	s.Cart().Add(offering)
	s.Cart().Add(offering)
	s.Form().Set(FieldName, "Jane")
	s.Form().Set(FieldEmail, "jane@x.com")

	outcome, err := s.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StateSuccess, outcome.State)
	require.Len(t, got.Selections, 1)
	assert.Equal(t, 2, got.Selections[0].Quantity)
	assert.Equal(t, 1, s.Cart().Len(), "cart survives a successful submission")

	view := s.View()
	assert.Equal(t, "Nachricht erfolgreich gesendet! Wir melden uns in Kürze.", view.Message)
	assert.Equal(t, ToneSuccess, view.Tone)
}

func TestSession_Theme(t *testing.T) {
	s := NewSession(DefaultEndpoint, "", nil, nil)
	assert.Equal(t, ThemeDark, s.Theme())
	assert.Equal(t, ThemeLight, s.ToggleTheme())
	s.SetTheme("sepia")
	assert.Equal(t, ThemeDark, s.Theme())

	s.SetLocale("de")
	assert.Equal(t, "Anfrage senden", s.View().ButtonLabel)
}
