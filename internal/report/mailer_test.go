package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"backup-pipeline/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailer(t *testing.T) {
	t.Parallel()

	validSettings := func() *settings.Settings {
		return &settings.Settings{
			Notify:     []string{"ops@example.com"},
			NotifyFrom: "bot@example.com",
		}
	}

	tc := map[string]struct {
		apiKey   string
		settings *settings.Settings
		wantErr  error
	}{
		"valid":           {apiKey: "key", settings: validSettings()},
		"missing API key": {apiKey: "", settings: validSettings(), wantErr: ErrMissingAPIKey},
		"nil settings":    {apiKey: "key", settings: nil, wantErr: ErrNilSettings},
		"no recipients": {
			apiKey:   "key",
			settings: &settings.Settings{NotifyFrom: "bot@example.com"},
			wantErr:  ErrNoRecipients,
		},
		"no sender": {
			apiKey:   "key",
			settings: &settings.Settings{Notify: []string{"ops@example.com"}},
			wantErr:  ErrMissingSender,
		},
	}

	for name, tc := range tc {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m, err := NewMailer(tc.apiKey, tc.settings)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}

func TestMailer_BuildMessage(t *testing.T) {
	t.Parallel()

	t.Run("uses configured subject and recipients", func(t *testing.T) {
		t.Parallel()
		m, err := NewMailer("key", &settings.Settings{
			Notify:        []string{"a@example.com", "b@example.com"},
			NotifyFrom:    "bot@example.com",
			NotifySubject: "nightly backups",
		})
		require.NoError(t, err)

		msg := m.buildMessage("all good")

		assert.Equal(t, "nightly backups", msg.Subject)
		assert.Equal(t, "all good", msg.Text)
		assert.Equal(t, "bot@example.com", msg.FromEmail)
		assert.Equal(t, []recipient{{Email: "a@example.com"}, {Email: "b@example.com"}}, msg.To)
		assert.False(t, msg.TrackOpens)
		assert.False(t, msg.TrackClicks)
		assert.False(t, msg.AutoHTML)
		assert.False(t, msg.ViewContentLink)
	})

	t.Run("subject falls back to the command line", func(t *testing.T) {
		t.Parallel()
		m, err := NewMailer("key", &settings.Settings{
			Notify:     []string{"a@example.com"},
			NotifyFrom: "bot@example.com",
		})
		require.NoError(t, err)

		msg := m.buildMessage("content")
		assert.Equal(t, strings.Join(os.Args, " "), msg.Subject)
	})
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	newMailerWithServer := func(t *testing.T, handler http.HandlerFunc) *Mailer {
		t.Helper()
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)

		m, err := NewMailer("test-key", &settings.Settings{
			Notify:     []string{"ops@example.com"},
			NotifyFrom: "bot@example.com",
		})
		require.NoError(t, err)
		m.endpoint = srv.URL
		m.client = srv.Client()
		return m
	}

	t.Run("sends the payload and decodes results", func(t *testing.T) {
		t.Parallel()
		var captured sendRequest
		m := newMailerWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write([]byte(`[{"email":"ops@example.com","status":"sent","reject_reason":""}]`))
		})

		results, err := m.Send(context.Background(), "backup summary")
		require.NoError(t, err)

		assert.Equal(t, "test-key", captured.Key)
		assert.Equal(t, "backup summary", captured.Message.Text)
		require.Len(t, results, 1)
		assert.Equal(t, "ops@example.com", results[0].Email)
		assert.Equal(t, "sent", results[0].Status)
	})

	t.Run("API failure", func(t *testing.T) {
		t.Parallel()
		m := newMailerWithServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":"error","message":"Invalid API key"}`))
		})

		results, err := m.Send(context.Background(), "content")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSendFailed)
		assert.Contains(t, err.Error(), "Invalid API key")
		assert.Nil(t, results)
	})

	t.Run("malformed response body", func(t *testing.T) {
		t.Parallel()
		m := newMailerWithServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		results, err := m.Send(context.Background(), "content")
		require.Error(t, err)
		assert.Nil(t, results)
	})
}
