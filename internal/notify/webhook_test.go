package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactReceived(t *testing.T) {
	var received contactPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	err := notifier.ContactReceived(context.Background(), "Mette Jensen", "mette@example.dk", "Hjælp til gæld")
	require.NoError(t, err)

	assert.Equal(t, "Ny henvendelse fra Mette Jensen <mette@example.dk>: Hjælp til gæld", received.Text)
}

func TestContactReceivedErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such webhook", http.StatusNotFound)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	err := notifier.ContactReceived(context.Background(), "Lars", "lars@example.dk", "")
	assert.ErrorContains(t, err, "status 404")
}

func TestContactReceivedUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	notifier := NewWebhookNotifier(server.URL)
	err := notifier.ContactReceived(context.Background(), "Lars", "lars@example.dk", "")
	assert.Error(t, err)
}
