package push

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSenderSend(t *testing.T) {
	var received relayRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL, time.Second)
	err := sender.Send(
		Target{UserID: 1, DeviceTokens: []string{"token"}},
		Payload{Version: PayloadVersion, NotificationID: "n-1", CourseID: 7, NotificationType: "newPostNotification"},
	)
	require.NoError(t, err)

	assert.Equal(t, int64(1), received.Target.UserID)
	assert.Equal(t, "n-1", received.Payload.NotificationID)
}

func TestHTTPSenderRejectedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL, time.Second)
	err := sender.Send(Target{UserID: 1, DeviceTokens: []string{"token"}}, Payload{})
	assert.Error(t, err)
}

func TestHTTPSenderUnreachableRelay(t *testing.T) {
	sender := NewHTTPSender("http://127.0.0.1:1", 100*time.Millisecond)
	err := sender.Send(Target{UserID: 1, DeviceTokens: []string{"token"}}, Payload{})
	assert.Error(t, err)
}
