package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPSender forwards translated payloads to a push relay over HTTP. The
// relay owns the actual APNs/FCM delivery.
type HTTPSender struct {
	url    string
	client *http.Client
}

func NewHTTPSender(url string, timeout time.Duration) *HTTPSender {
	return &HTTPSender{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type relayRequest struct {
	Target  Target  `json:"target"`
	Payload Payload `json:"payload"`
}

func (s *HTTPSender) Send(target Target, payload Payload) error {
	body, err := json.Marshal(relayRequest{
		Target:  target,
		Payload: payload,
	})
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push relay rejected request: %s", resp.Status)
	}
	return nil
}
