package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	repository "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/persistence/repository/port"
)

// HTTPMessageRepository talks to the platform REST API:
//
//	GET  {base}/messages/conversation/{idA}/{idB}   (bearer auth)
//	POST {base}/messages/send
//
// baseURL includes the API prefix, e.g. http://localhost:5000/api.
type HTTPMessageRepository struct {
	baseURL   string
	authToken string
	client    *http.Client
}

// NewHTTPMessageRepository constructs a repository against baseURL. A nil
// httpClient falls back to a client with a request timeout.
func NewHTTPMessageRepository(baseURL, authToken string, httpClient *http.Client) *HTTPMessageRepository {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPMessageRepository{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		client:    httpClient,
	}
}

var _ repository.MessageRepository = (*HTTPMessageRepository)(nil)

// GetConversation fetches the persisted transcript for the unordered pair.
func (r *HTTPMessageRepository) GetConversation(ctx context.Context, idA, idB string) ([]messaging.Message, error) {
	url := fmt.Sprintf("%s/messages/conversation/%s/%s", r.baseURL, idA, idB)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("messages: build request: %w", err)
	}
	if r.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.authToken)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("messages: fetch conversation: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("messages: fetch conversation: status %d", res.StatusCode)
	}

	var msgs []messaging.Message
	if err := json.NewDecoder(res.Body).Decode(&msgs); err != nil {
		return nil, fmt.Errorf("messages: decode conversation: %w", err)
	}
	return msgs, nil
}

// SaveMessage persists m and returns the stored copy with its assigned ID.
// A non-2xx response surfaces the server's body text so the caller can show
// the raw failure.
func (r *HTTPMessageRepository) SaveMessage(ctx context.Context, m messaging.Message) (messaging.Message, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return messaging.Message{}, fmt.Errorf("messages: encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/messages/send", bytes.NewReader(body))
	if err != nil {
		return messaging.Message{}, fmt.Errorf("messages: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.authToken)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return messaging.Message{}, fmt.Errorf("messages: send: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return messaging.Message{}, fmt.Errorf("messages: send: status %d: %s", res.StatusCode, strings.TrimSpace(string(text)))
	}

	var saved messaging.Message
	if err := json.NewDecoder(res.Body).Decode(&saved); err != nil {
		return messaging.Message{}, fmt.Errorf("messages: decode saved message: %w", err)
	}
	return saved, nil
}
