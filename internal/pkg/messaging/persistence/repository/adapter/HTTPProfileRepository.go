package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	repository "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/persistence/repository/port"
)

// HTTPProfileRepository resolves display metadata from the profile endpoints:
//
//	GET {base}/students/{id}
//	GET {base}/alumni/{id}
type HTTPProfileRepository struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProfileRepository(baseURL string, httpClient *http.Client) *HTTPProfileRepository {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProfileRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

var _ repository.ProfileRepository = (*HTTPProfileRepository)(nil)

// profileResponse matches the platform payload. Alumni carry a company,
// students a course; whichever is present becomes the affiliation.
type profileResponse struct {
	Name    string `json:"name"`
	Img     string `json:"img"`
	Company string `json:"company"`
	Course  string `json:"course"`
}

func (r *HTTPProfileRepository) GetProfile(ctx context.Context, role messaging.Role, id string) (repository.Profile, error) {
	segment := "students"
	if role == messaging.RoleProvider {
		segment = "alumni"
	}

	url := fmt.Sprintf("%s/%s/%s", r.baseURL, segment, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return repository.Profile{}, fmt.Errorf("profiles: build request: %w", err)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return repository.Profile{}, fmt.Errorf("profiles: fetch %s %s: %w", role, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return repository.Profile{}, fmt.Errorf("profiles: fetch %s %s: status %d", role, id, res.StatusCode)
	}

	var payload profileResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return repository.Profile{}, fmt.Errorf("profiles: decode %s %s: %w", role, id, err)
	}

	affiliation := payload.Company
	if role == messaging.RoleSeeker {
		affiliation = payload.Course
	}
	return repository.Profile{
		Name:        payload.Name,
		AvatarURL:   payload.Img,
		Affiliation: affiliation,
	}, nil
}
