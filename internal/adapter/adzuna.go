package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/anishpatel/jobsheet/internal/model"
)

const adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

// maxErrorBody caps how much of a failed response body is kept for reporting.
const maxErrorBody = 64 << 10

// adzunaResponse is the top-level Adzuna search response. Only "results" is used.
type adzunaResponse struct {
	Count   int            `json:"count"`
	Results []model.RawJob `json:"results"`
}

// AdzunaQuery is one search against the Adzuna jobs API.
type AdzunaQuery struct {
	AppID          string
	AppKey         string
	Country        string
	What           string
	Where          string // optional
	ResultsPerPage int
}

// AdzunaAdapter fetches the first page of an Adzuna job search.
type AdzunaAdapter struct {
	baseURL string
	query   AdzunaQuery
	client  *http.Client
}

// NewAdzunaAdapter creates an adapter for query. An empty baseURL uses the public API.
func NewAdzunaAdapter(baseURL string, query AdzunaQuery, client *http.Client) *AdzunaAdapter {
	if baseURL == "" {
		baseURL = adzunaBaseURL
	}
	return &AdzunaAdapter{
		baseURL: baseURL,
		query:   query,
		client:  client,
	}
}

// SearchURL returns the request URL for page 1 of the query.
// The search term is form-encoded, so spaces become "+".
func (a *AdzunaAdapter) SearchURL() string {
	params := url.Values{}
	params.Set("app_id", a.query.AppID)
	params.Set("app_key", a.query.AppKey)
	params.Set("results_per_page", strconv.Itoa(a.query.ResultsPerPage))
	params.Set("what", a.query.What)
	if a.query.Where != "" {
		params.Set("where", a.query.Where)
	}
	return fmt.Sprintf("%s/%s/search/1?%s", a.baseURL, url.PathEscape(a.query.Country), params.Encode())
}

// RedactedURL is SearchURL with the app key masked, for logging.
func (a *AdzunaAdapter) RedactedURL() string {
	u, err := url.Parse(a.SearchURL())
	if err != nil {
		return a.baseURL
	}
	q := u.Query()
	if q.Get("app_key") != "" {
		q.Set("app_key", "REDACTED")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// FetchJobs performs a single GET for page 1 and returns the raw "results" records.
// Any status other than 200 yields a *model.HTTPError carrying the response body.
// The request is never retried; a Retry-After hint is only reported.
func (a *AdzunaAdapter) FetchJobs(ctx context.Context) ([]model.RawJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.SearchURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna fetch for %q: %w", a.query.What, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna fetch for %q: %w", a.query.What, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("adzuna fetch for %q: %w", a.query.What,
			&model.HTTPError{
				StatusCode: resp.StatusCode,
				Body:       string(body),
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			})
	}

	var azResp adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&azResp); err != nil {
		return nil, fmt.Errorf("adzuna fetch for %q: decode: %w", a.query.What, err)
	}

	if azResp.Results == nil {
		return []model.RawJob{}, nil
	}
	return azResp.Results, nil
}
