package lda

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/omnifolio/influence-indexer/internal/adapter"
	"github.com/omnifolio/influence-indexer/internal/ratelimit"
)

const PROVIDER_NAME = "lda"

// Registrant identifies the lobbying firm that submitted a filing
type Registrant struct {
	Name string `json:"name"`
}

// FilingClient is the client section of a filing
type FilingClient struct {
	Name               string  `json:"name"`
	GeneralDescription *string `json:"general_description"`
}

// GovernmentEntity is one government body named on a lobbying activity
type GovernmentEntity struct {
	Name string `json:"name"`
}

// Lobbyist is the nested person record on a lobbying activity
type Lobbyist struct {
	Lobbyist LobbyistName `json:"lobbyist"`
}

// LobbyistName carries the individual's name parts
type LobbyistName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LobbyingActivity is one issue-area block within a filing
type LobbyingActivity struct {
	GeneralIssueCode   string             `json:"general_issue_code"`
	Description        *string            `json:"description"`
	GovernmentEntities []GovernmentEntity `json:"government_entities"`
	Lobbyists          []Lobbyist         `json:"lobbyists"`
}

// Filing is one raw disclosure filing from the Senate LDA API
type Filing struct {
	FilingUUID        string             `json:"filing_uuid"`
	FilingYear        int                `json:"filing_year"`
	FilingPeriod      string             `json:"filing_period"`
	FilingDocumentURL *string            `json:"filing_document_url"`
	Income            *string            `json:"income"`
	Expenses          *string            `json:"expenses"`
	DtPosted          string             `json:"dt_posted"`
	Registrant        Registrant         `json:"registrant"`
	Client            FilingClient       `json:"client"`
	Activities        []LobbyingActivity `json:"lobbying_activities"`
}

// filingsResponse is one page of the paginated filings endpoint
type filingsResponse struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Filing `json:"results"`
}

// FetchOptions bounds a fetch for one key
type FetchOptions struct {
	// YearsOfHistory is how many filing years back to request, including the current year
	YearsOfHistory int
	// MaxResults caps the total number of filings returned
	MaxResults int
}

// Client defines the interface for Senate LDA client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/lda_client.go -package=mocks -mock_names=Client=MockLDAClient
type Client interface {
	// FetchFilings fetches all disclosure filings for a client name within the
	// requested history window. A single bounded attempt: no retry loop beyond
	// the HTTP client's own backoff.
	FetchFilings(ctx context.Context, clientName string, opts FetchOptions) ([]Filing, error)
}

// LDAClient implements the Senate LDA API client
type LDAClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	clock          adapter.Clock
	json           adapter.JSON
	baseURL        string
	apiKey         string
	pageSize       int
}

// NewClient creates a new Senate LDA client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, clock adapter.Clock, json adapter.JSON, baseURL string, apiKey string, pageSize int) Client {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &LDAClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		clock:          clock,
		json:           json,
		baseURL:        baseURL,
		apiKey:         apiKey,
		pageSize:       pageSize,
	}
}

// FetchFilings fetches all disclosure filings for a client name within the
// requested history window, paginating year by year
func (c *LDAClient) FetchFilings(ctx context.Context, clientName string, opts FetchOptions) ([]Filing, error) {
	years := opts.YearsOfHistory
	if years <= 0 {
		years = 1
	}
	currentYear := c.clock.Now().UTC().Year()

	var filings []Filing
	for year := currentYear - years + 1; year <= currentYear; year++ {
		yearFilings, err := c.fetchYear(ctx, clientName, year, opts.MaxResults-len(filings))
		if err != nil {
			return nil, err
		}
		filings = append(filings, yearFilings...)
		if opts.MaxResults > 0 && len(filings) >= opts.MaxResults {
			filings = filings[:opts.MaxResults]
			break
		}
	}

	return filings, nil
}

// fetchYear paginates through one filing year
func (c *LDAClient) fetchYear(ctx context.Context, clientName string, year int, remaining int) ([]Filing, error) {
	var filings []Filing
	page := 1
	for {
		requestURL := fmt.Sprintf("%s/filings/?client_name=%s&filing_year=%d&page_size=%d&page=%d&ordering=-dt_posted",
			c.baseURL,
			url.QueryEscape(clientName),
			year,
			c.pageSize,
			page,
		)

		headers := map[string]string{}
		if c.apiKey != "" {
			headers["Authorization"] = "Token " + c.apiKey
		}

		respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
			return c.httpClient.GetBytes(ctx, requestURL, headers)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to call LDA API for year %s: %w", strconv.Itoa(year), err)
		}

		var response filingsResponse
		if err := c.json.Unmarshal(respBody, &response); err != nil {
			return nil, fmt.Errorf("failed to unmarshal LDA response: %w", err)
		}

		filings = append(filings, response.Results...)
		if remaining > 0 && len(filings) >= remaining {
			return filings[:remaining], nil
		}
		if response.Next == nil || len(response.Results) == 0 {
			return filings, nil
		}
		page++
	}
}
