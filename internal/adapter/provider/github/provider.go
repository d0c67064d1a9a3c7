package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/touchgrass-backend/internal/provider"
)

const defaultBaseURL = "https://api.github.com"

const userAgent = "touchgrass"

const defaultTimeout = 10 * time.Second

// Provider fetches recent commit activity from the GitHub REST API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default GitHub API URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, defaultTimeout, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL and request
// timeout. A non-positive timeout falls back to the default.
func NewProviderWithURL(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "github"),
	}
}

// FetchCommits fetches commits authored by the given login since the given
// time, using the commit search endpoint. The token is the user's personal
// access token.
func (p *Provider) FetchCommits(ctx context.Context, token, login string, since time.Time) ([]provider.CommitResult, error) {
	query := fmt.Sprintf("author:%s author-date:>%s", login, since.UTC().Format("2006-01-02"))
	reqURL := p.baseURL + "/search/commits?per_page=100&sort=author-date&order=desc&q=" + url.QueryEscape(query)

	p.log.DebugContext(ctx, "github request", slog.String("login", login))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("github: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.doWithRetry(ctx, req, login)
	if err != nil {
		p.log.ErrorContext(ctx, "github request failed", slog.String("login", login), slog.String("error", err.Error()))
		return nil, fmt.Errorf("github: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github: read body: %w", err)
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("github: decode json: %w", err)
	}

	result := mapSearchResponse(search)

	p.log.DebugContext(ctx, "github response",
		slog.String("login", login),
		slog.Int("status", resp.StatusCode),
		slog.Int("commits", len(result)),
	)

	return result, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, login string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "github retry", slog.String("login", login), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = p.httpClient.Do(req)
	return resp, err
}

// mapSearchResponse converts the search payload into commit results, skipping
// items with no SHA or an unparsable author date.
func mapSearchResponse(search searchResponse) []provider.CommitResult {
	result := make([]provider.CommitResult, 0, len(search.Items))

	for _, item := range search.Items {
		if item.SHA == "" {
			continue
		}
		committedAt, err := time.Parse(time.RFC3339, item.Commit.Author.Date)
		if err != nil {
			continue
		}
		result = append(result, provider.CommitResult{
			SHA:         item.SHA,
			Repo:        item.Repository.FullName,
			CommittedAt: committedAt.UTC(),
		})
	}

	return result
}
