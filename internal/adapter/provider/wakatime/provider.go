package wakatime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/touchgrass-backend/internal/provider"
)

const defaultBaseURL = "https://wakatime.com/api/v1"

const userAgent = "touchgrass"

const defaultTimeout = 10 * time.Second

// Provider fetches daily coding summaries from the WakaTime API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default WakaTime API URL.
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
		log:        logger.With("adapter", "wakatime"),
	}
}

// FetchSummaries fetches per-day coding totals for the given date range,
// inclusive on both ends. The apiKey is the user's WakaTime API key.
func (p *Provider) FetchSummaries(ctx context.Context, apiKey string, start, end time.Time) ([]provider.CodingDayResult, error) {
	reqURL := fmt.Sprintf("%s/users/current/summaries?start=%s&end=%s",
		p.baseURL, start.UTC().Format("2006-01-02"), end.UTC().Format("2006-01-02"))

	p.log.DebugContext(ctx, "wakatime request",
		slog.String("start", start.UTC().Format("2006-01-02")),
		slog.String("end", end.UTC().Format("2006-01-02")),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wakatime: create request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(apiKey)))
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		p.log.ErrorContext(ctx, "wakatime request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("wakatime: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wakatime: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wakatime: read body: %w", err)
	}

	var summaries summariesResponse
	if err := json.Unmarshal(body, &summaries); err != nil {
		return nil, fmt.Errorf("wakatime: decode json: %w", err)
	}

	result := mapSummariesResponse(summaries)

	p.log.DebugContext(ctx, "wakatime response",
		slog.Int("status", resp.StatusCode),
		slog.Int("days", len(result)),
	)

	return result, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
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
	p.log.WarnContext(ctx, "wakatime retry", slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = p.httpClient.Do(req)
	return resp, err
}

// mapSummariesResponse converts the summaries payload into coding-day
// results, skipping days with an unparsable date or zero total time.
func mapSummariesResponse(summaries summariesResponse) []provider.CodingDayResult {
	result := make([]provider.CodingDayResult, 0, len(summaries.Data))

	for _, day := range summaries.Data {
		parsed, err := time.Parse("2006-01-02", day.Range.Date)
		if err != nil {
			continue
		}
		totalSec := int(day.GrandTotal.TotalSeconds)
		if totalSec <= 0 {
			continue
		}
		result = append(result, provider.CodingDayResult{
			Day:      parsed.UTC(),
			TotalSec: totalSec,
		})
	}

	return result
}
