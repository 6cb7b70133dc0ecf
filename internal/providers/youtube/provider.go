package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sandevgo/edagent/internal/config"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
	"github.com/sandevgo/edagent/pkg/retry"
)

const (
	providerName = "youtube"

	// DefaultMinViewCount filters out very low reach uploads.
	DefaultMinViewCount = 100
	maxSearchResults    = 50
	retryAttempts       = 3
	retryBaseDelay      = 500 * time.Millisecond
)

// Provider searches YouTube with the two-call search then videos protocol.
// Results are cached per query and filter combination.
type Provider struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	maxResults int
	minViews   int64
	cache      *expirable.LRU[string, []core.RawContentRecord]
}

func NewProvider(cfg *config.YouTubeConfig) *Provider {
	minViews := cfg.MinViewCount
	if minViews <= 0 {
		minViews = DefaultMinViewCount
	}
	return &Provider{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		minViews:   minViews,
		cache:      expirable.NewLRU[string, []core.RawContentRecord](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

func (p *Provider) Search(ctx context.Context, query string, filters core.SearchFilters) ([]core.RawContentRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	maxResults := filters.MaxResults
	if maxResults <= 0 {
		maxResults = p.maxResults
	}
	maxResults = min(max(maxResults, 1), maxSearchResults)

	minViews := p.minViews
	if filters.MinViewCount > minViews {
		minViews = filters.MinViewCount
	}

	filters.MaxResults = maxResults
	filters.MinViewCount = minViews
	key := cacheKey(query, filters)
	if cached, ok := p.cache.Get(key); ok {
		log.FromCtx(ctx).Debug().Str("query", query).Msg("youtube cache hit")
		return append([]core.RawContentRecord(nil), cached...), nil
	}

	ids, err := p.searchIDs(ctx, query, maxResults, filters.MaxDuration)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		p.cache.Add(key, nil)
		return nil, nil
	}

	videos, err := p.videos(ctx, ids)
	if err != nil {
		return nil, err
	}

	logger := log.FromCtx(ctx)
	records := make([]core.RawContentRecord, 0, len(videos))
	for _, v := range videos {
		rec := toRecord(v)
		if rec.Item.Video.ViewCount < minViews {
			continue
		}
		if filters.MaxDuration > 0 && rec.Item.Duration > filters.MaxDuration {
			continue
		}
		if err := rec.Item.Validate(); err != nil {
			logger.Warn().Err(err).Str("video_id", v.ID).Msg("dropping invalid video")
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Item.Quality > records[j].Item.Quality
	})

	logger.Info().Str("query", query).Int("results", len(records)).Msg("youtube search done")
	p.cache.Add(key, records)
	return append([]core.RawContentRecord(nil), records...), nil
}

func (p *Provider) searchIDs(ctx context.Context, query string, maxResults int, maxDuration time.Duration) ([]string, error) {
	params := url.Values{
		"part":            {"snippet"},
		"q":               {query},
		"type":            {"video"},
		"maxResults":      {strconv.Itoa(maxResults)},
		"order":           {"relevance"},
		"videoEmbeddable": {"true"},
		"safeSearch":      {"strict"},
	}
	if bucket := durationBucket(maxDuration); bucket != "" {
		params.Set("videoDuration", bucket)
	}

	var resp struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := p.get(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

func (p *Provider) videos(ctx context.Context, ids []string) ([]videoResource, error) {
	params := url.Values{
		"part": {"snippet,statistics,contentDetails"},
		"id":   {strings.Join(ids, ",")},
	}

	var resp struct {
		Items []videoResource `json:"items"`
	}
	if err := p.get(ctx, "/videos", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (p *Provider) get(ctx context.Context, path string, params url.Values, out any) error {
	policy := retry.NewPolicy(retryAttempts, retryBaseDelay, core.IsRetryable)
	policy.OnRetry = func(n int, err error) {
		log.FromCtx(ctx).Warn().Err(err).Int("retry", n).Str("path", path).Msg("youtube call failed, retrying")
	}

	return retry.Do(ctx, policy, func(ctx context.Context) error {
		return p.getOnce(ctx, path, params, out)
	})
}

func (p *Provider) getOnce(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return &core.ProviderError{Provider: providerName, Kind: core.ProviderInvalid, Err: err}
	}
	req.Header.Set("X-Goog-Api-Key", p.apiKey)
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return &core.ProviderError{Provider: providerName, Kind: core.ProviderTransient, Err: fmt.Errorf("request: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &core.ProviderError{Provider: providerName, Kind: core.ProviderTransient, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return core.HTTPStatusError(providerName, resp.StatusCode, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &core.ProviderError{Provider: providerName, Kind: core.ProviderInvalid, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// cacheKey identifies a search by its case-folded query and every filter field.
func cacheKey(query string, f core.SearchFilters) string {
	return fmt.Sprintf("%s|%d|%d|%d|%t", strings.ToLower(query), f.MaxDuration, f.MinViewCount, f.MaxResults, f.FreeOnly)
}
