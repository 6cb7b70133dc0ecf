package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/edagent/internal/config"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{"items":[
	{"id":{"videoId":"aaa"}},
	{"id":{"videoId":"bbb"}},
	{"id":{"videoId":"ccc"}}
]}`

const videosBody = `{"items":[
	{
		"id":"aaa",
		"snippet":{"title":"Python for Beginners &amp; Friends","description":"Learn python basics","channelTitle":"Edu","channelId":"c1","publishedAt":"2024-01-02T03:04:05Z",
			"thumbnails":{"high":{"url":"https://img/aaa_high.jpg"},"default":{"url":"https://img/aaa.jpg"}}},
		"statistics":{"viewCount":"100000","likeCount":"4000","commentCount":"200"},
		"contentDetails":{"duration":"PT12M30S","caption":"true"}
	},
	{
		"id":"bbb",
		"snippet":{"title":"Obscure upload","description":"","channelTitle":"Nobody"},
		"statistics":{"viewCount":"42","likeCount":"1","commentCount":"0"},
		"contentDetails":{"duration":"PT5M"}
	},
	{
		"id":"ccc",
		"snippet":{"title":"Advanced Go performance deep dive","description":"production architecture","channelTitle":"Pro"},
		"statistics":{"viewCount":"5000","likeCount":"50"},
		"contentDetails":{"duration":"PT1H10M"}
	}
]}`

func newTestProvider(t *testing.T, handler http.Handler) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewProvider(&config.YouTubeConfig{
		APIKey:       "yt-key",
		BaseURL:      srv.URL,
		MaxResults:   10,
		MinViewCount: DefaultMinViewCount,
		Timeout:      5 * time.Second,
		CacheTTL:     time.Minute,
		CacheSize:    8,
	})
}

func fakeAPI(searches, videoCalls *atomic.Int32) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		searches.Add(1)
		fmt.Fprint(w, searchBody)
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		videoCalls.Add(1)
		fmt.Fprint(w, videosBody)
	})
	return mux
}

func TestProvider_Search(t *testing.T) {
	var searches, videoCalls atomic.Int32
	p := newTestProvider(t, fakeAPI(&searches, &videoCalls))

	records, err := p.Search(context.Background(), "python", core.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, records, 2, "low view video is dropped")

	first := records[0].Item
	assert.Equal(t, "youtube", records[0].Source)
	assert.Equal(t, "youtube:aaa", first.ID)
	assert.Equal(t, core.KindVideo, first.Kind)
	assert.Equal(t, "Python for Beginners & Friends", first.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=aaa", first.URL)
	assert.Equal(t, 12*time.Minute+30*time.Second, first.Duration)
	assert.Equal(t, core.DifficultyBeginner, first.Difficulty)
	assert.Contains(t, first.SkillTags, "python")
	assert.True(t, first.IsFree)
	require.NotNil(t, first.PublishedAt)
	require.NotNil(t, first.Video)
	assert.Equal(t, "https://img/aaa_high.jpg", first.Video.ThumbnailURL)
	assert.True(t, first.Video.CaptionsAvailable)

	second := records[1].Item
	assert.Equal(t, core.DifficultyAdvanced, second.Difficulty)
	assert.Contains(t, second.SkillTags, "go")
	assert.GreaterOrEqual(t, first.Quality, second.Quality, "sorted by quality")

	_, err = p.Search(context.Background(), "Python", core.SearchFilters{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), searches.Load(), "second call served from cache")
	assert.Equal(t, int32(1), videoCalls.Load())
}

func TestCacheKey(t *testing.T) {
	base := core.SearchFilters{MaxDuration: time.Hour, MinViewCount: 1000, MaxResults: 10}
	key := cacheKey("Python", base)

	assert.Equal(t, key, cacheKey("python", base), "query case is folded")

	variants := map[string]func(*core.SearchFilters){
		"max duration": func(f *core.SearchFilters) { f.MaxDuration = time.Minute },
		"min views":    func(f *core.SearchFilters) { f.MinViewCount = 5 },
		"max results":  func(f *core.SearchFilters) { f.MaxResults = 3 },
		"free only":    func(f *core.SearchFilters) { f.FreeOnly = true },
	}
	for name, change := range variants {
		t.Run(name, func(t *testing.T) {
			f := base
			change(&f)
			assert.NotEqual(t, key, cacheKey("python", f))
		})
	}
}

func TestProvider_SearchParameters(t *testing.T) {
	var got http.Header
	var query map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		query = r.URL.Query()
		fmt.Fprint(w, `{"items":[]}`)
	})
	p := newTestProvider(t, mux)

	records, err := p.Search(context.Background(), "sql", core.SearchFilters{MaxDuration: 10 * time.Minute, MaxResults: 80})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "yt-key", got.Get("X-Goog-Api-Key"))
	assert.Equal(t, []string{"medium"}, query["videoDuration"])
	assert.Equal(t, []string{"50"}, query["maxResults"])
	assert.Equal(t, []string{"strict"}, query["safeSearch"])
}

func TestProvider_MaxDurationFilter(t *testing.T) {
	var searches, videoCalls atomic.Int32
	p := newTestProvider(t, fakeAPI(&searches, &videoCalls))

	records, err := p.Search(context.Background(), "python", core.SearchFilters{MaxDuration: 30 * time.Minute})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "youtube:aaa", records[0].Item.ID)
}

func TestProvider_QuotaError(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"errors":[{"reason":"quotaExceeded"}]}}`)
	}))

	_, err := p.Search(context.Background(), "python", core.SearchFilters{})
	var pe *core.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, core.ProviderQuotaExceeded, pe.Kind)
	assert.Equal(t, int32(1), calls.Load(), "quota errors are not retried")
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "PT45S", want: 45 * time.Second},
		{in: "PT1H2M3S", want: time.Hour + 2*time.Minute + 3*time.Second},
		{in: "P1DT30M", want: 24*time.Hour + 30*time.Minute},
		{in: "P0D", want: 0},
		{in: "PT1.5S", want: 1500 * time.Millisecond},
		{in: "", wantErr: true},
		{in: "1H", wantErr: true},
		{in: "PT5", wantErr: true},
		{in: "P1M", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationBucket(t *testing.T) {
	assert.Equal(t, "", durationBucket(0))
	assert.Equal(t, "short", durationBucket(4*time.Minute))
	assert.Equal(t, "medium", durationBucket(20*time.Minute))
	assert.Equal(t, "long", durationBucket(21*time.Minute))
}

func TestQualityScore(t *testing.T) {
	assert.Equal(t, 0.0, qualityScore(0, 10, 10, time.Minute))

	// 10M views, no engagement, no duration: 0.3*1 + 0.2*0.5
	assert.InDelta(t, 0.4, qualityScore(10_000_000, 0, 0, 0), 1e-9)

	// heavy engagement saturates at 1
	assert.Equal(t, 1.0, qualityScore(1000, 500, 500, 10*time.Minute))
}

func TestSkillTags_WordBoundaries(t *testing.T) {
	tags := skillTags("Going further with Django", "node.js and machine learning, said the rain")
	assert.Contains(t, tags, "django")
	assert.Contains(t, tags, "node.js")
	assert.Contains(t, tags, "machine learning")
	assert.NotContains(t, tags, "go")
	assert.NotContains(t, tags, "ai")
}
