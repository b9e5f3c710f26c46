package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeii/feed-relay/internal/app"
	"github.com/sergeii/feed-relay/internal/router"
)

func getTestServer(t *testing.T) (*httptest.Server, func()) {
	a, err := app.New(func(cfg *app.Config) error {
		cfg.JitterMax = time.Millisecond
		cfg.RetryDelayMax = time.Millisecond
		cfg.LogLevel = "error"
		return nil
	})
	require.NoError(t, err)
	ts := httptest.NewServer(router.New(a))
	return ts, func() {
		ts.Close()
		a.Close()
	}
}

func doTestRequest(t *testing.T, ts *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	client := &http.Client{}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(respBody)
}

func TestRelayRoutes(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<rss/>")) // nolint:errcheck
	}))
	defer upstream.Close()
	ts, stop := getTestServer(t)
	defer stop()

	tests := []struct {
		path     string
		wantCode int
	}{
		{
			path:     "/",
			wantCode: 200,
		},
		{
			path:     "/api/feed",
			wantCode: 200,
		},
		{
			path:     "/api/other",
			wantCode: 404,
		},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := doTestRequest(t, ts, http.MethodGet, tt.path+"?url="+url.QueryEscape(upstream.URL), nil)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantCode == 200 {
				assert.Equal(t, "<rss/>", body)
			}
		})
	}
}

func TestRelayAcceptsAnyMethod(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<rss/>")) // nolint:errcheck
	}))
	defer upstream.Close()
	ts, stop := getTestServer(t)
	defer stop()

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut} {
		t.Run(method, func(t *testing.T) {
			resp, body := doTestRequest(t, ts, method, "/?url="+url.QueryEscape(upstream.URL), nil)
			assert.Equal(t, 200, resp.StatusCode)
			assert.Equal(t, "<rss/>", body)
		})
	}
}

func TestRelayCompressesForGzipClients(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<rss>compressed</rss>")) // nolint:errcheck
	}))
	defer upstream.Close()
	ts, stop := getTestServer(t)
	defer stop()

	// http.Client сам выставляет Accept-Encoding и прозрачно распаковывает ответ
	resp, body := doTestRequest(t, ts, http.MethodGet, "/?url="+url.QueryEscape(upstream.URL), nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.Uncompressed)
	assert.Equal(t, "<rss>compressed</rss>", body)
	assert.Equal(t, "Accept-Encoding", resp.Header.Get("Vary"))
}
