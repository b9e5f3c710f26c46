package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeii/feed-relay/internal/handlers"
)

func TestParseTargetURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
		want    string
	}{
		{
			name: "https feed",
			raw:  "https://example.com/feed.xml",
			want: "https://example.com/feed.xml",
		},
		{
			name: "http with port and query",
			raw:  "http://localhost:8080/rss?category=go&limit=10",
			want: "http://localhost:8080/rss?category=go&limit=10",
		},
		{
			name: "uppercase scheme",
			raw:  "HTTPS://example.com/",
			want: "https://example.com/",
		},
		{
			name:    "not a url",
			raw:     "not a url",
			wantErr: handlers.ErrInvalidURL,
		},
		{
			name:    "scheme without host",
			raw:     "http:///feed.xml",
			wantErr: handlers.ErrInvalidURL,
		},
		{
			name:    "syntax error",
			raw:     "http://[::1",
			wantErr: handlers.ErrInvalidURL,
		},
		{
			name:    "port out of range",
			raw:     "http://example.com:99999/",
			wantErr: handlers.ErrInvalidURL,
		},
		{
			name:    "port just above range",
			raw:     "https://example.com:65536/feed",
			wantErr: handlers.ErrInvalidURL,
		},
		{
			name:    "port out of range on ip literal",
			raw:     "http://[::1]:70000/",
			wantErr: handlers.ErrInvalidURL,
		},
		{
			name: "highest port",
			raw:  "http://example.com:65535/feed",
			want: "http://example.com:65535/feed",
		},
		{
			name: "empty port",
			raw:  "http://example.com:/feed",
			want: "http://example.com:/feed",
		},
		{
			name:    "ipv4 octets out of range",
			raw:     "http://256.256.256.256/",
			wantErr: handlers.ErrInvalidURL,
		},
		{
			name:    "ipv4 with too many octets",
			raw:     "http://1.2.3.4.5/",
			wantErr: handlers.ErrInvalidURL,
		},
		{
			name: "ipv4 host",
			raw:  "http://127.0.0.1:8080/rss",
			want: "http://127.0.0.1:8080/rss",
		},
		{
			name: "ipv6 host",
			raw:  "http://[::1]:8080/rss",
			want: "http://[::1]:8080/rss",
		},
		{
			name: "host with digits in labels",
			raw:  "https://web2.0calc.example/feed",
			want: "https://web2.0calc.example/feed",
		},
		{
			name:    "file scheme",
			raw:     "file://localhost/etc/passwd",
			wantErr: handlers.ErrUnsupportedScheme,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := handlers.ParseTargetURL(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
