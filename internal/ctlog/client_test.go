package ctlog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, handler http.Handler, terms []string) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{
		BaseURL:           server.URL,
		Terms:             terms,
		Window:            6 * time.Hour,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000, // keep tests fast
	}, zap.NewNop().Sugar())
	client.now = func() time.Time { return fixedNow }

	return client, server
}

func TestFetchCandidates(t *testing.T) {
	var gotQuery, gotUA string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")

		fmt.Fprint(w, `[
			{
				"common_name": "Secure-Login.Example.com",
				"name_value": "a.login.net\n*.wild.example\nA.LOGIN.NET",
				"not_before": "2025-06-01T10:30:00.123"
			},
			{
				"common_name": "stale-login.example.org",
				"name_value": "",
				"not_before": "2025-05-20T00:00:00"
			},
			{
				"common_name": "localhost",
				"name_value": "",
				"not_before": "2025-06-01T11:00:00"
			}
		]`)
	})

	client, _ := newTestClient(t, handler, []string{"login"})

	domains, err := client.FetchCandidates(context.Background())
	if err != nil {
		t.Fatalf("FetchCandidates: %v", err)
	}

	if gotQuery != "%login%" {
		t.Errorf("query = %q, want %%login%%", gotQuery)
	}
	if gotUA != defaultUserAgent {
		t.Errorf("user agent = %q, want %q", gotUA, defaultUserAgent)
	}

	// SANs come before the common name; wildcard, stale and dotless names
	// are dropped; case duplicates collapse.
	want := []string{"a.login.net", "secure-login.example.com"}
	if !reflect.DeepEqual(domains, want) {
		t.Fatalf("domains = %v, want %v", domains, want)
	}
}

func TestFetchCandidates_FailedTermIsSkipped(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "%bank%" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `[{"common_name": "verify-account.net", "name_value": "", "not_before": "2025-06-01T11:00:00"}]`)
	})

	client, _ := newTestClient(t, handler, []string{"bank", "verify"})

	domains, err := client.FetchCandidates(context.Background())
	if err != nil {
		t.Fatalf("a failing term must not fail the fetch: %v", err)
	}
	if !reflect.DeepEqual(domains, []string{"verify-account.net"}) {
		t.Fatalf("domains = %v", domains)
	}
}

func TestFetchCandidates_CanceledContext(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	client, _ := newTestClient(t, handler, []string{"login"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.FetchCandidates(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRecentEnough(t *testing.T) {
	cutoff := fixedNow.Add(-6 * time.Hour)

	tests := []struct {
		name      string
		notBefore string
		want      bool
	}{
		{name: "inside window", notBefore: "2025-06-01T10:00:00", want: true},
		{name: "inside window with fraction", notBefore: "2025-06-01T10:00:00.999", want: true},
		{name: "space separated", notBefore: "2025-06-01 10:00:00", want: true},
		{name: "outside window", notBefore: "2025-05-31T00:00:00", want: false},
		{name: "exactly at cutoff", notBefore: "2025-06-01T06:00:00", want: true},
		{name: "empty passes through", notBefore: "", want: true},
		{name: "garbage passes through", notBefore: "not-a-date", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recentEnough(tt.notBefore, cutoff); got != tt.want {
				t.Errorf("recentEnough(%q) = %v, want %v", tt.notBefore, got, tt.want)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "lowercases and trims", input: "  Secure-Login.Example.COM ", want: "secure-login.example.com", ok: true},
		{name: "wildcard rejected", input: "*.example.com", ok: false},
		{name: "no dot rejected", input: "localhost", ok: false},
		{name: "empty rejected", input: "", ok: false},
		{name: "unicode converts to punycode", input: "pаypal.com", want: "xn--pypal-4ve.com", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeName(tt.input)
			if ok != tt.ok {
				t.Fatalf("normalizeName(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("normalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
