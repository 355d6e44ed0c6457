package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aristide1997/version-vault/internal/store"
	"github.com/aristide1997/version-vault/internal/token"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(store.NewMemoryStore(), token.NewService([]byte("test-secret")))
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func request(t *testing.T, ts *httptest.Server, method, path string, query url.Values, auth string) (*http.Response, []byte) {
	t.Helper()

	u := ts.URL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequest(method, u, nil)
	if err != nil {
		t.Fatal(err)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decoding %q: %v", body, err)
	}
	return v
}

func TestEndToEnd(t *testing.T) {
	ts := newTestServer(t)

	resp, body := request(t, ts, "POST", CreateAppRoute, url.Values{"app_name": {"TestApp"}}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, body)
	}
	created := decode[CreateResponse](t, body)
	if created.AppName != "TestApp" || created.Version != "0.1.0" {
		t.Fatalf("create body = %+v", created)
	}
	if created.Token != "" {
		t.Fatal("non-secure create returned a token")
	}

	resp, body = request(t, ts, "POST", "/TestApp/bump", url.Values{"type": {"minor"}}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bump status = %d, body %s", resp.StatusCode, body)
	}
	if got := decode[NewVersionResponse](t, body); got.NewVersion != "0.2.0" {
		t.Fatalf("bump new_version = %s, want 0.2.0", got.NewVersion)
	}

	resp, body = request(t, ts, "POST", "/TestApp/set", url.Values{"new_version": {"2.0.0"}}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set status = %d, body %s", resp.StatusCode, body)
	}
	if got := decode[NewVersionResponse](t, body); got.NewVersion != "2.0.0" {
		t.Fatalf("set new_version = %s, want 2.0.0", got.NewVersion)
	}

	resp, body = request(t, ts, "GET", "/TestApp/version", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, body %s", resp.StatusCode, body)
	}
	if got := decode[VersionResponse](t, body); got.Version != "2.0.0" {
		t.Fatalf("version = %s, want 2.0.0", got.Version)
	}

	// a version with leading zeros is valid and reads back exactly as sent
	resp, body = request(t, ts, "POST", "/TestApp/set", url.Values{"new_version": {"02.10.003"}}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set status = %d, body %s", resp.StatusCode, body)
	}
	_, body = request(t, ts, "GET", "/TestApp/version", nil, "")
	if got := decode[VersionResponse](t, body); got.Version != "02.10.003" {
		t.Fatalf("version = %s, want 02.10.003 byte-identical", got.Version)
	}
}

func TestSecureEndToEnd(t *testing.T) {
	ts := newTestServer(t)

	resp, body := request(t, ts, "POST", CreateAppRoute,
		url.Values{"app_name": {"SecureApp"}, "secure": {"true"}}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, body)
	}
	created := decode[CreateResponse](t, body)
	if created.Token == "" {
		t.Fatal("secure create returned no token")
	}

	// without Authorization header
	resp, _ = request(t, ts, "GET", "/SecureApp/version", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("ungated get status = %d, want 401", resp.StatusCode)
	}

	// with the raw token (no Bearer prefix, as the original clients send it)
	resp, body = request(t, ts, "GET", "/SecureApp/version", nil, created.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, body %s", resp.StatusCode, body)
	}
	if got := decode[VersionResponse](t, body); got.Version != "0.1.0" {
		t.Fatalf("version = %s, want 0.1.0", got.Version)
	}

	// with the Bearer prefix
	resp, _ = request(t, ts, "GET", "/SecureApp/version", nil, "Bearer "+created.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bearer-prefixed get status = %d", resp.StatusCode)
	}

	// tampered token
	resp, _ = request(t, ts, "GET", "/SecureApp/version", nil, created.Token+"x")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("tampered token status = %d, want 401", resp.StatusCode)
	}

	// token minted for another secure app
	_, otherBody := request(t, ts, "POST", CreateAppRoute,
		url.Values{"app_name": {"OtherApp"}, "secure": {"true"}}, "")
	other := decode[CreateResponse](t, otherBody)
	resp, _ = request(t, ts, "GET", "/SecureApp/version", nil, other.Token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("foreign token status = %d, want 401", resp.StatusCode)
	}

	// gated bump and set as well
	resp, _ = request(t, ts, "POST", "/SecureApp/bump", url.Values{"type": {"patch"}}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("ungated bump status = %d, want 401", resp.StatusCode)
	}
	resp, _ = request(t, ts, "POST", "/SecureApp/set", url.Values{"new_version": {"1.0.0"}}, created.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("authorized set status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateRejections(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name  string
		query url.Values
		want  int
	}{
		{name: "missing app_name", query: url.Values{}, want: http.StatusBadRequest},
		{name: "app_name with space", query: url.Values{"app_name": {"my app"}}, want: http.StatusBadRequest},
		{name: "app_name with at sign", query: url.Values{"app_name": {"app@home"}}, want: http.StatusBadRequest},
		{name: "app_name with star", query: url.Values{"app_name": {"app*"}}, want: http.StatusBadRequest},
		{name: "bad secure flag", query: url.Values{"app_name": {"App"}, "secure": {"maybe"}}, want: http.StatusBadRequest},
		{name: "zero expiry", query: url.Values{"app_name": {"App"}, "secure": {"true"}, "expiry_days": {"0"}}, want: http.StatusBadRequest},
		{name: "negative expiry", query: url.Values{"app_name": {"App"}, "secure": {"true"}, "expiry_days": {"-1"}}, want: http.StatusBadRequest},
		{name: "oversized expiry", query: url.Values{"app_name": {"App"}, "secure": {"true"}, "expiry_days": {"40000"}}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := request(t, ts, "POST", CreateAppRoute, tt.query, "")
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.want, body)
			}
		})
	}

	// duplicate create
	if resp, _ := request(t, ts, "POST", CreateAppRoute, url.Values{"app_name": {"Dup"}}, ""); resp.StatusCode != 201 {
		t.Fatal("setup create failed")
	}
	resp, _ := request(t, ts, "POST", CreateAppRoute, url.Values{"app_name": {"Dup"}}, "")
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate create status = %d, want 409", resp.StatusCode)
	}
}

func TestOperationRejections(t *testing.T) {
	ts := newTestServer(t)
	request(t, ts, "POST", CreateAppRoute, url.Values{"app_name": {"App"}}, "")

	tests := []struct {
		name   string
		method string
		path   string
		query  url.Values
		want   int
	}{
		{name: "get missing app", method: "GET", path: "/Nope/version", want: http.StatusNotFound},
		{name: "bump missing app", method: "POST", path: "/Nope/bump", query: url.Values{"type": {"major"}}, want: http.StatusNotFound},
		{name: "set missing app", method: "POST", path: "/Nope/set", query: url.Values{"new_version": {"1.0.0"}}, want: http.StatusNotFound},
		{name: "bump invalid type", method: "POST", path: "/App/bump", query: url.Values{"type": {"huge"}}, want: http.StatusBadRequest},
		{name: "bump missing type", method: "POST", path: "/App/bump", want: http.StatusBadRequest},
		{name: "set missing version", method: "POST", path: "/App/set", want: http.StatusBadRequest},
		{name: "set malformed version", method: "POST", path: "/App/set", query: url.Values{"new_version": {"1..0"}}, want: http.StatusBadRequest},
		{name: "set v-prefixed version", method: "POST", path: "/App/set", query: url.Values{"new_version": {"v1.0.0"}}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := request(t, ts, tt.method, tt.path, tt.query, "")
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.want, body)
			}
		})
	}

	// rejected set must not mutate stored state
	_, body := request(t, ts, "GET", "/App/version", nil, "")
	if got := decode[VersionResponse](t, body); got.Version != "0.1.0" {
		t.Errorf("version after rejected sets = %s, want 0.1.0", got.Version)
	}
}

func TestResponseEnvelope(t *testing.T) {
	ts := newTestServer(t)

	// success: JSON object with fixed headers
	resp, body := request(t, ts, "POST", CreateAppRoute, url.Values{"app_name": {"App"}}, "")
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cors := resp.Header.Get("Access-Control-Allow-Origin"); cors != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", cors)
	}
	if resp.Header.Get("X-Correlation-ID") == "" {
		t.Error("missing correlation ID header")
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "{") {
		t.Errorf("success body is not a JSON object: %s", body)
	}

	// failure: short plain-text message, same fixed headers
	resp, body = request(t, ts, "GET", "/Nope/version", nil, "")
	if cors := resp.Header.Get("Access-Control-Allow-Origin"); cors != "*" {
		t.Errorf("error Access-Control-Allow-Origin = %q", cors)
	}
	if strings.HasPrefix(strings.TrimSpace(string(body)), "{") {
		t.Errorf("error body should be plain text, got %s", body)
	}

	// auth errors never leak the failure sub-reason
	request(t, ts, "POST", CreateAppRoute, url.Values{"app_name": {"Sec"}, "secure": {"true"}}, "")
	resp, body = request(t, ts, "GET", "/Sec/version", nil, "complete-garbage")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) != "Unauthorized" {
		t.Errorf("auth error body = %q, want bare Unauthorized", body)
	}
}

func TestHealthAndAbout(t *testing.T) {
	ts := newTestServer(t)

	resp, body := request(t, ts, "GET", HealthCheckRoute, nil, "")
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}

	resp, body = request(t, ts, "GET", AboutRoute, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("about status = %d", resp.StatusCode)
	}
	var info map[string]any
	if err := json.Unmarshal(body, &info); err != nil {
		t.Errorf("about body not JSON: %s", body)
	}
}
