package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/gridbase/client-go/internal/apierrors"
)

func newTestClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(serverURL)}, opts...)
	c, err := New("test-token", opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// Keep retry tests fast.
	c.retryInitial = 5 * time.Millisecond
	return c
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New("")
	if err == nil {
		t.Error("expected error for missing access token")
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New("test-token")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.httpClient.Timeout, DefaultTimeout)
	}
	if c.retryBudget != 0 {
		t.Errorf("retryBudget = %v, want 0 (retries disabled)", c.retryBudget)
	}
}

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/widget/123" {
			t.Errorf("path = %s, want /widget/123", r.URL.Path)
		}
		w.Write([]byte(`{"id":123,"name":"Foo"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	w, err := Get[widget](context.Background(), c, "widget/123")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if w.Name != "Foo" {
		t.Errorf("Name = %q, want Foo", w.Name)
	}
}

func TestGet_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found","errorCode":1006}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := Get[widget](context.Background(), c, "widget/999")
	if !errors.Is(err, apierrors.ErrNotFound) {
		t.Fatalf("errors.Is(err, ErrNotFound) = false, err = %v", err)
	}

	var apiErr *apierrors.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *apierrors.Error", err)
	}
	if apiErr.ErrorCode != 1006 {
		t.Errorf("ErrorCode = %d, want 1006", apiErr.ErrorCode)
	}
	if apiErr.Kind != apierrors.KindNotFound {
		t.Errorf("Kind = %v, want KindNotFound", apiErr.Kind)
	}
}

func TestPost_UnwrapsEnvelopeAndSuppressesIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var m map[string]json.RawMessage
		if err := json.Unmarshal(body, &m); err != nil {
			t.Errorf("request body is not an object: %v", err)
		}
		if _, present := m["id"]; present {
			t.Errorf("request body %s carries an identity field", body)
		}
		w.Write([]byte(`{"result":{"id":1,"name":"New"}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	created, err := Post[widget](context.Background(), c, "widgets", widget{ID: 99, Name: "New"})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if created.ID != 1 {
		t.Errorf("ID = %d, want server-assigned 1", created.ID)
	}
}

func TestPutList_Enveloped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		w.Write([]byte(`{"result":[{"id":1,"name":"a"},{"id":2,"name":"b"}]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	ws, err := PutList[widget](context.Background(), c, "widgets", []widget{{Name: "a"}, {Name: "b"}})
	if err != nil {
		t.Fatalf("PutList() error = %v", err)
	}
	if len(ws) != 2 || ws[0].ID != 1 {
		t.Errorf("PutList() = %+v", ws)
	}
}

func TestGetList_Paginated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pageSize"); got != "2" {
			t.Errorf("pageSize = %q, want 2", got)
		}
		w.Write([]byte(`{"page":1,"pageSize":2,"totalPages":1,"totalCount":2,"data":[{"id":1},{"id":2}]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	spec := &PageSpec{Page: 1, PageSize: 2}
	page, err := GetPage[widget](context.Background(), c, spec.Apply("widgets"))
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if page.TotalCount != 2 || len(page.Data) != 2 {
		t.Errorf("GetPage() = %+v", page)
	}
}

func TestDelete_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"forbidden","errorCode":11}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	err := Delete(context.Background(), c, "widget/5")
	if !errors.Is(err, apierrors.ErrForbidden) {
		t.Fatalf("errors.Is(err, ErrForbidden) = false, err = %v", err)
	}

	var apiErr *apierrors.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *apierrors.Error", err)
	}
	if apiErr.ErrorCode != 11 {
		t.Errorf("ErrorCode = %d, want 11", apiErr.ErrorCode)
	}
}

func TestDelete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":null}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	if err := Delete(context.Background(), c, "widget/5"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestEmptyPath_FailsFast(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := Get[widget](context.Background(), c, "  ")
	if !errors.Is(err, apierrors.ErrNotFound) {
		t.Fatalf("errors.Is(err, ErrNotFound) = false, err = %v", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("server saw %d request(s), want 0", n)
	}
}

func TestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want Bearer test-token", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want application/json", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if got := r.Header.Get("Assume-User"); got != "jane%40example.com" {
			t.Errorf("Assume-User = %q, want jane%%40example.com", got)
		}
		if r.Header.Get(headerRequestID) == "" {
			t.Error("missing client request id header")
		}
		if !strings.Contains(r.Header.Get("User-Agent"), "gridbase") {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{"result":{"id":1}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, WithAssumedUser("jane@example.com"))
	if _, err := Post[widget](context.Background(), c, "widgets", widget{Name: "x"}); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
}

func TestGet_NoBodyHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "" {
			t.Errorf("Content-Type = %q, want unset on GET", got)
		}
		if got := r.Header.Get("Assume-User"); got != "" {
			t.Errorf("Assume-User = %q, want unset", got)
		}
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	if _, err := Get[widget](context.Background(), c, "widget/1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
}

func TestSetAccessToken_AffectsNextRequest(t *testing.T) {
	var got atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	if _, err := Get[widget](context.Background(), c, "widget/1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Load() != "Bearer test-token" {
		t.Errorf("first Authorization = %v", got.Load())
	}

	c.SetAccessToken("rotated-token")
	if _, err := Get[widget](context.Background(), c, "widget/1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Load() != "Bearer rotated-token" {
		t.Errorf("second Authorization = %v, want rotated token", got.Load())
	}
}

func TestTokenSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer source-token" {
			t.Errorf("Authorization = %q, want Bearer source-token", got)
		}
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "source-token"})
	c, err := New("", WithBaseURL(server.URL), WithTokenSource(src))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := Get[widget](context.Background(), c, "widget/1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
}

func TestRetry_SucceedsAfterServiceUnavailable(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"message":"rate limited","errorCode":4003}`))
			return
		}
		w.Write([]byte(`{"id":7}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, WithRetryBudget(10*time.Second))
	w, err := Get[widget](context.Background(), c, "widget/7")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if w.ID != 7 {
		t.Errorf("ID = %d, want 7", w.ID)
	}
	if n := attempts.Load(); n != 4 {
		t.Errorf("attempts = %d, want exactly 4", n)
	}
}

func TestRetry_BudgetExhausted(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"rate limited","errorCode":4003}`))
	}))
	defer server.Close()

	budget := 100 * time.Millisecond
	c := newTestClient(t, server.URL, WithRetryBudget(budget))

	start := time.Now()
	_, err := Get[widget](context.Background(), c, "widget/7")
	elapsed := time.Since(start)

	if !errors.Is(err, apierrors.ErrServiceUnavailable) {
		t.Fatalf("errors.Is(err, ErrServiceUnavailable) = false, err = %v", err)
	}
	if attempts.Load() < 2 {
		t.Errorf("attempts = %d, want retries within budget", attempts.Load())
	}
	// Budget plus one request latency, with generous slack for CI.
	if elapsed > budget+2*time.Second {
		t.Errorf("elapsed = %v, want bounded by budget %v", elapsed, budget)
	}
}

func TestNoRetryWithoutBudget(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := Get[widget](context.Background(), c, "widget/7")
	if !errors.Is(err, apierrors.ErrServiceUnavailable) {
		t.Fatalf("errors.Is(err, ErrServiceUnavailable) = false, err = %v", err)
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("attempts = %d, want exactly 1 without a budget", n)
	}
}

func TestOtherErrorsNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, WithRetryBudget(10*time.Second))
	_, err := Get[widget](context.Background(), c, "widget/7")
	if !errors.Is(err, apierrors.ErrInvalidRequest) {
		t.Fatalf("errors.Is(err, ErrInvalidRequest) = false for 500, err = %v", err)
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("attempts = %d, want exactly 1 for a terminal error", n)
	}
}

func TestTransportError_NotRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := newTestClient(t, server.URL, WithRetryBudget(10*time.Second))

	start := time.Now()
	_, err := Get[widget](context.Background(), c, "widget/1")
	if err == nil {
		t.Fatal("expected transport error")
	}

	var tErr *apierrors.TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("error type = %T, want *apierrors.TransportError", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("transport failure took too long; was it retried?")
	}
}

func TestMethodNotAllowed_ReportsInvalidRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"message":"no such method"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := Get[widget](context.Background(), c, "widget/1")
	if !errors.Is(err, apierrors.ErrInvalidRequest) {
		t.Fatalf("errors.Is(err, ErrInvalidRequest) = false for 405, err = %v", err)
	}
}

func TestUnknownStatus_Unclassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"message":"teapot","errorCode":418,"refId":"ref-1"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := Get[widget](context.Background(), c, "widget/1")

	var apiErr *apierrors.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *apierrors.Error", err)
	}
	if apiErr.Kind != apierrors.KindUnclassified {
		t.Errorf("Kind = %v, want KindUnclassified", apiErr.Kind)
	}
	if apiErr.Message != "teapot" || apiErr.RefID != "ref-1" {
		t.Errorf("payload not carried: %+v", apiErr)
	}
}

func TestMalformedSuccessBody_SerializationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := Get[widget](context.Background(), c, "widget/1")

	var serErr *apierrors.SerializationError
	if !errors.As(err, &serErr) {
		t.Fatalf("error type = %T, want *apierrors.SerializationError", err)
	}
}

func TestMalformedErrorBody_SerializationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`<html>gateway sadness</html>`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := Get[widget](context.Background(), c, "widget/1")

	var serErr *apierrors.SerializationError
	if !errors.As(err, &serErr) {
		t.Fatalf("error type = %T, want *apierrors.SerializationError", err)
	}
}

func TestEmptyErrorBody_StillClassifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := Get[widget](context.Background(), c, "widget/1")
	if !errors.Is(err, apierrors.ErrNotAuthorized) {
		t.Fatalf("errors.Is(err, ErrNotAuthorized) = false, err = %v", err)
	}
}
