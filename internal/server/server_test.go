package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amishk599/replydraft/internal/ai"
	"github.com/amishk599/replydraft/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProfile() model.Profile {
	return model.Profile{
		UserName:    "Alex",
		PhoneNumber: "555-0100",
		ResumeLink:  "https://example.com/cv",
		ResumeText:  "RESUME-TEXT",
		ProfileText: "ABOUT-TEXT",
		HomeRegion:  "India",
	}
}

// newUpstream fakes the generation service with a fixed status and body,
// recording the decoded request.
func newUpstream(t *testing.T, status int, body string, got *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, upstreamURL string) http.Handler {
	t.Helper()
	provider := ai.NewOllamaProvider(upstreamURL, "llama3", &http.Client{})
	drafter := ai.NewDrafter(testProfile(), provider, nil, discardLogger())
	return NewServer(drafter, discardLogger())
}

func postReply(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate_reply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) model.GenerateResponse {
	t.Helper()
	var resp model.GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestGenerateReply_RecruiterScenario(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"response":"Hi there,\n\nThanks for reaching out..."}`, nil)
	h := newTestServer(t, upstream.URL)

	w := postReply(t, h, `{"message":"Hi, are you open to a Senior Backend role in Bangalore?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if resp.Reply != "Hi there,\n\nThanks for reaching out..." || resp.Reason != model.ReasonRecruiter {
		t.Errorf("resp = %+v", resp)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestGenerateReply_SkipScenario(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"response":"SKIP_AUTOREPLY"}`, nil)
	h := newTestServer(t, upstream.URL)

	w := postReply(t, h, `{"message":"Check out my new course on cloud computing!"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Reply != "SKIP_AUTOREPLY" || resp.Reason != model.ReasonSkipped {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGenerateReply_TrimsReply(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"response":"  Hi John,\n\nSure.\n\nBest regards,\nAlex  "}`, nil)
	h := newTestServer(t, upstream.URL)

	resp := decodeResponse(t, postReply(t, h, `{"message":"hello"}`))
	if resp.Reply != "Hi John,\n\nSure.\n\nBest regards,\nAlex" {
		t.Errorf("Reply = %q", resp.Reply)
	}
}

func TestGenerateReply_ForwardsComposedPrompt(t *testing.T) {
	var got map[string]any
	upstream := newUpstream(t, http.StatusOK, `{"response":"ok"}`, &got)
	h := newTestServer(t, upstream.URL)

	w := postReply(t, h, `{"message":"MSG","thread_context":"THREAD","sender_headline":"HEADLINE"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if got["model"] != "llama3" {
		t.Errorf("model = %v, want llama3", got["model"])
	}
	if got["stream"] != false {
		t.Errorf("stream = %v, want false", got["stream"])
	}
	prompt, _ := got["prompt"].(string)
	for _, want := range []string{"RESUME-TEXT", "ABOUT-TEXT", "MSG", "THREAD", "HEADLINE"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateReply_MissingMessagePassesThrough(t *testing.T) {
	var got map[string]any
	upstream := newUpstream(t, http.StatusOK, `{"response":"SKIP_AUTOREPLY"}`, &got)
	h := newTestServer(t, upstream.URL)

	w := postReply(t, h, `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for missing message, got %d", w.Code)
	}
	if prompt, _ := got["prompt"].(string); !strings.Contains(prompt, "=== LATEST MESSAGE ===\n\n") {
		t.Error("expected empty latest message in prompt")
	}
}

func TestGenerateReply_UpstreamNon2xxIsBadGateway(t *testing.T) {
	upstream := newUpstream(t, http.StatusInternalServerError, `{"response":"fabricated"}`, nil)
	h := newTestServer(t, upstream.URL)

	w := postReply(t, h, `{"message":"hi"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestGenerateReply_UpstreamMalformedIsBadGateway(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `<html>oops</html>`, nil)
	h := newTestServer(t, upstream.URL)

	w := postReply(t, h, `{"message":"hi"}`)
	if w.Code != http.StatusBadGateway || w.Body.Len() != 0 {
		t.Fatalf("expected 502 with empty body, got %d %q", w.Code, w.Body.String())
	}
}

func TestGenerateReply_UpstreamUnreachableIsBadGateway(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()

	h := newTestServer(t, url)
	w := postReply(t, h, `{"message":"hi"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestGenerateReply_InvalidJSON(t *testing.T) {
	h := newTestServer(t, "http://127.0.0.1:1")

	w := postReply(t, h, `{"message":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// failingDrafter returns a non-upstream error.
type failingDrafter struct{}

func (failingDrafter) Draft(context.Context, model.GenerateRequest) (model.GenerateResponse, error) {
	return model.GenerateResponse{}, errors.New("template broke")
}

func TestGenerateReply_InternalErrorIs500(t *testing.T) {
	h := NewServer(failingDrafter{}, discardLogger())

	w := postReply(t, h, `{"message":"hi"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGenerateReply_WrongMethod(t *testing.T) {
	h := newTestServer(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/generate_reply", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := newTestServer(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodOptions, "/generate_reply", nil)
	req.Header.Set("Origin", "chrome-extension://abc")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	for _, hdr := range []string{"Access-Control-Allow-Origin", "Access-Control-Allow-Methods", "Access-Control-Allow-Headers"} {
		if got := w.Header().Get(hdr); got != "*" {
			t.Errorf("%s = %q, want *", hdr, got)
		}
	}
}

func TestCORS_HeadersOnErrorResponses(t *testing.T) {
	upstream := newUpstream(t, http.StatusServiceUnavailable, ``, nil)
	h := newTestServer(t, upstream.URL)

	w := postReply(t, h, `{"message":"hi"}`)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q on 502", got)
	}
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	h := newTestServer(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if id := w.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated request id = %q, want uuid", id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if id := w.Header().Get(RequestIDHeader); id != "abc-123" {
		t.Errorf("request id = %q, want echoed abc-123", id)
	}
}

func TestGenerateReply_ConcurrentRequestsIndependent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		msg := req.Prompt[strings.LastIndex(req.Prompt, "=== LATEST MESSAGE ===\n")+len("=== LATEST MESSAGE ===\n"):]
		msg = msg[:strings.Index(msg, "\n")]
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "echo " + msg})
	}))
	defer upstream.Close()
	h := newTestServer(t, upstream.URL)

	const n = 16
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			body, _ := json.Marshal(map[string]string{"message": "m" + string(rune('a'+i))})
			req := httptest.NewRequest(http.MethodPost, "/generate_reply", bytes.NewReader(body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			var resp model.GenerateResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				errs <- err
				return
			}
			if want := "echo m" + string(rune('a'+i)); resp.Reply != want {
				errs <- errors.New("got " + resp.Reply + ", want " + want)
				return
			}
			errs <- nil
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}
