package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// stubCompleter scripts the upstream reply.
type stubCompleter struct {
	reply string
	err   error
	calls int
	last  []Message
}

func (s *stubCompleter) Complete(_ context.Context, messages []Message) (string, error) {
	s.calls++
	s.last = messages
	return s.reply, s.err
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerProxiesOnTopicMessage(t *testing.T) {
	upstream := &stubCompleter{reply: "Sloveso je slovní druh vyjadřující děj."}
	h := NewHandler(NewFilter(), upstream)

	rec := postChat(t, h, `{"messages":[{"role":"user","content":"Co je to sloveso?"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reply != upstream.reply {
		t.Errorf("reply = %q, expected the upstream answer", resp.Reply)
	}
	if upstream.calls != 1 {
		t.Errorf("upstream called %d times, expected 1", upstream.calls)
	}
}

func TestHandlerOffTopicFixedReply(t *testing.T) {
	upstream := &stubCompleter{reply: "should not be used"}
	h := NewHandler(NewFilter(), upstream)

	rec := postChat(t, h, `{"messages":[{"role":"user","content":"Jaké bude počasí?"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reply != OffTopicReply {
		t.Errorf("reply = %q, expected the fixed off-topic reply", resp.Reply)
	}
	if upstream.calls != 0 {
		t.Errorf("off-topic message reached the upstream %d times", upstream.calls)
	}
}

func TestHandlerJudgesLastUserMessage(t *testing.T) {
	upstream := &stubCompleter{reply: "ok"}
	h := NewHandler(NewFilter(), upstream)

	// Earlier on-topic message, but the newest user turn is off topic.
	body := `{"messages":[
		{"role":"user","content":"Co je to sloveso?"},
		{"role":"assistant","content":"Sloveso je..."},
		{"role":"user","content":"A jaké bude počasí?"}
	]}`
	rec := postChat(t, h, body)

	var resp struct {
		Reply string `json:"reply"`
	}
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Reply != OffTopicReply {
		t.Errorf("reply = %q, expected the off-topic reply for the newest turn", resp.Reply)
	}
}

func TestHandlerUpstreamFailure(t *testing.T) {
	upstream := &stubCompleter{err: errors.New("rate limited")}
	h := NewHandler(NewFilter(), upstream)

	rec := postChat(t, h, `{"messages":[{"role":"user","content":"Co je to sloveso?"}]}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", rec.Code)
	}
}

func TestHandlerBadRequests(t *testing.T) {
	h := NewHandler(NewFilter(), &stubCompleter{})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"no messages", `{"messages":[]}`},
		{"no user message", `{"messages":[{"role":"assistant","content":"hi"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postChat(t, h, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400", rec.Code)
			}
		})
	}
}

func TestHandlerRejectsNonPost(t *testing.T) {
	h := NewHandler(NewFilter(), &stubCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", rec.Code)
	}
}

func TestHandlerForwardsFullConversation(t *testing.T) {
	upstream := &stubCompleter{reply: "ok"}
	h := NewHandler(NewFilter(), upstream)

	body := `{"messages":[
		{"role":"user","content":"Co je to sloveso?"},
		{"role":"assistant","content":"Sloveso je..."},
		{"role":"user","content":"A co příslovce?"}
	]}`
	postChat(t, h, body)

	if len(upstream.last) != 3 {
		t.Errorf("upstream received %d messages, expected the full conversation of 3", len(upstream.last))
	}
}
