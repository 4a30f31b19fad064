package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

const fakeToken = "123456:TEST-token-value"

type apiCall struct {
	Method string
	Form   url.Values
}

// fakeBotAPI is a minimal Bot API server. Responses are keyed by method;
// methods without an entry answer {"ok":true,"result":true}.
type fakeBotAPI struct {
	t      *testing.T
	srv    *httptest.Server
	mu     sync.Mutex
	calls  []apiCall
	result map[string]string
	fail   map[string]string
}

func newFakeBotAPI(t *testing.T) *fakeBotAPI {
	t.Helper()
	f := &fakeBotAPI{
		t: t,
		result: map[string]string{
			"getMe":       `{"id":1,"is_bot":true,"first_name":"Menu","username":"menu_test_bot"}`,
			"sendMessage": `{"message_id":10,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}`,
		},
		fail: map[string]string{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

// endpoint is the tgbotapi endpoint format pointing at the fake server.
func (f *fakeBotAPI) endpoint() string { return f.srv.URL + "/bot%s/%s" }

func (f *fakeBotAPI) serve(w http.ResponseWriter, r *http.Request) {
	prefix := "/bot" + fakeToken + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		return
	}
	method := strings.TrimPrefix(r.URL.Path, prefix)
	_ = r.ParseForm()

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: method, Form: r.PostForm})
	desc, failing := f.fail[method]
	result, ok := f.result[method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failing {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error_code": 400, "description": desc})
		return
	}
	if !ok {
		result = "true"
	}
	_, _ = w.Write([]byte(`{"ok":true,"result":` + result + `}`))
}

func (f *fakeBotAPI) callsFor(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeBotAPI) failWith(method, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method] = description
}
