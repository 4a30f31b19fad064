//go:build !integration

package web

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"telegram-menu-bot/internal/application"
	"telegram-menu-bot/internal/config"
	"telegram-menu-bot/internal/domain"
	"telegram-menu-bot/internal/domain/model"
	"telegram-menu-bot/internal/infra/i18n"
	"telegram-menu-bot/internal/infra/logging"
)

const testSecret = "123456:ABC-secret-token"

const startUpdate = `{"update_id":10,"message":{"message_id":1,"from":{"id":7,"is_bot":false,"first_name":"A"},"chat":{"id":42,"type":"private"},"date":0,"text":"/start","entities":[{"type":"bot_command","offset":0,"length":6}]}}`

const pressUpdate = `{"update_id":11,"callback_query":{"id":"cb-1","from":{"id":7,"is_bot":false,"first_name":"A"},"message":{"message_id":5,"chat":{"id":42,"type":"private"},"date":0},"chat_instance":"x","data":"category_cars"}}`

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

func newTestServer(t *testing.T, d Dispatcher, logger *zerolog.Logger) *Server {
	t.Helper()
	s, err := NewServer(d, testSecret, logger)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_Validation(t *testing.T) {
	if _, err := NewServer(nil, testSecret, nil); err == nil {
		t.Fatal("expected error for nil dispatcher")
	}
	if _, err := NewServer(&mockDispatcher{}, "", nil); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestWebhook_SecretMismatch(t *testing.T) {
	d := &mockDispatcher{}
	h := newTestServer(t, d, newTestLogger()).Handler()

	paths := []string{
		"/webhook/",
		"/webhook/wrong",
		"/webhook/" + testSecret + "x",
		"/webhook/" + testSecret + "/extra",
		"/webhook/" + strings.ToUpper(testSecret),
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			rec := post(h, p, startUpdate)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
			if rec.Body.Len() != 0 {
				t.Fatalf("expected empty body, got %q", rec.Body.String())
			}
		})
	}
	if n := len(d.calls()); n != 0 {
		t.Fatalf("dispatcher must not run on mismatch, ran %d times", n)
	}
}

func TestWebhook_MalformedPayload(t *testing.T) {
	d := &mockDispatcher{}
	h := newTestServer(t, d, newTestLogger()).Handler()

	bodies := []string{
		"", "{", "[]", "not json",
		startUpdate + "garbage",
		startUpdate + "{",
		`{"update_id":1}]]]`,
	}
	for _, body := range bodies {
		rec := post(h, "/webhook/"+testSecret, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
	if n := len(d.calls()); n != 0 {
		t.Fatalf("dispatcher must not run on malformed payload, ran %d times", n)
	}
}

func TestWebhook_OversizedPayload(t *testing.T) {
	d := &mockDispatcher{}
	h := newTestServer(t, d, newTestLogger()).Handler()

	body := `{"update_id":1,"message":{"text":"` + strings.Repeat("a", MaxUpdateBytes) + `"}}`
	rec := post(h, "/webhook/"+testSecret, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWebhook_DispatchesEvent(t *testing.T) {
	d := &mockDispatcher{}
	h := newTestServer(t, d, newTestLogger()).Handler()

	rec := post(h, "/webhook/"+testSecret, pressUpdate)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	calls := d.calls()
	if len(calls) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(calls))
	}
	ev := calls[0]
	if ev.Kind != model.EventButtonPress || ev.Data != application.IDCars || ev.MessageID != 5 || ev.UpdateID != 11 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestWebhook_UnsupportedUpdateIgnored(t *testing.T) {
	d := &mockDispatcher{}
	h := newTestServer(t, d, newTestLogger()).Handler()

	rec := post(h, "/webhook/"+testSecret, `{"update_id":3,"edited_message":{"message_id":1,"chat":{"id":1,"type":"private"},"date":0,"text":"x"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(d.calls()) != 0 {
		t.Fatal("unsupported update must not be dispatched")
	}
}

func TestWebhook_DeliveryFailureStillAcknowledged(t *testing.T) {
	d := &mockDispatcher{err: errors.Join(domain.ErrOutboundDelivery, errors.New("chat not found"))}
	h := newTestServer(t, d, newTestLogger()).Handler()

	rec := post(h, "/webhook/"+testSecret, startUpdate)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWebhook_RoutingErrors(t *testing.T) {
	h := newTestServer(t, &mockDispatcher{}, newTestLogger()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/webhook/"+testSecret, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET: expected 405, got %d", rec.Code)
	}

	rec = post(h, "/other", startUpdate)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path: expected 404, got %d", rec.Code)
	}
}

func TestWebhook_RecoversFromPanic(t *testing.T) {
	h := newTestServer(t, &mockDispatcher{panics: true}, newTestLogger()).Handler()

	rec := post(h, "/webhook/"+testSecret, startUpdate)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestWebhook_TraceHeader(t *testing.T) {
	h := newTestServer(t, &mockDispatcher{}, newTestLogger()).Handler()

	first := post(h, "/webhook/"+testSecret, startUpdate).Header().Get(TraceHeader)
	second := post(h, "/webhook/wrong", startUpdate).Header().Get(TraceHeader)
	if first == "" || second == "" {
		t.Fatalf("expected %s on every response, got %q and %q", TraceHeader, first, second)
	}
	if first == second {
		t.Fatalf("expected distinct trace ids, both were %q", first)
	}
}

func TestWebhook_LogRedactsSecret(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogConfig{Level: "debug", Format: "json"}, false)
	h := newTestServer(t, &mockDispatcher{}, logger).Handler()

	post(h, "/webhook/"+testSecret, startUpdate)
	post(h, "/webhook/"+testSecret, "{")

	out := buf.String()
	if !strings.Contains(out, "http_request") {
		t.Fatalf("expected request log line, got %s", out)
	}
	if strings.Contains(out, testSecret) {
		t.Fatalf("log leaks secret: %s", out)
	}
	if !strings.Contains(out, "trace_id") {
		t.Fatalf("expected trace_id in log: %s", out)
	}
}

func TestWebhook_StartEndToEnd(t *testing.T) {
	tr, err := i18n.NewTranslator(i18n.LocalesFS, "en")
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	menus, err := application.NewMenus(tr)
	if err != nil {
		t.Fatalf("menus: %v", err)
	}
	m := &recordingMessenger{}
	d, err := application.NewDispatcher(tr, menus, m, nil)
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	h := newTestServer(t, d, newTestLogger()).Handler()

	rec := post(h, "/webhook/"+testSecret, startUpdate)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(m.messages) != 1 {
		t.Fatalf("expected exactly one outbound message, got %d", len(m.messages))
	}
	got := m.messages[0]
	if got.ChatID != 42 || got.Text != tr.T("greeting") || got.Menu != menus.Main {
		t.Fatalf("unexpected message: %+v", got)
	}

	rec = post(h, "/webhook/"+testSecret, pressUpdate)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if m.edits != 1 || m.answers != 1 || len(m.messages) != 1 {
		t.Fatalf("expected one edit and one answer, got edits=%d answers=%d sends=%d", m.edits, m.answers, len(m.messages))
	}
}

func TestMetricsHandler(t *testing.T) {
	h := newTestServer(t, &mockDispatcher{}, newTestLogger()).Handler()
	post(h, "/webhook/wrong", "{}")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `webhook_requests_total{status="403"}`) {
		t.Fatalf("expected webhook counter in output")
	}
}
