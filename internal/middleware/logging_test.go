package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
)

type batchRequest struct {
	Items []string
}

func (r batchRequest) LogAttrs() []any { return []any{"items", len(r.Items)} }

type batchResponse struct {
	Accepted int
}

func (r batchResponse) LogAttrs() []any { return []any{"accepted", r.Accepted} }

type plainResponse struct{}

// captureLogs routes the default logger to a JSON buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var rec map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &rec); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	return rec
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		next      connect.UnaryFunc
		wantMsg   string
		wantLevel string
		wantAttrs map[string]any
		absent    []string
	}{
		{
			name: "success logs request and response attributes",
			next: func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return connect.NewResponse(&batchResponse{Accepted: 2}), nil
			},
			wantMsg:   "RPC ok",
			wantLevel: "INFO",
			wantAttrs: map[string]any{"items": float64(3), "accepted": float64(2)},
		},
		{
			name: "response without attributes",
			next: func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return connect.NewResponse(&plainResponse{}), nil
			},
			wantMsg:   "RPC ok",
			wantLevel: "INFO",
			wantAttrs: map[string]any{"items": float64(3)},
			absent:    []string{"accepted"},
		},
		{
			name: "connect error skips the typed nil response",
			next: func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				var resp *connect.Response[batchResponse]
				return resp, connect.NewError(connect.CodeAlreadyExists, errors.New("invoice inv-1: already exists"))
			},
			wantMsg:   "RPC error",
			wantLevel: "WARN",
			wantAttrs: map[string]any{"items": float64(3), "code": "already_exists", "error": "invoice inv-1: already exists"},
			absent:    []string{"accepted"},
		},
		{
			name: "plain error",
			next: func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return nil, errors.New("disk full")
			},
			wantMsg:   "RPC error",
			wantLevel: "ERROR",
			wantAttrs: map[string]any{"error": "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			handler := LoggingInterceptor()(tt.next)

			req := connect.NewRequest(&batchRequest{Items: []string{"a", "b", "c"}})
			if _, err := handler(context.Background(), req); (err != nil) != (tt.wantLevel != "INFO") {
				t.Fatalf("unexpected error result: %v", err)
			}

			rec := lastRecord(t, buf)
			if rec["msg"] != tt.wantMsg || rec["level"] != tt.wantLevel {
				t.Errorf("record = %s/%s, want %s/%s", rec["level"], rec["msg"], tt.wantLevel, tt.wantMsg)
			}
			if _, ok := rec["duration_ms"]; !ok {
				t.Error("missing duration_ms")
			}
			for k, want := range tt.wantAttrs {
				if rec[k] != want {
					t.Errorf("%s = %v, want %v", k, rec[k], want)
				}
			}
			for _, k := range tt.absent {
				if _, ok := rec[k]; ok {
					t.Errorf("unexpected attribute %s = %v", k, rec[k])
				}
			}
		})
	}
}
