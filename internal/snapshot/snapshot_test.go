package snapshot

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/metrics"
)

type item struct {
	ID    string `json:"id"`
	Price int64  `json:"price"`
}

type failingBackend struct {
	getErr error
	putErr error
	puts   int
}

func (f *failingBackend) Get(context.Context, string) ([]byte, error) {
	return nil, f.getErr
}

func (f *failingBackend) Put(context.Context, string, []byte) error {
	f.puts++
	return f.putErr
}

func newTestStore(t *testing.T, backend Backend) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: &buf})
	store, err := NewStore(StoreParams{
		Backend: backend,
		Logger:  logg,
		Metrics: metrics.NewStoreMetrics(prometheus.NewRegistry()),
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, &buf
}

func TestNewStoreRequiresBackend(t *testing.T) {
	if _, err := NewStore(StoreParams{}); err == nil {
		t.Fatal("expected error without backend")
	}
}

func TestLoadMissingReturnsFallback(t *testing.T) {
	store, buf := newTestStore(t, NewMemoryBackend())
	fallback := []item{{ID: "seed", Price: 1}}

	got, found := LoadFound(context.Background(), store, KeyProducts, fallback)
	if found {
		t.Fatal("expected missing key to report not found")
	}
	if len(got) != 1 || got[0].ID != "seed" {
		t.Fatalf("expected fallback, got %+v", got)
	}
	if buf.Len() != 0 {
		t.Fatalf("missing keys should not log, got %s", buf.String())
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, NewMemoryBackend())

	want := []item{{ID: "a", Price: 1200}, {ID: "b", Price: 5}}
	store.Save(ctx, KeyProducts, want)

	got := Load(ctx, store, KeyProducts, []item(nil))
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadCorruptFallsBackAndLogs(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	if err := backend.Put(ctx, KeyCategories, []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}
	store, buf := newTestStore(t, backend)

	got := Load(ctx, store, KeyCategories, []item{{ID: "default"}})
	if len(got) != 1 || got[0].ID != "default" {
		t.Fatalf("expected fallback for corrupt data, got %+v", got)
	}
	out := buf.String()
	if !strings.Contains(out, "snapshot load fell back to default") || !strings.Contains(out, `"reason":"decode"`) {
		t.Fatalf("expected warn log with decode reason, got %s", out)
	}
}

func TestLoadBackendErrorFallsBack(t *testing.T) {
	store, buf := newTestStore(t, &failingBackend{getErr: errors.New("connection refused")})

	if got := Load(context.Background(), store, KeyOrders, 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if !strings.Contains(buf.String(), `"reason":"backend"`) {
		t.Fatalf("expected backend reason in log, got %s", buf.String())
	}
}

func TestSaveSwallowsWriteErrors(t *testing.T) {
	backend := &failingBackend{putErr: errors.New("disk full")}
	store, buf := newTestStore(t, backend)

	store.Save(context.Background(), KeyOrders, []item{})
	if backend.puts != 1 {
		t.Fatalf("expected one write attempt, got %d", backend.puts)
	}
	if !strings.Contains(buf.String(), "snapshot write failed") {
		t.Fatalf("expected error log, got %s", buf.String())
	}

	if err := store.SaveErr(context.Background(), KeyOrders, []item{}); err == nil {
		t.Fatal("expected SaveErr to surface the write error")
	}
}

func TestSaveAllCombinesErrors(t *testing.T) {
	store, _ := newTestStore(t, &failingBackend{putErr: errors.New("down")})
	err := store.SaveAll(context.Background(), map[string]any{KeyOrders: 1, KeyProducts: 2})
	if err == nil || !strings.Contains(err.Error(), KeyOrders) || !strings.Contains(err.Error(), KeyProducts) {
		t.Fatalf("expected combined error naming both keys, got %v", err)
	}
}

func TestDecodeOr(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "value", raw: "42", want: 42},
		{name: "empty", raw: "", want: -1},
		{name: "null", raw: "null", want: -1},
		{name: "malformed", raw: "4x", want: -1, wantErr: true},
		{name: "wrong type", raw: `"42"`, want: -1, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeOr([]byte(tc.raw), -1)
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSessionKeysAndLabels(t *testing.T) {
	key := SessionKey("abc-123", SessionCart)
	if key != "session:abc-123:cart" {
		t.Fatalf("unexpected session key %q", key)
	}
	if got := KeyLabel(key); got != "session:cart" {
		t.Fatalf("expected collapsed label, got %q", got)
	}
	if got := KeyLabel(KeyProducts); got != KeyProducts {
		t.Fatalf("catalog keys should pass through, got %q", got)
	}
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	raw := []byte(`[1]`)
	if err := backend.Put(ctx, "k", raw); err != nil {
		t.Fatalf("put: %v", err)
	}
	raw[0] = 'x'
	got, err := backend.Get(ctx, "k")
	if err != nil || string(got) != "[1]" {
		t.Fatalf("expected stored copy, got %q err=%v", got, err)
	}
	backend.Delete("k")
	if _, err := backend.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
