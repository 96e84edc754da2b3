package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)
	require.NotNil(t, exporter)

	_, err = os.Stat(tracePath)
	require.NoError(t, err, "trace file should be created with parent dirs")

	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_WritesJSONL(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = exporter.Shutdown(context.Background()) })

	stubs := []tracetest.SpanStub{
		{Name: "registry.add_contact", StartTime: time.Now(), EndTime: time.Now().Add(time.Millisecond)},
		{Name: "registry.search_all", StartTime: time.Now(), EndTime: time.Now().Add(time.Millisecond)},
	}
	spans := make([]sdktrace.ReadOnlySpan, len(stubs))
	for i, stub := range stubs {
		spans[i] = stub.Snapshot()
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), spans))

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		names = append(names, record.Name)
	}
	require.NoError(t, scanner.Err())
	require.Equal(t, []string{"registry.add_contact", "registry.search_all"}, names)
}

func TestNewProvider_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	provider, err := NewProvider(cfg)
	require.NoError(t, err)
	require.False(t, provider.Enabled())
	require.NotNil(t, provider.Tracer())
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Exporter = "file"
	cfg.FilePath = filepath.Join(t.TempDir(), "traces.jsonl")

	provider, err := NewProvider(cfg)
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "registry.create_book")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	data, err := os.ReadFile(cfg.FilePath)
	require.NoError(t, err)
	require.Contains(t, string(data), "registry.create_book")
}
