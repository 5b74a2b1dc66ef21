package logging

import (
	"encoding/json"
	"log/slog"
	"testing"
)

// newBufferOnlyHandler builds a PGHandler without a flush loop so the
// buffer can be inspected.
func newBufferOnlyHandler() *PGHandler {
	return &PGHandler{sink: &pgSink{}}
}

func TestPGHandlerOnlyErrors(t *testing.T) {
	h := newBufferOnlyHandler()
	logger := slog.New(h)
	logger.Info("ignored")
	logger.Warn("ignored")
	logger.Error("kept")

	if len(h.sink.buffer) != 1 || h.sink.buffer[0].Message != "kept" {
		t.Fatalf("buffer = %+v", h.sink.buffer)
	}
}

func TestPGHandlerMapsColumns(t *testing.T) {
	h := newBufferOnlyHandler()
	logger := slog.New(h).With("request_id", "req-1")
	logger.Error("attachment delete failed",
		"sighting_id", "s-1",
		"blob_key", "s-1-0",
		"action", "reject",
		"error", "s3 down",
		"attempt", 2,
	)

	if len(h.sink.buffer) != 1 {
		t.Fatalf("buffer length = %d", len(h.sink.buffer))
	}
	entry := h.sink.buffer[0]
	if entry.SightingID != "s-1" || entry.BlobKey != "s-1-0" || entry.Action != "reject" || entry.Error != "s3 down" {
		t.Fatalf("unexpected columns %+v", entry)
	}
	if entry.RequestID != "req-1" {
		t.Fatalf("request_id from WithAttrs lost: %+v", entry)
	}

	var extra map[string]interface{}
	if err := json.Unmarshal(entry.Extra, &extra); err != nil {
		t.Fatalf("extra: %v", err)
	}
	if extra["attempt"] != float64(2) {
		t.Fatalf("extra = %v", extra)
	}
}

func TestPGHandlerFullBatchSignalsFlushLoop(t *testing.T) {
	h := &PGHandler{sink: &pgSink{kick: make(chan struct{}, 1)}}
	logger := slog.New(h)
	for i := 0; i < pgBatchSize*2; i++ {
		logger.Error("boom")
	}

	if got := len(h.sink.kick); got != 1 {
		t.Fatalf("pending flush signals = %d, want 1", got)
	}
	if got := len(h.sink.buffer); got != pgBatchSize*2 {
		t.Fatalf("buffer length = %d, want %d", got, pgBatchSize*2)
	}
}
