package main

import (
	"testing"

	"github.com/getsentry/sentry-go"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/config"
)

func TestInitSentry(t *testing.T) {
	if err := initSentry(&config.Config{}); err != nil {
		t.Fatalf("init without dsn: %v", err)
	}
	if sentry.CurrentHub().Client() != nil {
		t.Fatal("client configured without a dsn")
	}

	t.Cleanup(func() { sentry.CurrentHub().BindClient(nil) })
	if err := initSentry(&config.Config{SentryDSN: "https://key@sentry.example.com/1", AppEnv: "test"}); err != nil {
		t.Fatalf("init with dsn: %v", err)
	}
	client := sentry.CurrentHub().Client()
	if client == nil || client.Options().Environment != "test" {
		t.Fatal("client not configured from config")
	}
}
