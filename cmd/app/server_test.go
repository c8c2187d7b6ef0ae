package main

import (
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServeShutsDownOnSignal(t *testing.T) {
	app := &application{
		config: &Config{Port: ":0", Environment: "test"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	done := make(chan error, 1)
	go func() {
		done <- app.serve(":0")
	}()

	// give the listener and signal handler time to come up
	time.Sleep(200 * time.Millisecond)

	p, err := os.FindProcess(os.Getpid())
	assert.NoError(t, err)
	assert.NoError(t, p.Signal(syscall.SIGINT))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after SIGINT")
	}
}
