package selflog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/willibrandon/mtbridge/selflog"
)

func TestSelfLog(t *testing.T) {
	selflog.Disable()
	defer selflog.Disable()

	t.Run("disabled by default", func(t *testing.T) {
		if selflog.IsEnabled() {
			t.Fatal("expected selflog to be disabled")
		}
		selflog.Printf("[test] should not appear")
	})

	t.Run("enable with writer", func(t *testing.T) {
		var buf bytes.Buffer
		selflog.Enable(&buf)
		defer selflog.Disable()

		selflog.Printf("[bridge] property %q declined", "Order")

		output := buf.String()
		if !strings.Contains(output, `[bridge] property "Order" declined`) {
			t.Errorf("unexpected output: %s", output)
		}
		if !strings.Contains(output, time.Now().UTC().Format("2006-01-02")) {
			t.Error("expected timestamp in output")
		}
	})

	t.Run("enable with func", func(t *testing.T) {
		var messages []string
		selflog.EnableFunc(func(msg string) {
			messages = append(messages, msg)
		})
		defer selflog.Disable()

		selflog.Printf("[sink] write failed: %v", "disk full")

		if len(messages) != 1 {
			t.Fatalf("expected 1 message, got %d", len(messages))
		}
		if !strings.HasSuffix(messages[0], "[sink] write failed: disk full") {
			t.Errorf("unexpected message: %s", messages[0])
		}
	})

	t.Run("func replaces writer", func(t *testing.T) {
		var buf bytes.Buffer
		var calls int
		selflog.Enable(&buf)
		selflog.EnableFunc(func(string) { calls++ })
		defer selflog.Disable()

		selflog.Printf("[test] routed")
		if buf.Len() != 0 || calls != 1 {
			t.Errorf("expected only the func to receive output, buf=%q calls=%d", buf.String(), calls)
		}
	})

	t.Run("disable stops output", func(t *testing.T) {
		var buf bytes.Buffer
		selflog.Enable(&buf)
		selflog.Printf("[test] first")
		selflog.Disable()
		selflog.Printf("[test] second")

		if strings.Contains(buf.String(), "second") {
			t.Error("expected no output after disable")
		}
	})

	t.Run("nil targets ignored", func(t *testing.T) {
		selflog.Enable(nil)
		selflog.EnableFunc(nil)
		if selflog.IsEnabled() {
			t.Error("nil targets should not enable selflog")
		}
	})
}

func TestSyncWriter(t *testing.T) {
	var unsafeBuf bytes.Buffer
	selflog.Enable(selflog.Sync(&unsafeBuf))
	defer selflog.Disable()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			selflog.Printf("[goroutine-%d] test message", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(unsafeBuf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("expected 100 lines, got %d", len(lines))
	}
}

func TestEnableFromEnv(t *testing.T) {
	defer selflog.Disable()

	t.Run("empty leaves state", func(t *testing.T) {
		selflog.Disable()
		if err := selflog.EnableFromEnv(""); err != nil {
			t.Fatal(err)
		}
		if selflog.IsEnabled() {
			t.Error("expected selflog to stay disabled")
		}
	})

	t.Run("file destination", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "selflog.txt")
		if err := selflog.EnableFromEnv(path); err != nil {
			t.Fatal(err)
		}
		selflog.Printf("[test] to file")
		selflog.Disable()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "[test] to file") {
			t.Errorf("unexpected file content: %q", data)
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "dir", "selflog.txt")
		if err := selflog.EnableFromEnv(path); err == nil {
			t.Error("expected an error for an unopenable path")
		}
	})
}
