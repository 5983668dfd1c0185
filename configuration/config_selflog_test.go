package configuration_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/willibrandon/mtbridge/configuration"
	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/selflog"
)

func TestConfigurationSelfLog(t *testing.T) {
	t.Run("unknown log level warning", func(t *testing.T) {
		var selflogBuf bytes.Buffer
		selflog.Enable(selflog.Sync(&selflogBuf))
		defer selflog.Disable()

		level, err := configuration.ParseLevel("SuperVerbose")
		if err == nil {
			t.Error("expected error for unknown level")
		}
		if level != core.InformationLevel {
			t.Errorf("expected Information level, got %v", level)
		}
		if !strings.Contains(selflogBuf.String(), "[configuration] unknown log level 'SuperVerbose'") {
			t.Errorf("expected unknown log level warning in selflog, got: %s", selflogBuf.String())
		}
	})

	t.Run("type mismatch warnings", func(t *testing.T) {
		var selflogBuf bytes.Buffer
		selflog.Enable(selflog.Sync(&selflogBuf))
		defer selflog.Disable()

		result := configuration.GetString(map[string]any{"path": 123}, "path", "/default/path")
		if result != "/default/path" {
			t.Errorf("expected default value, got %s", result)
		}
		if !strings.Contains(selflogBuf.String(), "[configuration] expected string for 'path', got int") {
			t.Errorf("expected type mismatch warning in selflog, got: %s", selflogBuf.String())
		}
	})

	t.Run("int parse failure warning", func(t *testing.T) {
		var selflogBuf bytes.Buffer
		selflog.Enable(selflog.Sync(&selflogBuf))
		defer selflog.Disable()

		result := configuration.GetInt(map[string]any{"port": "not-a-number"}, "port", 8080)
		if result != 8080 {
			t.Errorf("expected default value 8080, got %d", result)
		}
		if !strings.Contains(selflogBuf.String(), "[configuration] failed to parse 'port' value 'not-a-number' as int") {
			t.Errorf("expected parse warning in selflog, got: %s", selflogBuf.String())
		}
	})

	t.Run("duration parse failure warning", func(t *testing.T) {
		var selflogBuf bytes.Buffer
		selflog.Enable(selflog.Sync(&selflogBuf))
		defer selflog.Disable()

		got := configuration.GetDuration(map[string]any{"timeout": "soon"}, "timeout", 0)
		if got != 0 {
			t.Errorf("expected default duration, got %v", got)
		}
		if !strings.Contains(selflogBuf.String(), "as duration") {
			t.Errorf("expected duration warning in selflog, got: %s", selflogBuf.String())
		}
	})

	t.Run("silent when disabled", func(t *testing.T) {
		selflog.Disable()
		if got := configuration.GetBool(map[string]any{"on": "maybe"}, "on", true); !got {
			t.Error("expected default value")
		}
	})
}
