package cli

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/modshift/modshift/internal/logging"
)

func TestNewRootCmdSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"migrate", "scan", "check-update", "version"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestVerboseFlagEnablesDebugLevel(t *testing.T) {
	defer func() {
		verbose = false
		logging.SetGlobalLevel(zerolog.InfoLevel)
	}()

	verbose = true
	cmd := NewRootCmd()
	cmd.PersistentPreRun(cmd, nil)

	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("global level = %v, want %v", zerolog.GlobalLevel(), zerolog.DebugLevel)
	}
}
