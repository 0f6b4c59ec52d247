package progress

import (
	"testing"
)

func TestUpdate_ResolvedLegacyMapping(t *testing.T) {
	u := Update{
		Text:  Ptr("legacy text"),
		Value: Ptr(int64(50)),
		Max:   Ptr(int64(200)),
	}

	r := u.Resolved()

	if r.Text1 == nil || *r.Text1 != "legacy text" {
		t.Errorf("expected Text1 'legacy text', got %v", r.Text1)
	}
	if r.Value1 == nil || *r.Value1 != 50 {
		t.Errorf("expected Value1 50, got %v", r.Value1)
	}
	if r.Max1 == nil || *r.Max1 != 200 {
		t.Errorf("expected Max1 200, got %v", r.Max1)
	}
	if r.Text != nil || r.Value != nil || r.Max != nil {
		t.Error("legacy fields should be cleared after resolution")
	}
}

func TestUpdate_ResolvedPrimaryWins(t *testing.T) {
	u := Update{
		Text1: Ptr("primary"),
		Text:  Ptr("legacy"),
		Value: Ptr(int64(10)),
	}

	r := u.Resolved()

	if *r.Text1 != "primary" {
		t.Errorf("explicit primary text should win, got %q", *r.Text1)
	}
	if r.Value1 == nil || *r.Value1 != 10 {
		t.Error("legacy value should fill absent Value1")
	}
}

func TestUpdate_ResolvedEmpty(t *testing.T) {
	r := Update{}.Resolved()
	if r.Text1 != nil || r.Value1 != nil || r.Max1 != nil {
		t.Error("empty update should stay empty")
	}
}

func TestNoOpSink(t *testing.T) {
	var s Sink = NoOpSink{}
	// Must not panic on any payload
	s.UpdateProgress(Update{})
	s.UpdateProgress(Update{Text1: Ptr("x"), Value1: Ptr(int64(1)), Max1: Ptr(int64(0))})
}

func TestConsoleUI_NonTerminal(t *testing.T) {
	// Test processes have no TTY on stderr, so this exercises the
	// degraded text path end to end.
	ui := NewConsoleUI()
	if ui.IsTerminal() {
		t.Skip("test running with a TTY attached")
	}

	ui.UpdateProgress(Update{
		Text1:  Ptr("Migrating mods..."),
		Value1: Ptr(int64(10)),
		Max1:   Ptr(int64(100)),
	})
	ui.UpdateProgress(Update{
		Text2:  Ptr("ExampleMod (1/3)"),
		Value2: Ptr(int64(1)),
		Max2:   Ptr(int64(3)),
	})
	// max <= 0 must be guarded, not crash
	ui.UpdateProgress(Update{Value1: Ptr(int64(5)), Max1: Ptr(int64(0))})
	ui.Finish()

	if ui.Writer() == nil {
		t.Error("Writer should never be nil")
	}
}
