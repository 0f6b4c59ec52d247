package events

import (
	"errors"
	"testing"
	"time"

	"github.com/modshift/modshift/internal/progress"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(EventProgress)

	bus.PublishProgress(progress.Update{
		Text1:  progress.Ptr("Copying"),
		Value1: progress.Ptr(int64(50)),
		Max1:   progress.Ptr(int64(200)),
	})

	select {
	case received := <-ch:
		ev, ok := received.(*ProgressEvent)
		if !ok {
			t.Fatal("Expected ProgressEvent")
		}
		if ev.Update.Text1 == nil || *ev.Update.Text1 != "Copying" {
			t.Errorf("Expected text 'Copying', got %v", ev.Update.Text1)
		}
		if *ev.Update.Value1 != 50 || *ev.Update.Max1 != 200 {
			t.Error("Payload values did not survive the bus")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for event")
	}
}

func TestEventBus_WorkerLifecycle(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	startCh := bus.Subscribe(EventWorkerStarted)
	finishCh := bus.Subscribe(EventWorkerFinished)

	bus.PublishWorkerStarted()
	workerErr := errors.New("boom")
	bus.PublishWorkerFinished(workerErr)

	select {
	case <-startCh:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for started event")
	}

	select {
	case event := <-finishCh:
		finished, ok := event.(*WorkerFinishedEvent)
		if !ok {
			t.Fatal("Expected WorkerFinishedEvent")
		}
		if !errors.Is(finished.Err, workerErr) {
			t.Errorf("Expected captured error, got %v", finished.Err)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for finished event")
	}
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch1 := bus.Subscribe(EventLog)
	ch2 := bus.Subscribe(EventLog)

	bus.PublishLog(InfoLevel, "Test log", "test", nil)

	received1 := false
	received2 := false

	select {
	case <-ch1:
		received1 = true
	case <-time.After(100 * time.Millisecond):
	}

	select {
	case <-ch2:
		received2 = true
	case <-time.After(100 * time.Millisecond):
	}

	if !received1 || !received2 {
		t.Error("Not all subscribers received the event")
	}
}

func TestEventBus_DifferentEventTypes(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	progressCh := bus.Subscribe(EventProgress)
	logCh := bus.Subscribe(EventLog)

	bus.PublishProgress(progress.Update{})

	select {
	case <-progressCh:
		// Expected
	case <-time.After(100 * time.Millisecond):
		t.Error("Progress subscriber didn't receive event")
	}

	select {
	case <-logCh:
		t.Error("Log subscriber received wrong event type")
	case <-time.After(50 * time.Millisecond):
		// Expected - timeout means no event
	}
}

func TestEventBus_SubscribeAll(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	allCh := bus.SubscribeAll()

	bus.PublishProgress(progress.Update{})
	bus.PublishLog(InfoLevel, "msg", "stage", nil)

	count := 0
	for i := 0; i < 2; i++ {
		select {
		case <-allCh:
			count++
		case <-time.After(100 * time.Millisecond):
		}
	}

	if count != 2 {
		t.Errorf("Expected to receive 2 events, got %d", count)
	}
}

func TestEventBus_NonBlocking(t *testing.T) {
	bus := NewEventBus(2) // Small buffer
	defer bus.Close()

	ch := bus.Subscribe(EventProgress)

	// Fill the buffer well past capacity; Publish must not block
	for i := 0; i < 10; i++ {
		bus.PublishProgress(progress.Update{})
	}

	if bus.DroppedEventCount() == 0 {
		t.Error("Expected dropped events with a full buffer")
	}

	count := 0
	for {
		select {
		case <-ch:
			count++
		case <-time.After(10 * time.Millisecond):
			goto done
		}
	}
done:

	if count == 0 {
		t.Error("Should have received at least some events")
	}
}

func TestEventBus_Close(t *testing.T) {
	bus := NewEventBus(10)

	ch := bus.Subscribe(EventProgress)

	bus.Close()

	_, ok := <-ch
	if ok {
		t.Error("Channel should be closed after bus.Close()")
	}

	// Publishing after close should not panic
	bus.PublishProgress(progress.Update{})
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(EventProgress)
	bus.Unsubscribe(EventProgress, ch)

	bus.PublishProgress(progress.Update{})

	select {
	case <-ch:
		t.Error("Unsubscribed channel should not receive events")
	case <-time.After(50 * time.Millisecond):
		// Expected
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level %d: expected %s, got %s", tt.level, tt.expected, got)
		}
	}
}
