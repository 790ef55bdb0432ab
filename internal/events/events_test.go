package events

import (
	"testing"
	"time"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(EventPathChanged)

	bus.PublishPathChanged("Select file", "/data/eplustbl.htm")

	select {
	case received := <-ch:
		changed, ok := received.(*PathChangedEvent)
		if !ok {
			t.Fatal("Expected PathChangedEvent")
		}
		if changed.Path != "/data/eplustbl.htm" {
			t.Errorf("Expected path '/data/eplustbl.htm', got '%s'", changed.Path)
		}
		if changed.Selector != "Select file" {
			t.Errorf("Expected selector 'Select file', got '%s'", changed.Selector)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for event")
	}
}

func TestEventBus_DifferentEventTypes(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	stateCh := bus.Subscribe(EventToolState)
	pathCh := bus.Subscribe(EventPathChanged)

	bus.PublishToolState(ToolStateEvent{Tool: "temperature", OldState: "idle", NewState: "running"})

	select {
	case event := <-stateCh:
		state := event.(*ToolStateEvent)
		if state.NewState != "running" {
			t.Errorf("Expected new state 'running', got '%s'", state.NewState)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("State subscriber didn't receive event")
	}

	select {
	case <-pathCh:
		t.Error("Path subscriber received wrong event type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventBus_SubscribeAll(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	allCh := bus.SubscribeAll()

	bus.PublishToolState(ToolStateEvent{Tool: "temperature", OldState: "idle", NewState: "running"})
	bus.Publish(&ExportedEvent{
		BaseEvent: BaseEvent{EventType: EventExported, Time: time.Now()},
		Path:      "/out/time_bins.csv",
	})

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
	bus := NewEventBus(2)
	defer bus.Close()

	ch := bus.Subscribe(EventPathChanged)

	for i := 0; i < 10; i++ {
		bus.PublishPathChanged("Select file", "/tmp/a.htm")
	}

	if got := bus.GetDroppedEventCount(); got != 8 {
		t.Errorf("Expected 8 dropped events, got %d", got)
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
	if count != 2 {
		t.Errorf("Expected 2 buffered events, got %d", count)
	}
}

func TestEventBus_Close(t *testing.T) {
	bus := NewEventBus(10)

	ch := bus.Subscribe(EventToolState)

	bus.Close()

	if _, ok := <-ch; ok {
		t.Error("Channel should be closed after bus.Close()")
	}

	// Publishing after close should not panic
	bus.PublishToolState(ToolStateEvent{Tool: "temperature", OldState: "running", NewState: "idle"})

	// Subscribing after close yields a closed channel
	if _, ok := <-bus.Subscribe(EventPathChanged); ok {
		t.Error("Subscribe after Close should return a closed channel")
	}
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(EventExported)
	bus.Unsubscribe(EventExported, ch)

	bus.Publish(&ExportedEvent{BaseEvent: BaseEvent{EventType: EventExported, Time: time.Now()}})

	select {
	case <-ch:
		t.Error("Unsubscribed channel received an event")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var bus *EventBus
	bus.PublishPathChanged("Select directory", "/tmp")
}
