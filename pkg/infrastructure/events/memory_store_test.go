package events

import (
	"testing"
)

type recordingHandler struct {
	types  map[string]bool
	events []Event
}

func newRecordingHandler(types ...string) *recordingHandler {
	h := &recordingHandler{types: make(map[string]bool)}
	for _, t := range types {
		h.types[t] = true
	}
	return h
}

func (h *recordingHandler) Handle(event Event) error {
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return h.types[eventType]
}

func TestInMemoryEventStore_AppendAssignsVersions(t *testing.T) {
	store := NewInMemoryEventStore()

	for i := 0; i < 3; i++ {
		if err := store.AppendEvent("plan-1", NewEvent(OrderPlannedEvent, "plan-1", i)); err != nil {
			t.Fatalf("AppendEvent failed: %v", err)
		}
	}

	stream, err := store.ReadEvents("plan-1", 0)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(stream) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(stream))
	}
	for i, event := range stream {
		if event.Version() != i+1 {
			t.Errorf("Event %d: expected version %d, got %d", i, i+1, event.Version())
		}
	}
}

func TestInMemoryEventStore_ReadFromVersion(t *testing.T) {
	store := NewInMemoryEventStore()
	for i := 0; i < 5; i++ {
		if err := store.AppendEvent("plan-1", NewEvent(OrderPlannedEvent, "plan-1", i)); err != nil {
			t.Fatalf("AppendEvent failed: %v", err)
		}
	}

	tail, err := store.ReadEvents("plan-1", 4)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(tail) != 2 {
		t.Fatalf("Expected 2 events from version 4, got %d", len(tail))
	}
	if tail[0].Version() != 4 {
		t.Errorf("Expected first version 4, got %d", tail[0].Version())
	}

	empty, err := store.ReadEvents("plan-1", 10)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no events past the stream end, got %d", len(empty))
	}
}

func TestInMemoryEventStore_StreamsAreIndependent(t *testing.T) {
	store := NewInMemoryEventStore()
	if err := store.AppendEvent("plan-1", NewEvent(RunStartedEvent, "plan-1", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	if err := store.AppendEvent("plan-2", NewEvent(RunStartedEvent, "plan-2", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}

	one, _ := store.ReadEvents("plan-1", 0)
	if len(one) != 1 || one[0].Version() != 1 {
		t.Errorf("Expected plan-1 stream with single version-1 event, got %v", one)
	}

	all, err := store.ReadAllEvents(0)
	if err != nil {
		t.Fatalf("ReadAllEvents failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 events globally, got %d", len(all))
	}
}

func TestInMemoryEventStore_SubscribersNotifiedSynchronously(t *testing.T) {
	store := NewInMemoryEventStore()
	handler := newRecordingHandler(OrderPlannedEvent)
	if err := store.Subscribe([]string{OrderPlannedEvent}, handler); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := store.AppendEvent("plan-1", NewEvent(OrderPlannedEvent, "plan-1", "first")); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	if err := store.AppendEvent("plan-1", NewEvent(RunCompletedEvent, "plan-1", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}

	if len(handler.events) != 1 {
		t.Fatalf("Expected 1 delivered event, got %d", len(handler.events))
	}
	if handler.events[0].Data() != "first" {
		t.Errorf("Expected payload to survive delivery, got %v", handler.events[0].Data())
	}
}

func TestInMemoryEventStore_Unsubscribe(t *testing.T) {
	store := NewInMemoryEventStore()
	handler := newRecordingHandler(OrderPlannedEvent)
	if err := store.Subscribe([]string{OrderPlannedEvent}, handler); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if err := store.Unsubscribe(handler); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}

	if err := store.AppendEvent("plan-1", NewEvent(OrderPlannedEvent, "plan-1", nil)); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	if len(handler.events) != 0 {
		t.Errorf("Expected no deliveries after unsubscribe, got %d", len(handler.events))
	}
}
