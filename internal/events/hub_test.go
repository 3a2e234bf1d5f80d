package events

import (
	"sync"
	"testing"
	"time"
)

func TestHub_PublishDelivers(t *testing.T) {
	hub := NewHub(4)
	_, first, unsubFirst := hub.Subscribe()
	defer unsubFirst()
	_, second, unsubSecond := hub.Subscribe()
	defer unsubSecond()

	hub.Publish(NoteChange{Type: NoteCreated, NoteID: 7})

	for i, ch := range []<-chan NoteChange{first, second} {
		select {
		case got := <-ch:
			if got.Type != NoteCreated || got.NoteID != 7 {
				t.Errorf("subscriber %d got %+v", i, got)
			}
			if got.Timestamp.IsZero() {
				t.Errorf("subscriber %d got zero timestamp", i)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(1)
	_, ch, unsub := hub.Subscribe()
	if hub.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", hub.Subscribers())
	}

	unsub()
	unsub()

	if _, ok := <-ch; ok {
		t.Error("channel still open after unsubscribe")
	}
	if hub.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", hub.Subscribers())
	}

	hub.Publish(NoteChange{Type: NoteDeleted, NoteID: 1})
}

func TestHub_PublishDoesNotBlockOnFullBuffer(t *testing.T) {
	hub := NewHub(1)
	_, ch, unsub := hub.Subscribe()
	defer unsub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Publish(NoteChange{Type: NoteUpdated, NoteID: int64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	if got := <-ch; got.NoteID != 0 {
		t.Errorf("first buffered change NoteID = %d, want 0", got.NoteID)
	}
}

func TestHub_ConcurrentSubscribeAndPublish(t *testing.T) {
	hub := NewHub(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, unsub := hub.Subscribe()
			unsub()
		}()
		go func(i int) {
			defer wg.Done()
			hub.Publish(NoteChange{Type: NoteUpdated, NoteID: int64(i)})
		}(i)
	}
	wg.Wait()

	if hub.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", hub.Subscribers())
	}
}
