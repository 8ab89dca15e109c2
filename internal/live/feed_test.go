package live

import (
	"testing"
	"time"

	"helmsman/internal/domain"
	"helmsman/internal/store"
)

func evt(symbol string) store.JournalEvent {
	return store.JournalEvent{
		Time: time.Now(), Type: store.JournalFill,
		Symbol: symbol, Side: domain.OrderSideBuy, Qty: 100, Price: 50,
	}
}

func TestFeedRecentRing(t *testing.T) {
	f := NewFeed(3)
	for _, s := range []string{"A", "B", "C", "D"} {
		f.Publish(evt(s))
	}

	recent := f.Recent()
	if len(recent) != 3 {
		t.Fatalf("Recent len = %d, want 3", len(recent))
	}
	for i, want := range []string{"B", "C", "D"} {
		if recent[i].Symbol != want {
			t.Errorf("Recent[%d] = %q, want %q (oldest dropped)", i, recent[i].Symbol, want)
		}
	}
}

func TestFeedSubscribeReceives(t *testing.T) {
	f := NewFeed(16)
	id, ch := f.Subscribe(4)
	defer f.Unsubscribe(id)

	f.Publish(evt("AAPL"))

	select {
	case got := <-ch:
		if got.Symbol != "AAPL" {
			t.Errorf("received %q, want AAPL", got.Symbol)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestFeedSlowSubscriberDoesNotBlock(t *testing.T) {
	f := NewFeed(16)
	id, ch := f.Subscribe(1)
	defer f.Unsubscribe(id)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			f.Publish(evt("AAPL"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber channel")
	}
	if len(ch) != 1 {
		t.Errorf("buffered events = %d, want 1 (rest dropped)", len(ch))
	}
}

func TestFeedUnsubscribeCloses(t *testing.T) {
	f := NewFeed(16)
	id, ch := f.Subscribe(4)
	f.Unsubscribe(id)

	if _, ok := <-ch; ok {
		t.Error("channel not closed after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	f.Publish(evt("AAPL"))
}
