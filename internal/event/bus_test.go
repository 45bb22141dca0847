package event

import (
	"context"
	"testing"
	"time"

	"github.com/probeworks/lanscope/pkg/plugin"
	"go.uber.org/zap"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got []string
	bus.Subscribe("sweep.run.completed", func(_ context.Context, e plugin.Event) {
		got = append(got, e.Topic)
	})

	_ = bus.Publish(context.Background(), plugin.Event{
		Topic:     "sweep.run.completed",
		Source:    "sweep",
		Timestamp: time.Now(),
	})

	if len(got) != 1 || got[0] != "sweep.run.completed" {
		t.Fatalf("handler calls = %v, want one sweep.run.completed", got)
	}
}

func TestPublishSkipsOtherTopics(t *testing.T) {
	bus := NewBus(zap.NewNop())

	called := false
	bus.Subscribe("portscan.run.completed", func(context.Context, plugin.Event) {
		called = true
	})

	_ = bus.Publish(context.Background(), plugin.Event{Topic: "sweep.run.completed"})

	if called {
		t.Fatal("handler called for unrelated topic")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var calls int
	unsub := bus.Subscribe("t", func(context.Context, plugin.Event) { calls++ })

	_ = bus.Publish(context.Background(), plugin.Event{Topic: "t"})
	unsub()
	_ = bus.Publish(context.Background(), plugin.Event{Topic: "t"})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestSubscribeAllSeesEveryTopic(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var topics []string
	bus.SubscribeAll(func(_ context.Context, e plugin.Event) {
		topics = append(topics, e.Topic)
	})

	_ = bus.Publish(context.Background(), plugin.Event{Topic: "a"})
	_ = bus.Publish(context.Background(), plugin.Event{Topic: "b"})

	if len(topics) != 2 {
		t.Fatalf("topics = %v, want [a b]", topics)
	}
}

func TestPanickingHandlerDoesNotPoisonBus(t *testing.T) {
	bus := NewBus(zap.NewNop())

	bus.Subscribe("t", func(context.Context, plugin.Event) { panic("boom") })
	var calls int
	bus.Subscribe("t", func(context.Context, plugin.Event) { calls++ })

	_ = bus.Publish(context.Background(), plugin.Event{Topic: "t"})

	if calls != 1 {
		t.Fatalf("second handler calls = %d, want 1", calls)
	}
}
