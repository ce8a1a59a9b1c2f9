package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[string]()
	var got []string
	cancel := bus.Subscribe(func(s string) { got = append(got, s) })
	bus.Publish("hello")
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("expected hello got %v", got)
	}
	cancel()
	bus.Publish("again")
	if len(got) != 1 {
		t.Fatalf("handler called after cancel: %v", got)
	}
}

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := New[int]()
	var order []string
	bus.Subscribe(func(int) { order = append(order, "first") })
	bus.Subscribe(func(int) { order = append(order, "second") })
	bus.Publish(1)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestBusClose(t *testing.T) {
	bus := New[int]()
	calls := 0
	bus.Subscribe(func(int) { calls++ })
	bus.Close()
	bus.Publish(1)
	if calls != 0 {
		t.Fatalf("expected no delivery after close")
	}
	cancel := bus.Subscribe(func(int) { calls++ })
	cancel()
	if bus.Len() != 0 {
		t.Fatalf("closed bus accepted subscription")
	}
}

func TestBusCancelTwice(t *testing.T) {
	bus := New[float64]()
	cancel := bus.Subscribe(func(float64) {})
	cancel()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on second cancel: %v", r)
		}
	}()
	cancel()
}
