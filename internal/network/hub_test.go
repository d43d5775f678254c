package network

import (
	"testing"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/api"
)

func TestRegisterAndSendTo(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("s1")

	b.SendTo("s1", api.ServerResponse{Type: "UPDATE", SessionID: "s1"})

	select {
	case msg := <-ch:
		if msg.SessionID != "s1" {
			t.Errorf("SessionID = %q, want s1", msg.SessionID)
		}
	default:
		t.Fatal("no message delivered")
	}
}

func TestSendToUnknownIsNoop(t *testing.T) {
	b := NewBroadcaster()
	// Не должно паниковать и блокировать
	b.SendTo("ghost", api.ServerResponse{Type: "UPDATE"})
}

func TestReregisterClosesOldChannel(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("s1")
	fresh := b.Register("s1")

	if _, ok := <-old; ok {
		t.Error("old channel should be closed on re-register")
	}

	b.SendTo("s1", api.ServerResponse{Type: "UPDATE"})
	select {
	case <-fresh:
	default:
		t.Error("fresh channel should receive messages")
	}
}

func TestUnregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("s1")
	b.Unregister("s1")

	if b.HasSubscriber("s1") {
		t.Error("HasSubscriber() = true after Unregister")
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unregister")
	}
	// Повторный Unregister - no-op
	b.Unregister("s1")
}

func TestBroadcast(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")

	b.Broadcast(api.ServerResponse{Type: "UPDATE"})

	for name, ch := range map[string]chan api.ServerResponse{"a": a, "c": c} {
		select {
		case <-ch:
		default:
			t.Errorf("subscriber %s did not receive broadcast", name)
		}
	}

	if b.SubscriberCount() != 2 {
		t.Errorf("SubscriberCount() = %d, want 2", b.SubscriberCount())
	}
}

func TestSendToFullChannelDoesNotBlock(t *testing.T) {
	b := NewBroadcaster()
	b.Register("s1")

	// Канал на 100 сообщений; 150 отправок не должны заблокировать
	for i := 0; i < 150; i++ {
		b.SendTo("s1", api.ServerResponse{Type: "UPDATE"})
	}
}
