package launcher

import (
	"testing"
	"time"
)

func TestNotificationVisibility(t *testing.T) {
	n := NewNotification()

	if n.IsVisible() {
		t.Error("new notification should not be visible")
	}

	n.Show("Test message", 50*time.Millisecond)
	if !n.IsVisible() {
		t.Error("notification should be visible after Show")
	}

	time.Sleep(60 * time.Millisecond)
	if n.IsVisible() {
		t.Error("notification should expire after its duration")
	}
}

func TestNotificationClear(t *testing.T) {
	n := NewNotification()
	n.ShowDefault("Another message")
	if !n.IsVisible() {
		t.Fatal("notification should be visible after ShowDefault")
	}

	n.Clear()
	if n.IsVisible() {
		t.Error("notification should not be visible after Clear")
	}
}

func TestNotificationReplace(t *testing.T) {
	n := NewNotification()
	n.Show("first", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	n.ShowDefault("second")
	if !n.IsVisible() {
		t.Error("Show after expiry should restart visibility")
	}
}
