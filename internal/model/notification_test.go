package model

import "testing"

func TestNormalizeNotificationType(t *testing.T) {
	if got := NormalizeNotificationType("FRIEND_REQUEST"); got != NotificationFriendRequest {
		t.Errorf("Known type should pass through, got %s", got)
	}
	if got := NormalizeNotificationType("SOMETHING_ELSE"); got != NotificationSystem {
		t.Errorf("Unknown type should normalize to SYSTEM, got %s", got)
	}
	if got := NormalizeNotificationType(""); got != NotificationSystem {
		t.Errorf("Empty type should normalize to SYSTEM, got %s", got)
	}
}

func TestDefaultMessage(t *testing.T) {
	if got := NotificationFollow.DefaultMessage("Alice"); got != "Alice started following you" {
		t.Errorf("Unexpected FOLLOW message: %q", got)
	}
	if got := NotificationFriendDelete.DefaultMessage("Alice"); got != "Alice removed you from their friends" {
		t.Errorf("Unexpected FRIEND_DELETE message: %q", got)
	}
	if got := NotificationSystem.DefaultMessage("Alice"); got != "" {
		t.Errorf("SYSTEM has no template, got %q", got)
	}
	if got := NotificationFollow.DefaultMessage(""); got != "" {
		t.Errorf("No sender name means no message, got %q", got)
	}
}

func TestIsTransient(t *testing.T) {
	if !NotificationPrivateMessage.IsTransient() {
		t.Error("PRIVATE_MESSAGE must bypass the durable log")
	}
	for _, typ := range []NotificationType{
		NotificationPostLike, NotificationFriendRequest, NotificationFollow, NotificationSystem,
	} {
		if typ.IsTransient() {
			t.Errorf("%s should be durable", typ)
		}
	}
}
