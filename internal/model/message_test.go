package model

import "testing"

func TestRecalledMessageLosesContent(t *testing.T) {
	url := "http://storage/img.png"
	msg := PrivateMessage{
		ID:       "m1",
		SenderID: "alice",
		Type:     MessageTypeImage,
		Content:  "look at this",
		MediaURL: &url,
		Recalled: true,
	}

	ev := msg.ToEvent()
	if ev.Content != "" || ev.MediaURL != "" {
		t.Errorf("Recalled event must not expose content or media: %+v", ev)
	}
	if !ev.Recalled || ev.ID != "m1" {
		t.Errorf("Envelope fields should survive the recall: %+v", ev)
	}
}

func TestVisibleTo(t *testing.T) {
	msg := PrivateMessage{SenderID: "alice", ReceiverID: "bob", DeletedBySender: true}

	if msg.VisibleTo("alice") {
		t.Error("Sender deleted their copy")
	}
	if !msg.VisibleTo("bob") {
		t.Error("Receiver's copy is unaffected by the sender's delete")
	}
	if msg.VisibleTo("carol") {
		t.Error("Outsiders never see the message")
	}
}
