package model

import (
	"fmt"
	"time"
)

// NotificationType classifies a notification event.
type NotificationType string

const (
	NotificationPostLike              NotificationType = "POST_LIKE"
	NotificationPostFavorite          NotificationType = "POST_FAVORITE"
	NotificationPostComment           NotificationType = "POST_COMMENT"
	NotificationCommentReply          NotificationType = "COMMENT_REPLY"
	NotificationCommentLike           NotificationType = "COMMENT_LIKE"
	NotificationReplyLike             NotificationType = "REPLY_LIKE"
	NotificationFriendRequest         NotificationType = "FRIEND_REQUEST"
	NotificationFriendRequestAccepted NotificationType = "FRIEND_REQUEST_ACCEPTED"
	NotificationFriendRequestRejected NotificationType = "FRIEND_REQUEST_REJECTED"
	NotificationFriendDelete          NotificationType = "FRIEND_DELETE"
	NotificationFollow                NotificationType = "FOLLOW"
	NotificationUnfollow              NotificationType = "UNFOLLOW"
	NotificationPrivateMessage        NotificationType = "PRIVATE_MESSAGE"
	NotificationSystem                NotificationType = "SYSTEM"
)

var notificationTypes = map[NotificationType]struct{}{
	NotificationPostLike:              {},
	NotificationPostFavorite:          {},
	NotificationPostComment:           {},
	NotificationCommentReply:          {},
	NotificationCommentLike:           {},
	NotificationReplyLike:             {},
	NotificationFriendRequest:         {},
	NotificationFriendRequestAccepted: {},
	NotificationFriendRequestRejected: {},
	NotificationFriendDelete:          {},
	NotificationFollow:                {},
	NotificationUnfollow:              {},
	NotificationPrivateMessage:        {},
	NotificationSystem:                {},
}

// IsValid reports whether t is a known notification type.
func (t NotificationType) IsValid() bool {
	_, ok := notificationTypes[t]
	return ok
}

// NormalizeNotificationType maps an unrecognized type name to SYSTEM.
func NormalizeNotificationType(raw string) NotificationType {
	t := NotificationType(raw)
	if !t.IsValid() {
		return NotificationSystem
	}
	return t
}

var notificationMessageTemplates = map[NotificationType]string{
	NotificationPostLike:              "%s liked your post",
	NotificationPostFavorite:          "%s favorited your post",
	NotificationPostComment:           "%s commented on your post",
	NotificationCommentReply:          "%s replied to your comment",
	NotificationCommentLike:           "%s liked your comment",
	NotificationReplyLike:             "%s liked your reply",
	NotificationFriendRequest:         "%s sent you a friend request",
	NotificationFriendRequestAccepted: "%s accepted your friend request",
	NotificationFriendRequestRejected: "%s declined your friend request",
	NotificationFriendDelete:          "%s removed you from their friends",
	NotificationFollow:                "%s started following you",
	NotificationUnfollow:              "%s unfollowed you",
}

// DefaultMessage composes the human-readable text for an event whose
// trigger supplied none. Types without a template return "".
func (t NotificationType) DefaultMessage(senderName string) string {
	tmpl, ok := notificationMessageTemplates[t]
	if !ok || senderName == "" {
		return ""
	}
	return fmt.Sprintf(tmpl, senderName)
}

// IsTransient reports whether events of this type bypass the durable log.
// Private messages have their own store; pushing them into the notification
// log would double-persist every chat line.
func (t NotificationType) IsTransient() bool {
	return t == NotificationPrivateMessage
}

// Notification is a persisted notification row in the durable log.
type Notification struct {
	ID               string           `json:"id"`
	Type             NotificationType `json:"type"`
	SenderID         string           `json:"sender_id"`
	ReceiverID       string           `json:"receiver_id"`
	Message          string           `json:"message"`
	ReferenceID      *string          `json:"reference_id,omitempty"`
	ReferenceExtraID *string          `json:"reference_extra_id,omitempty"`
	Read             bool             `json:"read"`
	CreatedAt        time.Time        `json:"created_at"`
}

// NotificationEvent is the wire shape pushed over SSE streams.
type NotificationEvent struct {
	ID               string           `json:"id,omitempty"`
	Type             NotificationType `json:"type"`
	SenderID         string           `json:"senderId"`
	ReceiverID       string           `json:"receiverId"`
	Message          string           `json:"message"`
	ReferenceID      string           `json:"referenceId,omitempty"`
	ReferenceExtraID string           `json:"referenceExtraId,omitempty"`
	Read             bool             `json:"read"`
	CreatedAt        time.Time        `json:"createdAt"`
	SenderNickname   string           `json:"senderNickname,omitempty"`
	SenderAvatar     string           `json:"senderAvatar,omitempty"`
}

// Unread stat categories reported to clients.
const (
	UnreadStatLikes    = "LIKES"
	UnreadStatComments = "COMMENTS"
	UnreadStatFollow   = "FOLLOW"
	UnreadStatRequests = "REQUESTS"
	UnreadStatAll      = "ALL"
)

// LikeNotificationTypes are the types counted under the LIKES badge.
var LikeNotificationTypes = []NotificationType{
	NotificationPostLike,
	NotificationPostFavorite,
	NotificationCommentLike,
	NotificationReplyLike,
}

// CommentNotificationTypes are the types counted under the COMMENTS badge.
var CommentNotificationTypes = []NotificationType{
	NotificationPostComment,
	NotificationCommentReply,
}

// FollowNotificationTypes are the types counted under the FOLLOW badge.
var FollowNotificationTypes = []NotificationType{
	NotificationFollow,
}
