package message

import "errors"

var (
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotParticipant       = errors.New("user is not a participant of the conversation")
	ErrNotSender            = errors.New("only the sender can recall a message")
	ErrRecallWindowExpired  = errors.New("recall window has expired")
	ErrMediaNotAllowed      = errors.New("media requires friendship or a prior reply")
	ErrSelfMessage          = errors.New("cannot message yourself")
	ErrFieldRequired        = errors.New("field required")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
