package friend

import "errors"

var (
	ErrRequestNotFound = errors.New("friend request not found")
	ErrRequestPending  = errors.New("a request between these users is already pending")
	ErrAlreadyFriends  = errors.New("users are already friends")
	ErrAlreadyResolved = errors.New("friend request already resolved")
	ErrNotReceiver     = errors.New("only the receiver can respond to a request")
	ErrNotFriends      = errors.New("users are not friends")
	ErrSelfAction      = errors.New("cannot target yourself")
	ErrFieldRequired   = errors.New("field required")
)
