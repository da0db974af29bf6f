package conversation

import "context"

// Reply is a transport-neutral outbound message. Keyboard rows render as
// discrete button choices; RemoveKeyboard clears any previous choice set.
type Reply struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
	HTML           bool
}

// Outbound delivers replies to a chat. The engine never touches the
// transport directly.
type Outbound interface {
	Send(ctx context.Context, chatID int64, r Reply) error
}
