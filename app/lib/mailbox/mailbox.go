package mailbox

import (
	"context"
)

//go:generate mockgen -package mailbox -source mailbox.go -destination mailbox_mock.go

type Dialer interface {
	Dial(ctx context.Context) (Mailbox, error)
}

// Mailbox is an authenticated session with a selected folder.
type Mailbox interface {
	// Search returns ids of unread messages whose subject contains marker.
	Search(ctx context.Context, marker string) ([]uint32, error)
	// Fetch returns the full raw message and marks it as read.
	Fetch(ctx context.Context, id uint32) ([]byte, error)
	Close() error
}
