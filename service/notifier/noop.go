package notifier

import (
	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain/listing"
)

type noopNotifier struct{}

// NewNoopNotifier is used when no bot key is configured.
func NewNoopNotifier() listing.EventEmitter {
	return &noopNotifier{}
}

func (n *noopNotifier) Emit(c ctx.Ctx, ev listing.Event) {}
