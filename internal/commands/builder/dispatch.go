package buildercmd

import (
	"github.com/goliatone/go-command/dispatcher"
)

// Subscribe registers the builder handlers on the global command dispatcher so
// callers can use dispatcher.Dispatch. The returned func removes both
// subscriptions. Handlers are not retried; a failed save must be resubmitted.
func Subscribe(applyEdits *ApplyEditsHandler, save *SaveSessionHandler) func() {
	unsubscribers := make([]func(), 0, 2)
	if applyEdits != nil {
		unsubscribers = append(unsubscribers, dispatcher.SubscribeCommand[ApplyEditsCommand](applyEdits).Unsubscribe)
	}
	if save != nil {
		unsubscribers = append(unsubscribers, dispatcher.SubscribeCommand[SaveSessionCommand](save).Unsubscribe)
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}
