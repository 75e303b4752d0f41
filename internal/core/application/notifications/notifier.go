package notifications

import (
	"context"
	"log/slog"

	"procurement/internal/core/ports"
)

// Notifier fans notifications out to a dispatcher after a command committed.
// A failed dispatch is logged and skipped: the write it reports on already
// happened and must not be undone.
type Notifier struct {
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

func NewNotifier(dispatcher ports.NotificationDispatcher, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		dispatcher: dispatcher,
		logger:     logger.With("component", "notifier"),
	}
}

// Notify dispatches every notification in order and returns how many were delivered.
func (n *Notifier) Notify(ctx context.Context, notifications ...ports.Notification) int {
	delivered := 0
	for _, notification := range notifications {
		if err := n.dispatcher.Dispatch(ctx, notification); err != nil {
			n.logger.ErrorContext(ctx, "failed to dispatch notification",
				"kind", notification.Kind,
				"order_id", notification.OrderID,
				"recipient", notification.Recipient,
				"error", err)
			continue
		}
		delivered++
	}
	return delivered
}
