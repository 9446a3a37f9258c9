// Package shell provides the headless user-facing services: notifications, navigation and icons.
package shell

import (
	"context"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
)

const maxRecords = 100

// Notifier confirms downloads against a size limit and records error modals
type Notifier struct {
	limit int64

	mu            sync.Mutex
	notifications []model.Notification
}

var _ interfaces.Notifier = (*Notifier)(nil)

// NewNotifier creates a Notifier. Downloads larger than limit bytes are declined; 0 accepts any size.
func NewNotifier(limit int64) *Notifier {
	return &Notifier{limit: limit}
}

// ConfirmDownloadSize accepts the download or returns ErrDownloadDeclined
func (n *Notifier) ConfirmDownloadSize(ctx context.Context, size *model.DownloadSize) error {
	if size == nil || n.limit <= 0 || size.Size <= n.limit {
		return nil
	}

	ctxlog.From(ctx).Info("Download declined by size limit",
		"size", size.Size,
		"limit", n.limit,
	)
	return goerr.Wrap(interfaces.ErrDownloadDeclined, "download is larger than the limit",
		goerr.V("size", size.Size),
		goerr.V("limit", n.limit),
	)
}

// ShowErrorModal logs and records a notification
func (n *Notifier) ShowErrorModal(ctx context.Context, message string, isKey bool) {
	ctxlog.From(ctx).Warn("Error modal", "message", message, "is_key", isKey)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, model.Notification{Message: message, IsKey: isKey})
	if len(n.notifications) > maxRecords {
		n.notifications = n.notifications[len(n.notifications)-maxRecords:]
	}
}

// Notifications returns recorded notifications, oldest first
func (n *Notifier) Notifications() []model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Notification{}, n.notifications...)
}
