// Package notification delivers customer-facing notices. The only channel is
// a structured log line; mail delivery is out of scope.
package notification

import (
	"context"

	apporder "github.com/podplatform/backend/internal/application/order"
	"go.uber.org/zap"
)

// LogNotifier writes notices to the log as if they were sent emails
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new logging notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notification")}
}

// NotifyShipped logs the shipping email
func (n *LogNotifier) NotifyShipped(_ context.Context, notice apporder.ShippingNotice) error {
	n.logger.Info("EMAIL",
		zap.String("to", notice.To),
		zap.String("name", notice.Name),
		zap.String("subject", notice.Subject()),
		zap.String("order_reference", notice.OrderReference),
		zap.String("tracking_number", notice.TrackingNumber),
	)
	return nil
}

// Ensure LogNotifier implements ShippingNotifier
var _ apporder.ShippingNotifier = (*LogNotifier)(nil)
