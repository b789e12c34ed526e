package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// MarkOrderDeliveredCommandHandler records delivery confirmations.
//
// Concurrent partial confirmations from different vendors on one order are
// serialized by the version check; the losing writer reloads and reapplies
// its confirmation, so neither is lost.
type MarkOrderDeliveredCommandHandler struct {
	mutation orderMutation
	clock    ports.Clock
	policy   services.AccessPolicy
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewMarkOrderDeliveredCommandHandler creates a handler for mark order delivered commands.
func NewMarkOrderDeliveredCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	opts ...Option,
) MarkOrderDeliveredCommandHandler {
	o := newHandlerOptions(opts)
	return MarkOrderDeliveredCommandHandler{
		mutation: orderMutation{uowFactory: uowFactory, maxAttempts: o.maxAttempts, logger: o.logger},
		clock:    clock,
		policy:   o.policy,
		notifier: o.notifier,
		logger:   o.logger,
	}
}

// Handle returns the updated order, or:
//   - *errs.ObjectNotFoundError when the order, or for partial delivery the vendor's items, do not exist
//   - *errs.StateIsInvalidError when the order is Delivered or Cancelled, or the vendor's items are already delivered
func (h MarkOrderDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkOrderDeliveredCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(services.MarkOrderDelivered, cmd.Roles()); err != nil {
		return nil, err
	}

	o, err := h.mutation.apply(ctx, cmd.OrderID(), func(o *order.Order) error {
		if cmd.IsPartial() {
			return o.DeliverVendorItems(cmd.VendorID(), h.clock.Now())
		}
		return o.Deliver(h.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	kind := ports.OrderDelivered
	if o.Status() == order.PartiallyDelivered {
		kind = ports.OrderPartiallyDelivered
	}
	h.logger.InfoContext(ctx, "order delivery confirmed",
		"orderId", o.ID().String(),
		"vendorId", cmd.VendorID(),
		"status", o.Status().String(),
	)
	notify(ctx, h.notifier, h.logger, newNotification(o, kind))
	return o, nil
}
