package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// DefaultMaxAttempts bounds the read-modify-write cycles of one command when
// concurrent writers keep invalidating the loaded version.
const DefaultMaxAttempts = 3

// Option customizes a command handler.
type Option func(*handlerOptions)

type handlerOptions struct {
	maxAttempts int
	logger      *slog.Logger
	notifier    ports.Notifier
	policy      services.AccessPolicy
}

func newHandlerOptions(opts []Option) handlerOptions {
	o := handlerOptions{
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
		notifier:    discardNotifier{},
		policy:      services.NewAccessPolicy(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxAttempts sets how many times a command is applied before a
// concurrency conflict is returned to the caller. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(o *handlerOptions) {
		if n >= 1 {
			o.maxAttempts = n
		}
	}
}

// WithLogger sets the logger used for retries and dropped notifications.
func WithLogger(logger *slog.Logger) Option {
	return func(o *handlerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNotifier sets the sink receiving customer notifications after cancel
// and deliver.
func WithNotifier(n ports.Notifier) Option {
	return func(o *handlerOptions) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithAccessPolicy replaces the default role table.
func WithAccessPolicy(p services.AccessPolicy) Option {
	return func(o *handlerOptions) {
		o.policy = p
	}
}

type discardNotifier struct{}

// Notify discards n.
func (discardNotifier) Notify(context.Context, ports.Notification) error {
	return nil
}
