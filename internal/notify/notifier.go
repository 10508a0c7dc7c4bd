// Package notify delivers operator alerts over one or more channels
// (Telegram, Discord). Alerts are plain title+body messages tagged with an
// event type so operators can subscribe to only the events they care about.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Event types attached to outgoing messages.
const (
	EventArbDetected      = "arb_detected"
	EventVenueUnavailable = "venue_unavailable"
)

// Message is one alert to deliver.
type Message struct {
	Event string
	Title string
	Body  string
}

// Sender is one delivery channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	// Name identifies the channel in logs, e.g. "telegram".
	Name() string
}

// Notifier fans a message out to every configured sender, filtered by event
// type. A sender failing never blocks delivery to the others.
type Notifier struct {
	senders []Sender
	events  map[string]bool
	logger  *slog.Logger
}

// NewNotifier creates a notifier delivering to the given senders. Only
// messages whose event type appears in events are forwarded; an empty events
// list allows everything.
func NewNotifier(senders []Sender, events []string, logger *slog.Logger) *Notifier {
	allowed := make(map[string]bool, len(events))
	for _, e := range events {
		if e = strings.TrimSpace(e); e != "" {
			allowed[e] = true
		}
	}
	return &Notifier{
		senders: senders,
		events:  allowed,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// Notify delivers the message to every sender, unless its event type is
// filtered out. Individual sender errors are collected; the combined error is
// returned after all senders were tried.
func (n *Notifier) Notify(ctx context.Context, msg Message) error {
	if len(n.events) > 0 && !n.events[msg.Event] {
		n.logger.DebugContext(ctx, "event filtered out", slog.String("event", msg.Event))
		return nil
	}
	if len(n.senders) == 0 {
		return nil
	}

	var failed []string
	for _, s := range n.senders {
		if err := s.Send(ctx, msg); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("event", msg.Event),
				slog.String("error", err.Error()),
			)
			failed = append(failed, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		n.logger.DebugContext(ctx, "notification sent",
			slog.String("sender", s.Name()),
			slog.String("title", msg.Title),
		)
	}

	if len(failed) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(failed), strings.Join(failed, "; "))
	}
	return nil
}
