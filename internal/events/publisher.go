package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campus-jobs/internal/telemetry"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	SubjectPostingCreated     = "postings.created"
	SubjectPostingDeleted     = "postings.deleted"
	SubjectApplicationCreated = "applications.created"
	SubjectShortlistToggled   = "applications.shortlisted"
	SubjectMeetingScheduled   = "meetings.scheduled"
	SubjectFeedUpdated        = "feed.updated"
)

var tracer = telemetry.GetTracer("campus-jobs/events")

// Publisher fans domain events out to other services. Publishing is best
// effort: callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
	Close()
}

type NATSPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewNATSPublisher(url string, timeout time.Duration, logger *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("campus-jobs"),
		nats.Timeout(timeout),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, logger: logger}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	_, span := tracer.Start(ctx, "events.Publish")
	defer span.End()

	data, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal")
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", subject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(subject, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish")
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	p.logger.Debug("published event", zap.String("subject", subject), zap.Int("size", len(data)))
	return nil
}

func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

func (Noop) Close() {}

// Emit publishes and logs a failure instead of returning it.
func Emit(ctx context.Context, p Publisher, logger *zap.Logger, subject string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, subject, payload); err != nil && logger != nil {
		logger.Warn("event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
