package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/umeshkhanal/rumooz/internal/domain/lead"
)

//go:generate mockgen -destination=../../mocks/mock_publisher.go -package=mocks github.com/umeshkhanal/rumooz/internal/infrastructure/events Publisher

// Publisher fans captured leads out to downstream consumers (CRM sync, chat alerts).
type Publisher interface {
	PublishLead(ctx context.Context, event lead.Event) error
}

// broker is the subset of pkg/mqtt.Client used here.
type broker interface {
	Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error
}

type MQTTPublisher struct {
	broker  broker
	prefix  string
	metrics *MetricsTracker
	now     func() time.Time
}

// NewMQTTPublisher publishes to <topicPrefix>/<kind>. metrics may be nil.
func NewMQTTPublisher(b broker, topicPrefix string, metrics *MetricsTracker) *MQTTPublisher {
	return &MQTTPublisher{
		broker:  b,
		prefix:  strings.TrimSuffix(topicPrefix, "/"),
		metrics: metrics,
		now:     time.Now,
	}
}

func (p *MQTTPublisher) PublishLead(ctx context.Context, event lead.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode lead event: %w", err)
	}

	topic := p.prefix + "/" + string(event.Kind)
	start := p.now()
	if err := p.broker.Publish(ctx, topic, 1, false, payload); err != nil {
		err = fmt.Errorf("failed to publish to %s: %w", topic, err)
		p.metrics.recordFailure(err)
		return err
	}

	end := p.now()
	p.metrics.recordSuccess(end, end.Sub(start))
	return nil
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishLead(context.Context, lead.Event) error { return nil }
