package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadCapturedPayload is published after a lead has been persisted.
type LeadCapturedPayload struct {
	LeadID    string    `json:"lead_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// CampaignDispatchedPayload is published after a campaign fan-out finishes.
type CampaignDispatchedPayload struct {
	Subject    string    `json:"subject"`
	Segment    string    `json:"segment"`
	Matched    int       `json:"matched"`
	Sent       int       `json:"sent"`
	Failed     int       `json:"failed"`
	FinishedAt time.Time `json:"finished_at"`
}

type EventProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *EventProducer {
	return &EventProducer{Conn: conn, Ch: ch}
}

func (p *EventProducer) PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error {
	return p.publish(ctx, "lead.captured", payload)
}

func (p *EventProducer) PublishCampaignDispatched(ctx context.Context, payload CampaignDispatchedPayload) error {
	return p.publish(ctx, "campaign.dispatched", payload)
}

func (p *EventProducer) publish(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	return nil
}
