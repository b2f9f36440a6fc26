package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
)

// OrderEvent is the body of every order message.
type OrderEvent struct {
	OrderID      uint      `json:"orderId"`
	UserID       uint      `json:"userId"`
	RestaurantID uint      `json:"restaurantId"`
	DriverID     *uint     `json:"driverId,omitempty"`
	Status       string    `json:"status"`
	Total        int64     `json:"total"`
	At           time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                              { return nil }

// AMQPPublisher publishes persistent JSON messages to a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex // amqp channels are not safe for concurrent publishing
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(uri, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", routingKey, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// Recorder keeps published events in memory. Tests use it to assert on
// what the services emitted.
type Recorder struct {
	mu     sync.Mutex
	Events []Recorded
}

type Recorded struct {
	RoutingKey string
	Payload    any
}

func (r *Recorder) Publish(_ context.Context, routingKey string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Recorded{RoutingKey: routingKey, Payload: payload})
	return nil
}

func (r *Recorder) Close() error { return nil }

// Keys returns the routing keys published so far, in order.
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.RoutingKey
	}
	return out
}
