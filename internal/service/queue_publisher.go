package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/queue"
)

// EventPublisher delivers request.filed events. Failures are reported to
// the caller, which logs and otherwise ignores them.
type EventPublisher interface {
	PublishRequestFiled(ctx context.Context, ev queue.RequestFiledEvent) error
}

// NopPublisher drops every event. It is used when RABBITMQ_URL is unset.
type NopPublisher struct{}

func (NopPublisher) PublishRequestFiled(context.Context, queue.RequestFiledEvent) error { return nil }

// AMQPPublisher opens a short-lived connection per event and publishes a
// persistent JSON message to the request.filed queue.
type AMQPPublisher struct {
	URL string
	Log logrus.FieldLogger
}

func NewAMQPPublisher(url string, log logrus.FieldLogger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Log: log.WithField("component", "request-publisher")}
}

func (p *AMQPPublisher) PublishRequestFiled(ctx context.Context, ev queue.RequestFiledEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.WithError(err).Warn("rabbitmq dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.WithError(err).Warn("rabbitmq channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.RequestFiledQueue, // name
		true,                    // durable
		false,                   // autoDelete
		false,                   // exclusive
		false,                   // noWait
		nil,                     // args
	); err != nil {
		p.Log.WithError(err).Warn("rabbitmq queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.RequestFiledQueue, false, false, pub); err != nil {
		p.Log.WithError(err).Warn("rabbitmq publish failed")
		return err
	}
	return nil
}
