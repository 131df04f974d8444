package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"file-share-api/config"
	"file-share-api/internal/domain/notification"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// Sender delivers a decoded notification, e.g. as an email.
type Sender interface {
	Send(ctx context.Context, e notification.Event) error
}

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	sender     Sender
	mCounter   *prometheus.CounterVec
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger, sender Sender, mCounter *prometheus.CounterVec) *Consumer {
	return &Consumer{
		cfg:      cfg,
		log:      logger,
		sender:   sender,
		mCounter: mCounter,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range notification.Kinds {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			string(rk),
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var err error
	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			c.handle(ctx, msg)
		case <-ctx.Done():
			if c.chConsume != nil {
				_ = c.chConsume.Close()
			}
			if c.conn != nil {
				_ = c.conn.Close()
			}
			return
		}
	}
}

// handle acks sent messages and nacks failed ones without requeue.
func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	if err := c.delivery(ctx, msg); err != nil {
		c.mCounter.WithLabelValues("notifications_failed_total").Inc()
		c.log.Error("mq read message error",
			zap.String("routing_key", msg.RoutingKey),
			zap.String("message_id", msg.MessageId),
			zap.Error(err),
		)
		if nerr := msg.Nack(false, false); nerr != nil {
			c.log.Warn("nack failed", zap.Error(nerr))
		}
		return
	}

	c.mCounter.WithLabelValues("notifications_sent_total").Inc()
	if err := msg.Ack(false); err != nil {
		c.log.Warn("ack failed", zap.Error(err))
	}
}

func (c *Consumer) delivery(ctx context.Context, msg amqp091.Delivery) error {
	var e notification.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if string(e.Kind) != msg.RoutingKey {
		return fmt.Errorf("event kind %q does not match routing key %q", e.Kind, msg.RoutingKey)
	}
	if e.To == "" {
		return fmt.Errorf("event %s has no recipient", e.ID)
	}

	return c.sender.Send(ctx, e)
}
