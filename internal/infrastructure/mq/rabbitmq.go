package mq

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"file-share-api/config"
	"file-share-api/internal/domain/notification"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

var ErrBufferFull = errors.New("notification buffer is full")

type (
	InputCh  = chan notification.Event
	RabbitMQ struct {
		cfg      config.MQ
		log      *zap.Logger
		mCounter *prometheus.CounterVec
		conn     *amqp091.Connection
		pubCh    *amqp091.Channel
		in       InputCh
	}
)

func New(cfg config.MQ, logger *zap.Logger, mCounter *prometheus.CounterVec) *RabbitMQ {
	return &RabbitMQ{
		cfg:      cfg,
		log:      logger,
		mCounter: mCounter,
		in:       make(chan notification.Event, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "fileshareapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	if err := r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = r.pubCh.Close()
		return err
	}
	q, err := r.pubCh.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range notification.Kinds {
		if err = r.pubCh.QueueBind(q.Name, string(rk), r.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

// Publish queues e for the publisher worker. It never blocks: when the buffer
// is full the event is dropped.
func (r *RabbitMQ) Publish(e notification.Event) error {
	select {
	case r.in <- e:
		return nil
	default:
		r.mCounter.WithLabelValues("notifications_dropped_total").Inc()
		r.log.Error("notification dropped",
			zap.String("kind", string(e.Kind)),
			zap.String("event_id", e.ID.String()),
			zap.Error(ErrBufferFull),
		)
		return ErrBufferFull
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				r.mCounter.WithLabelValues("notifications_publish_failed_total").Inc()
				r.log.Error("mq publish error", zap.String("kind", string(e.Kind)), zap.Error(err))
				continue
			}
			r.mCounter.WithLabelValues("notifications_published_total").Inc()
		case <-ctx.Done():
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e notification.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pub := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.ID.String(),
		Timestamp:    e.TS,
		Type:         string(e.Kind),
		Body:         b,
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		string(e.Kind),
		false,
		false,
		pub,
	)
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }

func (r *RabbitMQ) Close() {
	if r.conn != nil {
		_ = r.conn.Close()
	}
}
