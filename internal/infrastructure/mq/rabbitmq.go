package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-resource-api/config"
	"user-resource-api/internal/interface/api/rest/dto/user"
)

const (
	bufferSize   = 128
	dialTimeout  = 10 * time.Second
	flushTimeout = 3 * time.Second
)

// RoutingKeys are the lifecycle actions a user event can carry.
var RoutingKeys = []string{
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
}

type (
	InputCh  = chan Event
	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh *amqp091.Channel
		in    InputCh
	}
	// Event is the message body of every user lifecycle notification.
	Event struct {
		Id      uuid.UUID `json:"event_id"`
		TS      time.Time `json:"time_stamp"`
		Method  string    `json:"event_action"`
		UserID  int64     `json:"user_id"`
		Payload user.User `json:"user_payload"`
	}
)

func NewEvent(method string, u user.User) Event {
	return Event{
		Id:      uuid.New(),
		TS:      time.Now().UTC(),
		Method:  method,
		UserID:  u.ID,
		Payload: u,
	}
}

// DeclareTopology declares the durable exchange and queue and binds every
// routing key. Publisher and consumer both call it, so either may start first.
func DeclareTopology(ch *amqp091.Channel, cfg config.MQ) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, cfg.ExchangeType, true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range RoutingKeys {
		if err = ch.QueueBind(q.Name, rk, cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	return nil
}

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Event, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: dialTimeout}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "userapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	conn, err := amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	pubCh, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	r.conn, r.pubCh = conn, pubCh

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	if err := DeclareTopology(r.pubCh, r.cfg); err != nil {
		_ = r.pubCh.Close()
		return err
	}

	return nil
}

// PublisherWorker publishes queued events until ctx is done, then makes one
// bounded attempt to flush what is still buffered.
func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			r.send(ctx, e)
		case <-ctx.Done():
			r.flush()
			_ = r.pubCh.Close()
			return
		}
	}
}

func (r *RabbitMQ) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for {
		select {
		case e := <-r.in:
			r.send(ctx, e)
		default:
			return
		}
	}
}

func (r *RabbitMQ) send(ctx context.Context, e Event) {
	if err := r.publish(ctx, e); err != nil {
		r.log.Error("mq publish error",
			zap.Error(err),
			zap.String("event_id", e.Id.String()),
			zap.Int64("user_id", e.UserID),
		)
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		e.Method,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    e.Id.String(),
			Timestamp:    e.TS,
			Type:         e.Method,
			Body:         b,
		},
	)
}

func (r *RabbitMQ) GetInputChan() chan Event     { return r.in }
func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
