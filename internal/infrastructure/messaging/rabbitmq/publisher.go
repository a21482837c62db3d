package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	zlog "github.com/rs/zerolog/log"
)

const (
	DefaultExchange = "events.domain"

	// wait window for the broker confirm; the caller's request blocks on it
	publishWait = 500 * time.Millisecond

	// confirms of timed-out publishes queue here until the next publish skips them
	confirmBuffer = 64
)

// Publisher sends domain events to a durable topic exchange with publisher
// confirms. It is safe for concurrent use and redials once when the channel
// has been closed by the broker.
type Publisher struct {
	url      string
	exchange string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel

	confirmCh <-chan amqp.Confirmation
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("missing rabbit url")
	}
	if exchange == "" {
		exchange = DefaultExchange
	}

	p := &Publisher{
		url:      url,
		exchange: exchange,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbit dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbit channel: %w", err)
	}

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}

	// enable publisher confirms
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbit confirm mode: %w", err)
	}

	p.conn = conn
	p.ch = ch
	p.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer))

	zlog.Info().Str("exchange", p.exchange).Msg("rabbitmq publisher connected")
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return nil
}

// PublishEvent publishes a JSON-encoded envelope body and waits for the
// broker confirm. Events with no bound queue are dropped by the broker, which
// is not an error here.
func (p *Publisher) PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error {
	if routingKey == "" {
		return errors.New("missing routingKey")
	}
	if strings.TrimSpace(messageID) == "" {
		return errors.New("missing messageID")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		if p.url == "" {
			return errors.New("publisher channel not ready")
		}
		zlog.Warn().Str("exchange", p.exchange).Msg("rabbitmq channel closed, reconnecting")
		if p.conn != nil {
			_ = p.conn.Close()
		}
		p.conn, p.ch = nil, nil
		if err := p.connect(); err != nil {
			return err
		}
	}

	tag := p.ch.GetNextPublishSeqNo()
	err := p.ch.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			MessageId:    messageID,
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	return awaitConfirm(ctx, p.confirmCh, tag, publishWait)
}

// awaitConfirm waits for the confirm carrying delivery tag. Lower tags belong
// to earlier publishes that gave up waiting and are discarded.
func awaitConfirm(ctx context.Context, confirms <-chan amqp.Confirmation, tag uint64, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case conf, ok := <-confirms:
			if !ok {
				return errors.New("publisher channel closed before confirm")
			}
			if conf.DeliveryTag < tag {
				continue
			}
			if conf.DeliveryTag > tag {
				return fmt.Errorf("confirm for tag %d skipped past %d", conf.DeliveryTag, tag)
			}
			if !conf.Ack {
				return errors.New("publish nack")
			}
			return nil
		case <-timer.C:
			return errors.New("publish confirm timeout")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
