// Package queue_publisher publishes domain events to RabbitMQ.  Errors are
// logged and returned so callers can ignore failures without interrupting
// the request that triggered the event.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/seatmap/internal/queue"
)

// Publisher keeps one broker connection and channel open and reopens them
// after a failure.
type Publisher struct {
    url string

    mu   sync.Mutex
    conn *amqp.Connection
    ch   *amqp.Channel
}

// NewPublisher returns a publisher for the broker at url.  No connection is
// made until the first publish.
func NewPublisher(url string) *Publisher {
    return &Publisher{url: url}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
    if p.ch != nil && !p.ch.IsClosed() {
        return p.ch, nil
    }
    p.closeLocked()
    conn, err := amqp.Dial(p.url)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return nil, err
    }
    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        _ = conn.Close()
        return nil, err
    }
    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        q.SelectionQueueName, // name
        true,                 // durable
        false,                // autoDelete
        false,                // exclusive
        false,                // noWait
        nil,                  // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        _ = ch.Close()
        _ = conn.Close()
        return nil, err
    }
    p.conn, p.ch = conn, ch
    return ch, nil
}

// PublishSelectionChanged publishes event to the selection queue as a
// persistent JSON message.
func (p *Publisher) PublishSelectionChanged(ctx context.Context, event q.SelectionChangedEvent) error {
    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    p.mu.Lock()
    defer p.mu.Unlock()
    ch, err := p.channel()
    if err != nil {
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",                   // default exchange
        q.SelectionQueueName, // routing key = queue name
        false,                // mandatory
        false,                // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        p.closeLocked()
        return err
    }
    return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.closeLocked()
    return nil
}

func (p *Publisher) closeLocked() {
    if p.ch != nil {
        _ = p.ch.Close()
        p.ch = nil
    }
    if p.conn != nil {
        _ = p.conn.Close()
        p.conn = nil
    }
}
