// Package queue contains the background consumer that listens to the
// seat.selection.changed queue and writes an audit trail to
// logs/selection.log.
package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "log"
    "os"
    "path/filepath"
    "strings"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// StartSelectionConsumer connects to the broker at url, declares the
// selection queue (durable) and consumes it forever, appending one line per
// event to logs/selection.log.  Broken connections are redialed with
// exponential backoff capped at 30s; undecodable messages are rejected
// without requeue.
func StartSelectionConsumer(url string) {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("selection-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        if err := consumeLoop(conn); err != nil {
            log.Printf("selection-consumer: consume loop ended: %v; reconnecting", err)
            _ = conn.Close()
            time.Sleep(2 * time.Second)
        }
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("selection-consumer: set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(SelectionQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(SelectionQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := appendToLog(d.Body); err != nil {
            log.Printf("selection-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false)
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func appendToLog(body []byte) error {
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(filepath.Join("logs", "selection.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    return HandleMessage(f, body)
}

// HandleMessage decodes one event and writes its audit line to w.
func HandleMessage(w io.Writer, body []byte) error {
    var ev SelectionChangedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if _, err := io.WriteString(w, FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders ev as a single human-friendly log line.
func FormatLine(ev SelectionChangedEvent) string {
    seats := "[]"
    if len(ev.SeatLabels) > 0 {
        seats = fmt.Sprintf("[%s]", strings.Join(ev.SeatLabels, ","))
    }
    return fmt.Sprintf("[%s] Selection changed | widget=%s | vehicle=%s/%s | selected=%d/%d | seats=%s\n",
        ev.ChangedAt, ev.WidgetID, ev.VehicleType, ev.VehicleID, len(ev.SeatIDs), ev.MaxSeats, seats)
}
