package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// New dials the broker; it returns nil, nil when url is empty.
func New(ctx context.Context, url string) (*amqp.Connection, error) {
	if url == "" {
		return nil, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	type result struct {
		conn *amqp.Connection
		err  error
	}
	done := make(chan result, 1)
	go func() {
		conn, err := amqp.Dial(url)
		done <- result{conn: conn, err: err}
	}()

	select {
	case <-dialCtx.Done():
		go func() {
			if r := <-done; r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		return nil, fmt.Errorf("dial rabbitmq timeout: %w", dialCtx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("dial rabbitmq failed: %w", r.err)
		}
		return r.conn, nil
	}
}
