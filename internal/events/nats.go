package events

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"brawl-missions/pkg/logger"
)

// NATSBus owns the connection used by a Publisher.
type NATSBus struct {
	conn *nats.Conn
}

func ConnectNATS(url string, log logger.Logger) (*NATSBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("brawl-missions"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats: disconnected", "err", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats: reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSBus{conn: conn}, nil
}

func (b *NATSBus) Publisher(log logger.Logger) *Publisher {
	return newPublisher(b.conn, log)
}

// Close flushes pending messages before closing the connection.
func (b *NATSBus) Close() {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}
