package render

import (
	"encoding/json"
	"fmt"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"
)

// Frame is one synced scene as sent to subscribers
type Frame struct {
	Generation uint64  `json:"generation"`
	Alpha      float64 `json:"alpha"`
	Scene      *Scene  `json:"scene"`
}

// publishQueue bounds the frames buffered per subscriber; a slow
// subscriber loses the oldest frames instead of stalling the sender
const publishQueue = 16

// Publisher broadcasts frames on a mangos pub socket. Subscribers that
// are not connected simply miss frames.
type Publisher struct {
	sock mangos.Socket
	addr string
}

// NewPublisher listens on addr (tcp://, ipc://, inproc://, ...)
func NewPublisher(addr string) (*Publisher, error) {
	sock, err := pub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create pub socket: %w", err)
	}
	if err := sock.SetOption(mangos.OptionWriteQLen, publishQueue); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to set write queue: %w", err)
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &Publisher{sock: sock, addr: addr}, nil
}

// Addr returns the listen address
func (p *Publisher) Addr() string { return p.addr }

// Publish sends a frame
func (p *Publisher) Publish(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return p.sock.Send(data)
}

// Close shuts the socket
func (p *Publisher) Close() error {
	return p.sock.Close()
}
