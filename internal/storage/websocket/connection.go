package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/OCAP2/hoopshot/pkg/streaming"
	ws "github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// connection is a single synchronous WebSocket session. Writes and ack reads
// happen on the caller's goroutine.
type connection struct {
	conn   *ws.Conn
	logger *slog.Logger
}

// dial connects to rawURL with the secret as query param.
func dial(rawURL, secret string, timeout time.Duration, logger *slog.Logger) (*connection, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid websocket URL: %w", err)
	}
	q := u.Query()
	q.Set("secret", secret)
	u.RawQuery = q.Encode()

	dialer := *ws.DefaultDialer
	if timeout > 0 {
		dialer.HandshakeTimeout = timeout
	}

	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return &connection{conn: conn, logger: logger}, nil
}

// send writes one text frame.
func (c *connection) send(data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("websocket set write deadline: %w", err)
	}
	if err := c.conn.WriteMessage(ws.TextMessage, data); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

// awaitAck reads until the server acknowledges ackFor or the timeout expires.
// Other messages are skipped.
func (c *connection) awaitAck(ackFor string, timeout time.Duration) error {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("websocket set read deadline: %w", err)
	}
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("waiting for ack of %q: %w", ackFor, err)
		}

		var ack streaming.AckMessage
		if err := json.Unmarshal(message, &ack); err != nil {
			c.logger.Debug("Non-ack message received", "raw", string(message))
			continue
		}
		if ack.Type == streaming.TypeAck && ack.For == ackFor {
			return nil
		}
		// Not our ack, keep waiting.
	}
}

// sendAndWait sends data and blocks until the matching ack arrives.
func (c *connection) sendAndWait(data []byte, ackFor string, timeout time.Duration) error {
	if err := c.send(data); err != nil {
		return err
	}
	return c.awaitAck(ackFor, timeout)
}

// close sends a close frame and releases the socket.
func (c *connection) close() error {
	_ = c.conn.WriteControl(
		ws.CloseMessage,
		ws.FormatCloseMessage(ws.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
	return c.conn.Close()
}
