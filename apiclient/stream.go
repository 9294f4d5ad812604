package apiclient

import (
	"bufio"
	"context"
	"encoding"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/dmove/dmove/apitypes"
)

var errStreamClosed = errors.New("stream closed")

// Stream is a raw connection that stays open after its opening line. Device
// streams carry binary input state; subscription streams carry JSON lines.
type Stream struct {
	mu     sync.Mutex
	conn   net.Conn
	r      *bufio.Reader
	closed bool
}

// OpenStream opens the input stream of device devID on busID.
func (c *Client) OpenStream(ctx context.Context, busID uint32, devID string) (*Stream, error) {
	return c.Subscribe(ctx, fmt.Sprintf("bus/%d/%s", busID, devID))
}

// Subscribe sends path as the opening line and returns the open connection.
func (c *Client) Subscribe(ctx context.Context, path string) (*Stream, error) {
	if c.transport.mock != nil {
		return nil, errors.New("streaming not supported with mock transport")
	}
	conn, err := c.transport.dial(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.transport.writeLine(conn, strings.ToLower(path)); err != nil {
		conn.Close()
		return nil, err
	}
	return &Stream{conn: conn, r: bufio.NewReader(conn)}, nil
}

// AddDeviceAndConnect adds a device and opens its stream. The add response
// is returned even when opening the stream fails.
func (c *Client) AddDeviceAndConnect(ctx context.Context, busID uint32, devType string) (*Stream, *apitypes.DeviceAddResponse, error) {
	resp, err := c.DeviceAddCtx(ctx, busID, devType)
	if err != nil {
		return nil, nil, err
	}
	devID, err := DevID(resp.ID)
	if err != nil {
		return nil, resp, err
	}
	s, err := c.OpenStream(ctx, busID, devID)
	if err != nil {
		return nil, resp, err
	}
	return s, resp, nil
}

// DevID extracts the device part of a "<busId>-<devId>" identifier.
func DevID(id string) (string, error) {
	i := strings.LastIndexByte(id, '-')
	if i < 0 || i == len(id)-1 {
		return "", fmt.Errorf("malformed device id: %q", id)
	}
	return id[i+1:], nil
}

func (s *Stream) Read(p []byte) (int, error) {
	if s.isClosed() {
		return 0, errStreamClosed
	}
	return s.r.Read(p)
}

// ReadLine reads one newline-terminated message without the newline.
func (s *Stream) ReadLine() (string, error) {
	if s.isClosed() {
		return "", errStreamClosed
	}
	line, err := s.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func (s *Stream) Write(p []byte) (int, error) {
	if s.isClosed() {
		return 0, errStreamClosed
	}
	return s.conn.Write(p)
}

// WriteBinary marshals m and writes it as one packet.
func (s *Stream) WriteBinary(m encoding.BinaryMarshaler) error {
	if s.isClosed() {
		return errStreamClosed
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = s.Write(b)
	return err
}

// SetWriteDeadline sets the write deadline of the underlying connection.
func (s *Stream) SetWriteDeadline(t time.Time) error {
	if s.isClosed() {
		return errStreamClosed
	}
	return s.conn.SetWriteDeadline(t)
}

// Close closes the connection. It is safe to call more than once.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *Stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
