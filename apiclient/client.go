package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmove/dmove/apitypes"
)

// Client wraps a Transport with typed request and response handling. It
// covers both the VIIPER bus routes used by the viiperbus driver and the
// dmove control routes.
type Client struct{ transport *Transport }

// New constructs a client for the API server at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a client on t.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// BusCreate creates a virtual bus with the given number.
func (c *Client) BusCreate(busID uint32) (*apitypes.BusCreateResponse, error) {
	return c.BusCreateCtx(context.Background(), busID)
}

func (c *Client) BusCreateCtx(ctx context.Context, busID uint32) (*apitypes.BusCreateResponse, error) {
	return call[apitypes.BusCreateResponse](ctx, c, "bus/create", fmt.Sprintf("%d", busID), nil)
}

// BusRemove removes a bus and every device on it.
func (c *Client) BusRemove(busID uint32) (*apitypes.BusRemoveResponse, error) {
	return c.BusRemoveCtx(context.Background(), busID)
}

func (c *Client) BusRemoveCtx(ctx context.Context, busID uint32) (*apitypes.BusRemoveResponse, error) {
	return call[apitypes.BusRemoveResponse](ctx, c, "bus/remove", fmt.Sprintf("%d", busID), nil)
}

// BusList lists active bus numbers.
func (c *Client) BusList() (*apitypes.BusListResponse, error) {
	return c.BusListCtx(context.Background())
}

func (c *Client) BusListCtx(ctx context.Context) (*apitypes.BusListResponse, error) {
	return call[apitypes.BusListResponse](ctx, c, "bus/list", nil, nil)
}

// DeviceAdd plugs a device of devType ("xbox360", "ds4") into a bus. The
// returned ID has the form "<busId>-<devId>".
func (c *Client) DeviceAdd(busID uint32, devType string) (*apitypes.DeviceAddResponse, error) {
	return c.DeviceAddCtx(context.Background(), busID, devType)
}

func (c *Client) DeviceAddCtx(ctx context.Context, busID uint32, devType string) (*apitypes.DeviceAddResponse, error) {
	return call[apitypes.DeviceAddResponse](ctx, c, "bus/{id}/add", devType, busParam(busID))
}

// DeviceRemove unplugs device devID from a bus.
func (c *Client) DeviceRemove(busID uint32, devID string) (*apitypes.DeviceRemoveResponse, error) {
	return c.DeviceRemoveCtx(context.Background(), busID, devID)
}

func (c *Client) DeviceRemoveCtx(ctx context.Context, busID uint32, devID string) (*apitypes.DeviceRemoveResponse, error) {
	return call[apitypes.DeviceRemoveResponse](ctx, c, "bus/{id}/remove", devID, busParam(busID))
}

// DevicesList lists the devices on a bus.
func (c *Client) DevicesList(busID uint32) (*apitypes.DevicesListResponse, error) {
	return c.DevicesListCtx(context.Background(), busID)
}

func (c *Client) DevicesListCtx(ctx context.Context, busID uint32) (*apitypes.DevicesListResponse, error) {
	return call[apitypes.DevicesListResponse](ctx, c, "bus/{id}/list", nil, busParam(busID))
}

// Ping returns the server identity.
func (c *Client) Ping(ctx context.Context) (*apitypes.PingResponse, error) {
	return call[apitypes.PingResponse](ctx, c, "ping", nil, nil)
}

// ServiceStart starts the controller service with the given configuration
// document. A nil config starts with the server's current configuration.
func (c *Client) ServiceStart(ctx context.Context, config json.RawMessage) (*apitypes.ServiceResponse, error) {
	return call[apitypes.ServiceResponse](ctx, c, "service/start", rawOrNil(config), nil)
}

// ServiceStop stops the controller service.
func (c *Client) ServiceStop(ctx context.Context) (*apitypes.ServiceResponse, error) {
	return call[apitypes.ServiceResponse](ctx, c, "service/stop", nil, nil)
}

// ServiceConfig replaces the live configuration.
func (c *Client) ServiceConfig(ctx context.Context, config json.RawMessage) (*apitypes.ServiceResponse, error) {
	return call[apitypes.ServiceResponse](ctx, c, "service/config", rawOrNil(config), nil)
}

// ServiceSlot returns the player slot of the virtual pad.
func (c *Client) ServiceSlot(ctx context.Context) (*apitypes.SlotResponse, error) {
	return call[apitypes.SlotResponse](ctx, c, "service/slot", nil, nil)
}

// SDKState returns the analog SDK state.
func (c *Client) SDKState(ctx context.Context) (*apitypes.SDKStateResponse, error) {
	return call[apitypes.SDKStateResponse](ctx, c, "service/sdkstate", nil, nil)
}

// DetectStart switches the service into detection mode.
func (c *Client) DetectStart(ctx context.Context) (*apitypes.DetectResponse, error) {
	return call[apitypes.DetectResponse](ctx, c, "detect/start", nil, nil)
}

// DetectEnd leaves detection mode.
func (c *Client) DetectEnd(ctx context.Context) (*apitypes.DetectResponse, error) {
	return call[apitypes.DetectResponse](ctx, c, "detect/end", nil, nil)
}

func busParam(busID uint32) map[string]string {
	return map[string]string{"id": fmt.Sprintf("%d", busID)}
}

func rawOrNil(b json.RawMessage) any {
	if len(b) == 0 {
		return nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, b); err != nil {
		return []byte(b)
	}
	return compact.Bytes()
}

func call[T any](ctx context.Context, c *Client, path string, payload any, params map[string]string) (*T, error) {
	line, err := c.transport.DoCtx(ctx, path, payload, params)
	if err != nil {
		return nil, err
	}
	return parse[T](line)
}

func parse[T any](line string) (*T, error) {
	if line == "" {
		return nil, errors.New("empty response")
	}
	var ae apitypes.ApiError
	if err := json.Unmarshal([]byte(line), &ae); err == nil && ae.Error != "" {
		return nil, errors.New(ae.Error)
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(line)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
