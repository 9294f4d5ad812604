package apitypes

// Shared API response structs used by both handlers and clients.

type ApiError struct {
	Error string `json:"error"`
}

// VIIPER bus management. These are the responses of the USB-IP server the
// viiperbus driver talks to.

type BusListResponse struct {
	Buses []uint32 `json:"buses"`
}

type BusCreateResponse struct {
	BusID uint32 `json:"busId"`
}

type BusRemoveResponse struct {
	BusID uint32 `json:"busId"`
}

type Device struct {
	BusID uint32 `json:"busId"`
	DevId string `json:"devId"`
	Vid   string `json:"vid"`
	Pid   string `json:"pid"`
	Type  string `json:"type"`
}

type DevicesListResponse struct {
	Devices []Device `json:"devices"`
}

type DeviceAddResponse struct {
	ID string `json:"id"` // Format: "<busId>-<devId>"
}

type DeviceRemoveResponse struct {
	BusID uint32 `json:"busId"`
	DevId string `json:"devId"`
}

// dmove control API.

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type ServiceResponse struct {
	State   string `json:"state"`
	Profile string `json:"profile,omitempty"`
}

type SlotResponse struct {
	Slot  uint32 `json:"slot"`
	Found bool   `json:"found"`
}

type SDKStateResponse struct {
	Type string `json:"type"`
}

type DetectResponse struct {
	Detecting bool `json:"detecting"`
}

// Report is one written stick report as published by the monitor.
type Report struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	LX int32   `json:"lx"`
	LY int32   `json:"ly"`
}
