package client

import (
	"context"
	"time"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
)

// Device is a flat device record. The DevEUI is the caller-supplied
// identifier; ApplicationID and DeviceProfileID must reference existing
// entities or the server rejects the create with a not-found status.
type Device struct {
	DevEUI          string
	Name            string
	Description     string
	ApplicationID   string
	DeviceProfileID string
	// JoinEUI is set automatically by the server on OTAA join.
	JoinEUI string
	// SkipFCntCheck disables frame-counter validation, which allows replay
	// attacks. The flag maps through unchanged.
	SkipFCntCheck bool
	IsDisabled    bool
	Tags          map[string]string
	// Variables are not exposed in event payloads; integrations use them for
	// per-device secrets.
	Variables map[string]string
}

// DeviceKeys are the root keys of an OTAA device. For LoRaWAN 1.0.x the
// NwkKey field carries what those versions call the AppKey; AppKey is only used
// by 1.1.x devices.
type DeviceKeys struct {
	DevEUI string
	NwkKey string
	AppKey string
}

// DeviceActivation is the current activation state of a device (OTAA or ABP).
// Read-only.
type DeviceActivation struct {
	DevEUI      string
	DevAddr     string
	AppSKey     string
	NwkSEncKey  string
	SNwkSIntKey string
	FNwkSIntKey string
	FCntUp      uint32
	NFCntDown   uint32
	AFCntDown   uint32
}

// DeviceSummary is one row of a device listing.
type DeviceSummary struct {
	DevEUI            string
	Name              string
	Description       string
	DeviceProfileID   string
	DeviceProfileName string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	LastSeenAt        time.Time
}

// DevicePage is one page of device summaries plus the server's total count.
type DevicePage struct {
	TotalCount uint32
	Result     []DeviceSummary
}

// CreateDevice registers a device and returns its DevEUI, which is the
// device's identifier in the upstream API. ErrNotFound if the referenced
// application or device profile does not exist.
func (c *Client) CreateDevice(ctx context.Context, d *Device) (string, error) {
	_, err := c.devices.Create(ctx, &api.CreateDeviceRequest{Device: deviceToProto(d)})
	if err != nil {
		return "", wrapError("create device", err)
	}
	return d.DevEUI, nil
}

// GetDevice returns the full device record.
func (c *Client) GetDevice(ctx context.Context, devEUI string) (*Device, error) {
	resp, err := c.devices.Get(ctx, &api.GetDeviceRequest{DevEui: devEUI})
	if err != nil {
		return nil, wrapError("get device", err)
	}
	return deviceFromProto(resp.GetDevice()), nil
}

// UpdateDevice replaces the device record identified by d.DevEUI.
func (c *Client) UpdateDevice(ctx context.Context, d *Device) error {
	_, err := c.devices.Update(ctx, &api.UpdateDeviceRequest{Device: deviceToProto(d)})
	return wrapError("update device", err)
}

// DeleteDevice deletes the device. A repeat delete surfaces ErrNotFound.
func (c *Client) DeleteDevice(ctx context.Context, devEUI string) error {
	_, err := c.devices.Delete(ctx, &api.DeleteDeviceRequest{DevEui: devEUI})
	return wrapError("delete device", err)
}

// ListDevices returns one page of device summaries for an application.
func (c *Client) ListDevices(ctx context.Context, applicationID string, opts ListOptions) (*DevicePage, error) {
	resp, err := c.devices.List(ctx, &api.ListDevicesRequest{
		Limit:         opts.Limit,
		Offset:        opts.Offset,
		ApplicationId: applicationID,
	})
	if err != nil {
		return nil, wrapError("list devices", err)
	}
	page := &DevicePage{
		TotalCount: resp.GetTotalCount(),
		Result:     make([]DeviceSummary, 0, len(resp.GetResult())),
	}
	for _, item := range resp.GetResult() {
		page.Result = append(page.Result, DeviceSummary{
			DevEUI:            item.GetDevEui(),
			Name:              item.GetName(),
			Description:       item.GetDescription(),
			DeviceProfileID:   item.GetDeviceProfileId(),
			DeviceProfileName: item.GetDeviceProfileName(),
			CreatedAt:         tsToTime(item.GetCreatedAt()),
			UpdatedAt:         tsToTime(item.GetUpdatedAt()),
			LastSeenAt:        tsToTime(item.GetLastSeenAt()),
		})
	}
	return page, nil
}

// ListAllDevices aggregates every page of ListDevices for an application.
func (c *Client) ListAllDevices(ctx context.Context, applicationID string) ([]DeviceSummary, error) {
	return collectAll(ctx, c.pageSize, func(ctx context.Context, limit, offset uint32) ([]DeviceSummary, uint32, error) {
		page, err := c.ListDevices(ctx, applicationID, ListOptions{Limit: limit, Offset: offset})
		if err != nil {
			return nil, 0, err
		}
		return page.Result, page.TotalCount, nil
	})
}

// CreateDeviceKeys sets the root keys for an OTAA device.
func (c *Client) CreateDeviceKeys(ctx context.Context, k *DeviceKeys) error {
	_, err := c.devices.CreateKeys(ctx, &api.CreateDeviceKeysRequest{
		DeviceKeys: &api.DeviceKeys{
			DevEui: k.DevEUI,
			NwkKey: k.NwkKey,
			AppKey: k.AppKey,
		},
	})
	return wrapError("create device keys", err)
}

// GetDeviceKeys returns the root keys of a device. ErrNotFound also covers
// ABP devices, which have no root keys.
func (c *Client) GetDeviceKeys(ctx context.Context, devEUI string) (*DeviceKeys, error) {
	resp, err := c.devices.GetKeys(ctx, &api.GetDeviceKeysRequest{DevEui: devEUI})
	if err != nil {
		return nil, wrapError("get device keys", err)
	}
	k := resp.GetDeviceKeys()
	return &DeviceKeys{
		DevEUI: k.GetDevEui(),
		NwkKey: k.GetNwkKey(),
		AppKey: k.GetAppKey(),
	}, nil
}

// DeleteDeviceKeys removes the root keys of a device.
func (c *Client) DeleteDeviceKeys(ctx context.Context, devEUI string) error {
	_, err := c.devices.DeleteKeys(ctx, &api.DeleteDeviceKeysRequest{DevEui: devEUI})
	return wrapError("delete device keys", err)
}

// GetDeviceAppKey returns the application root key for the given MAC version:
// the NwkKey field for LoRaWAN 1.0.x, the AppKey field for 1.1.
func (c *Client) GetDeviceAppKey(ctx context.Context, devEUI string, macVersion MACVersion) (string, error) {
	keys, err := c.GetDeviceKeys(ctx, devEUI)
	if err != nil {
		return "", err
	}
	if macVersion < MACVersion1_1_0 {
		return keys.NwkKey, nil
	}
	return keys.AppKey, nil
}

// GetDeviceActivation returns the current activation details of a device.
func (c *Client) GetDeviceActivation(ctx context.Context, devEUI string) (*DeviceActivation, error) {
	resp, err := c.devices.GetActivation(ctx, &api.GetDeviceActivationRequest{DevEui: devEUI})
	if err != nil {
		return nil, wrapError("get device activation", err)
	}
	a := resp.GetDeviceActivation()
	if a == nil {
		return nil, nil
	}
	return &DeviceActivation{
		DevEUI:      a.GetDevEui(),
		DevAddr:     a.GetDevAddr(),
		AppSKey:     a.GetAppSKey(),
		NwkSEncKey:  a.GetNwkSEncKey(),
		SNwkSIntKey: a.GetSNwkSIntKey(),
		FNwkSIntKey: a.GetFNwkSIntKey(),
		FCntUp:      a.GetFCntUp(),
		NFCntDown:   a.GetNFCntDown(),
		AFCntDown:   a.GetAFCntDown(),
	}, nil
}

func deviceToProto(d *Device) *api.Device {
	if d == nil {
		return nil
	}
	return &api.Device{
		DevEui:          d.DevEUI,
		Name:            d.Name,
		Description:     d.Description,
		ApplicationId:   d.ApplicationID,
		DeviceProfileId: d.DeviceProfileID,
		JoinEui:         d.JoinEUI,
		SkipFcntCheck:   d.SkipFCntCheck,
		IsDisabled:      d.IsDisabled,
		Tags:            d.Tags,
		Variables:       d.Variables,
	}
}

func deviceFromProto(d *api.Device) *Device {
	if d == nil {
		return nil
	}
	return &Device{
		DevEUI:          d.GetDevEui(),
		Name:            d.GetName(),
		Description:     d.GetDescription(),
		ApplicationID:   d.GetApplicationId(),
		DeviceProfileID: d.GetDeviceProfileId(),
		JoinEUI:         d.GetJoinEui(),
		SkipFCntCheck:   d.GetSkipFcntCheck(),
		IsDisabled:      d.GetIsDisabled(),
		Tags:            d.GetTags(),
		Variables:       d.GetVariables(),
	}
}
