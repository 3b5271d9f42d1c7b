package client

import (
	"context"
	"time"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
	"github.com/chirpstack/chirpstack/api/go/v4/common"
)

// Region is the frequency plan a profile's devices use.
type Region = common.Region

// Supported frequency plans.
const (
	RegionEU868   = common.Region_EU868
	RegionUS915   = common.Region_US915
	RegionCN779   = common.Region_CN779
	RegionEU433   = common.Region_EU433
	RegionAU915   = common.Region_AU915
	RegionCN470   = common.Region_CN470
	RegionAS923   = common.Region_AS923
	RegionAS923_2 = common.Region_AS923_2
	RegionAS923_3 = common.Region_AS923_3
	RegionAS923_4 = common.Region_AS923_4
	RegionKR920   = common.Region_KR920
	RegionIN865   = common.Region_IN865
	RegionRU864   = common.Region_RU864
	RegionISM2400 = common.Region_ISM2400
)

// MACVersion is the LoRaWAN MAC version a profile's devices speak.
type MACVersion = common.MacVersion

// Supported MAC versions.
const (
	MACVersion1_0_0 = common.MacVersion_LORAWAN_1_0_0
	MACVersion1_0_1 = common.MacVersion_LORAWAN_1_0_1
	MACVersion1_0_2 = common.MacVersion_LORAWAN_1_0_2
	MACVersion1_0_3 = common.MacVersion_LORAWAN_1_0_3
	MACVersion1_0_4 = common.MacVersion_LORAWAN_1_0_4
	MACVersion1_1_0 = common.MacVersion_LORAWAN_1_1_0
)

// RegParamsRevision is the Regional Parameters revision.
type RegParamsRevision = common.RegParamsRevision

// Supported Regional Parameters revisions.
const (
	RegParamsA         = common.RegParamsRevision_A
	RegParamsB         = common.RegParamsRevision_B
	RegParamsRP002_100 = common.RegParamsRevision_RP002_1_0_0
	RegParamsRP002_101 = common.RegParamsRevision_RP002_1_0_1
	RegParamsRP002_102 = common.RegParamsRevision_RP002_1_0_2
	RegParamsRP002_103 = common.RegParamsRevision_RP002_1_0_3
)

// CodecRuntime is the payload codec runtime.
type CodecRuntime = api.CodecRuntime

// Supported payload codec runtimes.
const (
	CodecNone       = api.CodecRuntime_NONE
	CodecCayenneLPP = api.CodecRuntime_CAYENNE_LPP
	CodecJS         = api.CodecRuntime_JS
)

// ADR algorithm identifiers accepted by the server.
const (
	ADRAlgorithmLoRaOnly   = "default"
	ADRAlgorithmLRFHSSOnly = "lr_fhss"
	ADRAlgorithmBoth       = "lora_lr_fhss"
)

// DeviceProfile is a flat device-profile record owned by a tenant. ABP fields
// matter only when SupportsOTAA is false; the class-B and class-C timeout
// groups only when the matching Supports flag is set. The server validates
// those combinations.
type DeviceProfile struct {
	// ID is assigned by the server on create.
	ID                string
	TenantID          string
	Name              string
	Description       string
	Region            Region
	MACVersion        MACVersion
	RegParamsRevision RegParamsRevision
	ADRAlgorithmID    string
	UplinkInterval    uint32
	// DeviceStatusReqInterval is the end-device status request frequency
	// (requests/day); zero disables it.
	DeviceStatusReqInterval uint32

	SupportsOTAA   bool
	ABPRX1Delay    uint32
	ABPRX1DROffset uint32
	ABPRX2DR       uint32
	ABPRX2Freq     uint32

	SupportsClassB     bool
	ClassBTimeout      uint32
	ClassBPingSlotNbK  uint32
	ClassBPingSlotDR   uint32
	ClassBPingSlotFreq uint32

	SupportsClassC bool
	ClassCTimeout  uint32

	PayloadCodecRuntime    CodecRuntime
	PayloadCodecScript     string
	FlushQueueOnActivate   bool
	AutoDetectMeasurements bool
	AllowRoaming           bool
	Tags                   map[string]string
}

// DeviceProfileSummary is one row of a device-profile listing.
type DeviceProfileSummary struct {
	ID                string
	Name              string
	Region            Region
	MACVersion        MACVersion
	RegParamsRevision RegParamsRevision
	SupportsOTAA      bool
	SupportsClassB    bool
	SupportsClassC    bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DeviceProfilePage is one page of device-profile summaries plus the server's
// total count.
type DeviceProfilePage struct {
	TotalCount uint32
	Result     []DeviceProfileSummary
}

// CreateDeviceProfile creates a device profile under p.TenantID and returns
// the server-assigned identifier.
func (c *Client) CreateDeviceProfile(ctx context.Context, p *DeviceProfile) (string, error) {
	resp, err := c.deviceProfiles.Create(ctx, &api.CreateDeviceProfileRequest{DeviceProfile: deviceProfileToProto(p)})
	if err != nil {
		return "", wrapError("create device profile", err)
	}
	return resp.GetId(), nil
}

// GetDeviceProfile returns the full device-profile record.
func (c *Client) GetDeviceProfile(ctx context.Context, id string) (*DeviceProfile, error) {
	resp, err := c.deviceProfiles.Get(ctx, &api.GetDeviceProfileRequest{Id: id})
	if err != nil {
		return nil, wrapError("get device profile", err)
	}
	return deviceProfileFromProto(resp.GetDeviceProfile()), nil
}

// UpdateDeviceProfile replaces the device-profile record identified by p.ID.
func (c *Client) UpdateDeviceProfile(ctx context.Context, p *DeviceProfile) error {
	_, err := c.deviceProfiles.Update(ctx, &api.UpdateDeviceProfileRequest{DeviceProfile: deviceProfileToProto(p)})
	return wrapError("update device profile", err)
}

// DeleteDeviceProfile deletes the device profile.
func (c *Client) DeleteDeviceProfile(ctx context.Context, id string) error {
	_, err := c.deviceProfiles.Delete(ctx, &api.DeleteDeviceProfileRequest{Id: id})
	return wrapError("delete device profile", err)
}

// ListDeviceProfiles returns one page of device-profile summaries for a
// tenant.
func (c *Client) ListDeviceProfiles(ctx context.Context, tenantID string, opts ListOptions) (*DeviceProfilePage, error) {
	resp, err := c.deviceProfiles.List(ctx, &api.ListDeviceProfilesRequest{
		Limit:    opts.Limit,
		Offset:   opts.Offset,
		TenantId: tenantID,
	})
	if err != nil {
		return nil, wrapError("list device profiles", err)
	}
	page := &DeviceProfilePage{
		TotalCount: resp.GetTotalCount(),
		Result:     make([]DeviceProfileSummary, 0, len(resp.GetResult())),
	}
	for _, item := range resp.GetResult() {
		page.Result = append(page.Result, DeviceProfileSummary{
			ID:                item.GetId(),
			Name:              item.GetName(),
			Region:            item.GetRegion(),
			MACVersion:        item.GetMacVersion(),
			RegParamsRevision: item.GetRegParamsRevision(),
			SupportsOTAA:      item.GetSupportsOtaa(),
			SupportsClassB:    item.GetSupportsClassB(),
			SupportsClassC:    item.GetSupportsClassC(),
			CreatedAt:         tsToTime(item.GetCreatedAt()),
			UpdatedAt:         tsToTime(item.GetUpdatedAt()),
		})
	}
	return page, nil
}

// ListAllDeviceProfiles aggregates every page of ListDeviceProfiles for a
// tenant.
func (c *Client) ListAllDeviceProfiles(ctx context.Context, tenantID string) ([]DeviceProfileSummary, error) {
	return collectAll(ctx, c.pageSize, func(ctx context.Context, limit, offset uint32) ([]DeviceProfileSummary, uint32, error) {
		page, err := c.ListDeviceProfiles(ctx, tenantID, ListOptions{Limit: limit, Offset: offset})
		if err != nil {
			return nil, 0, err
		}
		return page.Result, page.TotalCount, nil
	})
}

func deviceProfileToProto(p *DeviceProfile) *api.DeviceProfile {
	if p == nil {
		return nil
	}
	return &api.DeviceProfile{
		Id:                      p.ID,
		TenantId:                p.TenantID,
		Name:                    p.Name,
		Description:             p.Description,
		Region:                  p.Region,
		MacVersion:              p.MACVersion,
		RegParamsRevision:       p.RegParamsRevision,
		AdrAlgorithmId:          p.ADRAlgorithmID,
		UplinkInterval:          p.UplinkInterval,
		DeviceStatusReqInterval: p.DeviceStatusReqInterval,
		SupportsOtaa:            p.SupportsOTAA,
		AbpRx1Delay:             p.ABPRX1Delay,
		AbpRx1DrOffset:          p.ABPRX1DROffset,
		AbpRx2Dr:                p.ABPRX2DR,
		AbpRx2Freq:              p.ABPRX2Freq,
		SupportsClassB:          p.SupportsClassB,
		ClassBTimeout:           p.ClassBTimeout,
		ClassBPingSlotNbK:       p.ClassBPingSlotNbK,
		ClassBPingSlotDr:        p.ClassBPingSlotDR,
		ClassBPingSlotFreq:      p.ClassBPingSlotFreq,
		SupportsClassC:          p.SupportsClassC,
		ClassCTimeout:           p.ClassCTimeout,
		PayloadCodecRuntime:     p.PayloadCodecRuntime,
		PayloadCodecScript:      p.PayloadCodecScript,
		FlushQueueOnActivate:    p.FlushQueueOnActivate,
		AutoDetectMeasurements:  p.AutoDetectMeasurements,
		AllowRoaming:            p.AllowRoaming,
		Tags:                    p.Tags,
	}
}

func deviceProfileFromProto(p *api.DeviceProfile) *DeviceProfile {
	if p == nil {
		return nil
	}
	return &DeviceProfile{
		ID:                      p.GetId(),
		TenantID:                p.GetTenantId(),
		Name:                    p.GetName(),
		Description:             p.GetDescription(),
		Region:                  p.GetRegion(),
		MACVersion:              p.GetMacVersion(),
		RegParamsRevision:       p.GetRegParamsRevision(),
		ADRAlgorithmID:          p.GetAdrAlgorithmId(),
		UplinkInterval:          p.GetUplinkInterval(),
		DeviceStatusReqInterval: p.GetDeviceStatusReqInterval(),
		SupportsOTAA:            p.GetSupportsOtaa(),
		ABPRX1Delay:             p.GetAbpRx1Delay(),
		ABPRX1DROffset:          p.GetAbpRx1DrOffset(),
		ABPRX2DR:                p.GetAbpRx2Dr(),
		ABPRX2Freq:              p.GetAbpRx2Freq(),
		SupportsClassB:          p.GetSupportsClassB(),
		ClassBTimeout:           p.GetClassBTimeout(),
		ClassBPingSlotNbK:       p.GetClassBPingSlotNbK(),
		ClassBPingSlotDR:        p.GetClassBPingSlotDr(),
		ClassBPingSlotFreq:      p.GetClassBPingSlotFreq(),
		SupportsClassC:          p.GetSupportsClassC(),
		ClassCTimeout:           p.GetClassCTimeout(),
		PayloadCodecRuntime:     p.GetPayloadCodecRuntime(),
		PayloadCodecScript:      p.GetPayloadCodecScript(),
		FlushQueueOnActivate:    p.GetFlushQueueOnActivate(),
		AutoDetectMeasurements:  p.GetAutoDetectMeasurements(),
		AllowRoaming:            p.GetAllowRoaming(),
		Tags:                    p.GetTags(),
	}
}
