package client

import (
	"context"
	"time"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
	"github.com/chirpstack/chirpstack/api/go/v4/common"
)

// LocationSource is the origin of a gateway's location fix.
type LocationSource = common.LocationSource

// Location sources.
const (
	LocationSourceUnknown = common.LocationSource_UNKNOWN
	LocationSourceGPS     = common.LocationSource_GPS
	LocationSourceConfig  = common.LocationSource_CONFIG
)

// Location is a gateway position.
type Location struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
	Source    LocationSource
	// Accuracy of the fix in meters.
	Accuracy float32
}

// Gateway is a flat gateway record. The GatewayID is the caller-supplied
// EUI64 identifier.
type Gateway struct {
	GatewayID   string
	Name        string
	Description string
	TenantID    string
	// StatsInterval is the expected statistics reporting interval in seconds.
	StatsInterval uint32
	Location      *Location
	Tags          map[string]string
	Metadata      map[string]string
}

// GatewaySummary is one row of a gateway listing.
type GatewaySummary struct {
	TenantID    string
	GatewayID   string
	Name        string
	Description string
	Location    *Location
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastSeenAt  time.Time
}

// GatewayPage is one page of gateway summaries plus the server's total count.
type GatewayPage struct {
	TotalCount uint32
	Result     []GatewaySummary
}

// CreateGateway registers a gateway and returns its GatewayID. ErrNotFound if
// the referenced tenant does not exist.
func (c *Client) CreateGateway(ctx context.Context, g *Gateway) (string, error) {
	_, err := c.gateways.Create(ctx, &api.CreateGatewayRequest{Gateway: gatewayToProto(g)})
	if err != nil {
		return "", wrapError("create gateway", err)
	}
	return g.GatewayID, nil
}

// GetGateway returns the full gateway record.
func (c *Client) GetGateway(ctx context.Context, gatewayID string) (*Gateway, error) {
	resp, err := c.gateways.Get(ctx, &api.GetGatewayRequest{GatewayId: gatewayID})
	if err != nil {
		return nil, wrapError("get gateway", err)
	}
	return gatewayFromProto(resp.GetGateway()), nil
}

// UpdateGateway replaces the gateway record identified by g.GatewayID.
func (c *Client) UpdateGateway(ctx context.Context, g *Gateway) error {
	_, err := c.gateways.Update(ctx, &api.UpdateGatewayRequest{Gateway: gatewayToProto(g)})
	return wrapError("update gateway", err)
}

// DeleteGateway deletes the gateway. A repeat delete surfaces ErrNotFound.
func (c *Client) DeleteGateway(ctx context.Context, gatewayID string) error {
	_, err := c.gateways.Delete(ctx, &api.DeleteGatewayRequest{GatewayId: gatewayID})
	return wrapError("delete gateway", err)
}

// ListGateways returns one page of gateway summaries. An empty tenantID lists
// across all tenants the session can see.
func (c *Client) ListGateways(ctx context.Context, tenantID string, opts ListOptions) (*GatewayPage, error) {
	resp, err := c.gateways.List(ctx, &api.ListGatewaysRequest{
		Limit:    opts.Limit,
		Offset:   opts.Offset,
		TenantId: tenantID,
	})
	if err != nil {
		return nil, wrapError("list gateways", err)
	}
	page := &GatewayPage{
		TotalCount: resp.GetTotalCount(),
		Result:     make([]GatewaySummary, 0, len(resp.GetResult())),
	}
	for _, item := range resp.GetResult() {
		page.Result = append(page.Result, GatewaySummary{
			TenantID:    item.GetTenantId(),
			GatewayID:   item.GetGatewayId(),
			Name:        item.GetName(),
			Description: item.GetDescription(),
			Location:    locationFromProto(item.GetLocation()),
			CreatedAt:   tsToTime(item.GetCreatedAt()),
			UpdatedAt:   tsToTime(item.GetUpdatedAt()),
			LastSeenAt:  tsToTime(item.GetLastSeenAt()),
		})
	}
	return page, nil
}

// ListAllGateways aggregates every page of ListGateways.
func (c *Client) ListAllGateways(ctx context.Context, tenantID string) ([]GatewaySummary, error) {
	return collectAll(ctx, c.pageSize, func(ctx context.Context, limit, offset uint32) ([]GatewaySummary, uint32, error) {
		page, err := c.ListGateways(ctx, tenantID, ListOptions{Limit: limit, Offset: offset})
		if err != nil {
			return nil, 0, err
		}
		return page.Result, page.TotalCount, nil
	})
}

func gatewayToProto(g *Gateway) *api.Gateway {
	if g == nil {
		return nil
	}
	return &api.Gateway{
		GatewayId:     g.GatewayID,
		Name:          g.Name,
		Description:   g.Description,
		TenantId:      g.TenantID,
		StatsInterval: g.StatsInterval,
		Location:      locationToProto(g.Location),
		Tags:          g.Tags,
		Metadata:      g.Metadata,
	}
}

func gatewayFromProto(g *api.Gateway) *Gateway {
	if g == nil {
		return nil
	}
	return &Gateway{
		GatewayID:     g.GetGatewayId(),
		Name:          g.GetName(),
		Description:   g.GetDescription(),
		TenantID:      g.GetTenantId(),
		StatsInterval: g.GetStatsInterval(),
		Location:      locationFromProto(g.GetLocation()),
		Tags:          g.GetTags(),
		Metadata:      g.GetMetadata(),
	}
}

func locationToProto(l *Location) *common.Location {
	if l == nil {
		return nil
	}
	return &common.Location{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Altitude:  l.Altitude,
		Source:    l.Source,
		Accuracy:  l.Accuracy,
	}
}

func locationFromProto(l *common.Location) *Location {
	if l == nil {
		return nil
	}
	return &Location{
		Latitude:  l.GetLatitude(),
		Longitude: l.GetLongitude(),
		Altitude:  l.GetAltitude(),
		Source:    l.GetSource(),
		Accuracy:  l.GetAccuracy(),
	}
}
