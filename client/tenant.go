package client

import (
	"context"
	"time"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
)

// Tenant is a flat tenant record. Relationships (tenant owns applications and
// gateways) are enforced server-side; the client maps fields verbatim.
type Tenant struct {
	// ID is assigned by the server on create.
	ID                  string
	Name                string
	Description         string
	CanHaveGateways     bool
	MaxGatewayCount     uint32
	MaxDeviceCount      uint32
	PrivateGatewaysUp   bool
	PrivateGatewaysDown bool
	Tags                map[string]string
}

// TenantSummary is one row of a tenant listing.
type TenantSummary struct {
	ID                  string
	Name                string
	CanHaveGateways     bool
	PrivateGatewaysUp   bool
	PrivateGatewaysDown bool
	MaxGatewayCount     uint32
	MaxDeviceCount      uint32
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TenantPage is one page of tenant summaries plus the server's total count.
type TenantPage struct {
	TotalCount uint32
	Result     []TenantSummary
}

// CreateTenant creates a tenant and returns the server-assigned identifier.
func (c *Client) CreateTenant(ctx context.Context, t *Tenant) (string, error) {
	resp, err := c.tenants.Create(ctx, &api.CreateTenantRequest{Tenant: tenantToProto(t)})
	if err != nil {
		return "", wrapError("create tenant", err)
	}
	return resp.GetId(), nil
}

// GetTenant returns the full tenant record.
func (c *Client) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	resp, err := c.tenants.Get(ctx, &api.GetTenantRequest{Id: id})
	if err != nil {
		return nil, wrapError("get tenant", err)
	}
	return tenantFromProto(resp.GetTenant()), nil
}

// UpdateTenant replaces the tenant record identified by t.ID.
func (c *Client) UpdateTenant(ctx context.Context, t *Tenant) error {
	_, err := c.tenants.Update(ctx, &api.UpdateTenantRequest{Tenant: tenantToProto(t)})
	return wrapError("update tenant", err)
}

// DeleteTenant deletes the tenant. A repeat delete surfaces ErrNotFound.
func (c *Client) DeleteTenant(ctx context.Context, id string) error {
	_, err := c.tenants.Delete(ctx, &api.DeleteTenantRequest{Id: id})
	return wrapError("delete tenant", err)
}

// ListTenants returns one page of tenant summaries.
func (c *Client) ListTenants(ctx context.Context, opts ListOptions) (*TenantPage, error) {
	resp, err := c.tenants.List(ctx, &api.ListTenantsRequest{
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
	if err != nil {
		return nil, wrapError("list tenants", err)
	}
	page := &TenantPage{
		TotalCount: resp.GetTotalCount(),
		Result:     make([]TenantSummary, 0, len(resp.GetResult())),
	}
	for _, item := range resp.GetResult() {
		page.Result = append(page.Result, tenantSummaryFromProto(item))
	}
	return page, nil
}

// ListAllTenants aggregates every page of ListTenants.
func (c *Client) ListAllTenants(ctx context.Context) ([]TenantSummary, error) {
	return collectAll(ctx, c.pageSize, func(ctx context.Context, limit, offset uint32) ([]TenantSummary, uint32, error) {
		page, err := c.ListTenants(ctx, ListOptions{Limit: limit, Offset: offset})
		if err != nil {
			return nil, 0, err
		}
		return page.Result, page.TotalCount, nil
	})
}

func tenantToProto(t *Tenant) *api.Tenant {
	if t == nil {
		return nil
	}
	return &api.Tenant{
		Id:                  t.ID,
		Name:                t.Name,
		Description:         t.Description,
		CanHaveGateways:     t.CanHaveGateways,
		MaxGatewayCount:     t.MaxGatewayCount,
		MaxDeviceCount:      t.MaxDeviceCount,
		PrivateGatewaysUp:   t.PrivateGatewaysUp,
		PrivateGatewaysDown: t.PrivateGatewaysDown,
		Tags:                t.Tags,
	}
}

func tenantFromProto(t *api.Tenant) *Tenant {
	if t == nil {
		return nil
	}
	return &Tenant{
		ID:                  t.GetId(),
		Name:                t.GetName(),
		Description:         t.GetDescription(),
		CanHaveGateways:     t.GetCanHaveGateways(),
		MaxGatewayCount:     t.GetMaxGatewayCount(),
		MaxDeviceCount:      t.GetMaxDeviceCount(),
		PrivateGatewaysUp:   t.GetPrivateGatewaysUp(),
		PrivateGatewaysDown: t.GetPrivateGatewaysDown(),
		Tags:                t.GetTags(),
	}
}

func tenantSummaryFromProto(item *api.TenantListItem) TenantSummary {
	return TenantSummary{
		ID:                  item.GetId(),
		Name:                item.GetName(),
		CanHaveGateways:     item.GetCanHaveGateways(),
		PrivateGatewaysUp:   item.GetPrivateGatewaysUp(),
		PrivateGatewaysDown: item.GetPrivateGatewaysDown(),
		MaxGatewayCount:     item.GetMaxGatewayCount(),
		MaxDeviceCount:      item.GetMaxDeviceCount(),
		CreatedAt:           tsToTime(item.GetCreatedAt()),
		UpdatedAt:           tsToTime(item.GetUpdatedAt()),
	}
}
