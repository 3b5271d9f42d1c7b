package client

import (
	"context"
	"time"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
)

// Application is a flat application record owned by a tenant.
type Application struct {
	// ID is assigned by the server on create.
	ID          string
	Name        string
	Description string
	TenantID    string
	Tags        map[string]string
}

// ApplicationSummary is one row of an application listing.
type ApplicationSummary struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplicationPage is one page of application summaries plus the server's
// total count.
type ApplicationPage struct {
	TotalCount uint32
	Result     []ApplicationSummary
}

// CreateApplication creates an application under a.TenantID and returns the
// server-assigned identifier. ErrNotFound if the tenant does not exist.
func (c *Client) CreateApplication(ctx context.Context, a *Application) (string, error) {
	resp, err := c.applications.Create(ctx, &api.CreateApplicationRequest{Application: applicationToProto(a)})
	if err != nil {
		return "", wrapError("create application", err)
	}
	return resp.GetId(), nil
}

// GetApplication returns the full application record.
func (c *Client) GetApplication(ctx context.Context, id string) (*Application, error) {
	resp, err := c.applications.Get(ctx, &api.GetApplicationRequest{Id: id})
	if err != nil {
		return nil, wrapError("get application", err)
	}
	return applicationFromProto(resp.GetApplication()), nil
}

// UpdateApplication replaces the application record identified by a.ID.
func (c *Client) UpdateApplication(ctx context.Context, a *Application) error {
	_, err := c.applications.Update(ctx, &api.UpdateApplicationRequest{Application: applicationToProto(a)})
	return wrapError("update application", err)
}

// DeleteApplication deletes the application.
func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	_, err := c.applications.Delete(ctx, &api.DeleteApplicationRequest{Id: id})
	return wrapError("delete application", err)
}

// ListApplications returns one page of application summaries for a tenant.
func (c *Client) ListApplications(ctx context.Context, tenantID string, opts ListOptions) (*ApplicationPage, error) {
	resp, err := c.applications.List(ctx, &api.ListApplicationsRequest{
		Limit:    opts.Limit,
		Offset:   opts.Offset,
		TenantId: tenantID,
	})
	if err != nil {
		return nil, wrapError("list applications", err)
	}
	page := &ApplicationPage{
		TotalCount: resp.GetTotalCount(),
		Result:     make([]ApplicationSummary, 0, len(resp.GetResult())),
	}
	for _, item := range resp.GetResult() {
		page.Result = append(page.Result, ApplicationSummary{
			ID:          item.GetId(),
			Name:        item.GetName(),
			Description: item.GetDescription(),
			CreatedAt:   tsToTime(item.GetCreatedAt()),
			UpdatedAt:   tsToTime(item.GetUpdatedAt()),
		})
	}
	return page, nil
}

// ListAllApplications aggregates every page of ListApplications for a tenant.
func (c *Client) ListAllApplications(ctx context.Context, tenantID string) ([]ApplicationSummary, error) {
	return collectAll(ctx, c.pageSize, func(ctx context.Context, limit, offset uint32) ([]ApplicationSummary, uint32, error) {
		page, err := c.ListApplications(ctx, tenantID, ListOptions{Limit: limit, Offset: offset})
		if err != nil {
			return nil, 0, err
		}
		return page.Result, page.TotalCount, nil
	})
}

func applicationToProto(a *Application) *api.Application {
	if a == nil {
		return nil
	}
	return &api.Application{
		Id:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		TenantId:    a.TenantID,
		Tags:        a.Tags,
	}
}

func applicationFromProto(a *api.Application) *Application {
	if a == nil {
		return nil
	}
	return &Application{
		ID:          a.GetId(),
		Name:        a.GetName(),
		Description: a.GetDescription(),
		TenantID:    a.GetTenantId(),
		Tags:        a.GetTags(),
	}
}
