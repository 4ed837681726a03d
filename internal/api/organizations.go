package api

import (
	"context"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// ListOrganizations fetches one page of cooperatives.
func (c *Client) ListOrganizations(ctx context.Context, q model.ListQuery) (model.ResourceList[model.Organization], error) {
	return getList[model.Organization](ctx, c, "/api/v1/organizations", encodeQuery(q))
}

// CreateOrganization registers a cooperative. The returned id feeds
// the admin-creation step of the registration wizard.
func (c *Client) CreateOrganization(ctx context.Context, input model.OrganizationInput) (*model.Organization, error) {
	var org model.Organization
	if err := c.post(ctx, "/api/v1/organizations", input, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// CreateOrganizationAdmin creates the admin account for a cooperative.
// input.CooperativeID must be an id previously returned by
// CreateOrganization. A 409 response is mapped to targeted copy by
// UserMessage depending on whether phone or email collided.
func (c *Client) CreateOrganizationAdmin(ctx context.Context, input model.AdminInput) (*model.User, error) {
	var admin model.User
	if err := c.post(ctx, "/api/v1/organizations/"+input.CooperativeID+"/admins", input, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// CreateTenant provisions a tenant.
func (c *Client) CreateTenant(ctx context.Context, input model.TenantInput) (*model.Tenant, error) {
	var t model.Tenant
	if err := c.post(ctx, "/api/v1/tenants", input, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
