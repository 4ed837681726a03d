package api

import (
	"context"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// ListUsers fetches one page of platform users.
func (c *Client) ListUsers(ctx context.Context, q model.ListQuery) (model.ResourceList[model.User], error) {
	return getList[model.User](ctx, c, "/api/v1/users", encodeQuery(q))
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/api/v1/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserStats fetches the user aggregate counts.
func (c *Client) GetUserStats(ctx context.Context) (model.UserStats, error) {
	var stats model.UserStats
	err := c.get(ctx, "/api/v1/users/stats", nil, &stats)
	return stats, err
}

// CreateUser creates a platform user. The backend assigns the id.
func (c *Client) CreateUser(ctx context.Context, input model.UserInput) (*model.User, error) {
	var user model.User
	if err := c.post(ctx, "/api/v1/users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserStatus activates or deactivates a user account.
func (c *Client) UpdateUserStatus(ctx context.Context, id string, isActive bool) (*model.User, error) {
	payload := struct {
		IsActive bool `json:"isActive"`
	}{IsActive: isActive}

	var user model.User
	if err := c.patch(ctx, "/api/v1/users/"+id+"/status", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/v1/users/"+id)
}
