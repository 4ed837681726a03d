package api

import (
	"context"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// ListNotifications fetches one page of notifications.
func (c *Client) ListNotifications(ctx context.Context, q model.ListQuery) (model.ResourceList[model.Notification], error) {
	return getList[model.Notification](ctx, c, "/api/v1/notifications", encodeQuery(q))
}

// GetNotification fetches a single notification by id.
func (c *Client) GetNotification(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	if err := c.get(ctx, "/api/v1/notifications/"+id, nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkNotificationRead marks one notification as read. The response
// may carry the updated record; a backend that returns no body yields
// a nil notification and the caller patches only the IsRead flag.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	if err := c.patch(ctx, "/api/v1/notifications/"+id+"/read", nil, &n); err != nil {
		return nil, err
	}
	if n.ID == "" {
		return nil, nil
	}
	return &n, nil
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.patch(ctx, "/api/v1/notifications/read-all", nil, nil)
}
