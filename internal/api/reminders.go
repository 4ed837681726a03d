package api

import (
	"context"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// CreateReminder creates a reminder. The backend assigns the id and
// the initial ACTIVE status.
func (c *Client) CreateReminder(ctx context.Context, input model.ReminderInput) (*model.Reminder, error) {
	var r model.Reminder
	if err := c.post(ctx, "/api/v1/reminders", input, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetDueReminders fetches the reminders due for attention, optionally
// narrowed by type.
func (c *Client) GetDueReminders(ctx context.Context, q model.ListQuery) (model.ResourceList[model.Reminder], error) {
	return getList[model.Reminder](ctx, c, "/api/v1/reminders/due", encodeQuery(q))
}
