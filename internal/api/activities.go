package api

import (
	"context"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// ListActivities fetches one page of audit-log records.
func (c *Client) ListActivities(ctx context.Context, q model.ListQuery) (model.ResourceList[model.Activity], error) {
	return getList[model.Activity](ctx, c, "/api/v1/activities", encodeQuery(q))
}

// GetActivityStats fetches the activity aggregate. Hourly buckets are
// sorted client-side; the backend does not guarantee their order.
func (c *Client) GetActivityStats(ctx context.Context) (model.ActivityStats, error) {
	var stats model.ActivityStats
	if err := c.get(ctx, "/api/v1/activities/stats", nil, &stats); err != nil {
		return stats, err
	}
	model.SortByHour(stats.ByHour)
	return stats, nil
}

// ListSecurityEvents fetches one page of security-relevant activity
// records.
func (c *Client) ListSecurityEvents(ctx context.Context, q model.ListQuery) (model.ResourceList[model.Activity], error) {
	return getList[model.Activity](ctx, c, "/api/v1/activities/security", encodeQuery(q))
}
