package api

import (
	"context"
	"net/url"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// GetAnalyticsSummary fetches the platform aggregate for one period.
// cooperativeID narrows the summary to one cooperative when non-empty.
func (c *Client) GetAnalyticsSummary(ctx context.Context, period, cooperativeID string) (model.AnalyticsSummary, error) {
	values := url.Values{}
	values.Set("period", period)
	if cooperativeID != "" {
		values.Set("cooperativeId", cooperativeID)
	}

	var summary model.AnalyticsSummary
	err := c.get(ctx, "/api/v1/analytics/summary", values, &summary)
	return summary, err
}

// ExportAnalytics fetches backend-rendered CSV text for the given
// export type and period. Unlike the per-page CSV export, this covers
// the full result set server-side.
func (c *Client) ExportAnalytics(ctx context.Context, exportType, period, cooperativeID string) (string, error) {
	values := url.Values{}
	values.Set("type", exportType)
	values.Set("period", period)
	if cooperativeID != "" {
		values.Set("cooperativeId", cooperativeID)
	}

	return c.getRaw(ctx, "/api/v1/analytics/export", values)
}

// GetOrganizationPaymentStats fetches the per-cooperative payment
// aggregate and status breakdown.
func (c *Client) GetOrganizationPaymentStats(ctx context.Context, q model.ListQuery) (model.OrganizationPaymentStats, error) {
	var stats model.OrganizationPaymentStats
	err := c.get(ctx, "/api/v1/payments/organization-stats", encodeQuery(q), &stats)
	return stats, err
}
