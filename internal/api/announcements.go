package api

import (
	"context"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// ListAnnouncements fetches one page of announcements.
func (c *Client) ListAnnouncements(ctx context.Context, q model.ListQuery) (model.ResourceList[model.Announcement], error) {
	return getList[model.Announcement](ctx, c, "/api/v1/announcements", encodeQuery(q))
}

// GetAnnouncementStats fetches the announcement aggregate counts.
func (c *Client) GetAnnouncementStats(ctx context.Context) (model.StatsSummary, error) {
	var stats model.StatsSummary
	err := c.get(ctx, "/api/v1/announcements/stats", nil, &stats)
	return stats, err
}

// GetAnnouncement fetches a single announcement by id.
func (c *Client) GetAnnouncement(ctx context.Context, id string) (*model.Announcement, error) {
	var a model.Announcement
	if err := c.get(ctx, "/api/v1/announcements/"+id, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAnnouncement creates a draft announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, input model.AnnouncementDraftInput) (*model.Announcement, error) {
	var a model.Announcement
	if err := c.post(ctx, "/api/v1/announcements", input, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAnnouncement updates an editable announcement.
func (c *Client) UpdateAnnouncement(ctx context.Context, id string, input model.AnnouncementDraftInput) (*model.Announcement, error) {
	var a model.Announcement
	if err := c.put(ctx, "/api/v1/announcements/"+id, input, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// SendAnnouncement queues an announcement for immediate delivery. The
// lifecycle transition (SENDING, then SENT) happens server-side; the
// page refetches to observe it.
func (c *Client) SendAnnouncement(ctx context.Context, id string) error {
	return c.post(ctx, "/api/v1/announcements/"+id+"/send", nil, nil)
}

// DeleteAnnouncement removes an announcement.
func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/v1/announcements/"+id)
}
