package notificationcenter

import (
	"context"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
)

// MemoryCenter is an in-process notification center. Nothing is delivered on
// its own; callers fire requests with MarkDelivered.
type MemoryCenter struct {
	mu         sync.Mutex
	pending    map[string]requestRecord
	delivered  map[string]requestRecord
	badge      int
	permission *bool

	defaultPermission bool
	now               func() time.Time
}

var (
	_ domain.NotificationCenter = (*MemoryCenter)(nil)
	_ domain.BadgeCounter       = (*MemoryCenter)(nil)
)

func NewMemoryCenter(defaultPermission bool, now func() time.Time) *MemoryCenter {
	if now == nil {
		now = time.Now
	}
	return &MemoryCenter{
		pending:           make(map[string]requestRecord),
		delivered:         make(map[string]requestRecord),
		defaultPermission: defaultPermission,
		now:               now,
	}
}

func (c *MemoryCenter) PendingRequests(_ context.Context) ([]domain.PendingRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.pending), nil
}

func (c *MemoryCenter) DeliveredRequests(_ context.Context) ([]domain.PendingRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.delivered), nil
}

func snapshot(m map[string]requestRecord) []domain.PendingRequest {
	records := make([]requestRecord, 0, len(m))
	for _, r := range m {
		records = append(records, r)
	}
	sortBySubmission(records)

	out := make([]domain.PendingRequest, 0, len(records))
	for _, r := range records {
		out = append(out, r.pending())
	}
	return out
}

func (c *MemoryCenter) RemoveAllDelivered(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.delivered)
	return nil
}

func (c *MemoryCenter) RemovePending(_ context.Context, identifiers []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range identifiers {
		delete(c.pending, id)
	}
	return nil
}

func (c *MemoryCenter) Submit(_ context.Context, req *domain.Request) error {
	if req == nil || req.Identifier == "" {
		return ErrInvalidRequestData
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[req.Identifier] = newRequestRecord(req, c.now())
	return nil
}

func (c *MemoryCenter) MarkDelivered(_ context.Context, identifier string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.pending[identifier]
	if !ok {
		return domain.ErrRequestNotFound
	}
	deliveredAt := c.now()
	record.DeliveredAt = &deliveredAt

	delete(c.pending, identifier)
	c.delivered[identifier] = record
	c.badge++
	return nil
}

func (c *MemoryCenter) RequestPermission(_ context.Context, _ domain.AuthorizationOptions) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.permission == nil {
		granted := c.defaultPermission
		c.permission = &granted
	}
	return *c.permission, nil
}

func (c *MemoryCenter) SetBadgeCount(_ context.Context, count int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.badge = count
	return nil
}

func (c *MemoryCenter) BadgeCount(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.badge, nil
}
