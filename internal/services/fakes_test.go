package services

import (
	"context"
	"sort"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// In-memory store fakes backing the service tests.

type fakeRequestStore struct {
	requests map[int]*models.DistributionRequest
	nextID   int
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[int]*models.DistributionRequest), nextID: 1}
}

func (f *fakeRequestStore) Create(ctx context.Context, req *models.DistributionRequest) error {
	req.ID = f.nextID
	f.nextID++
	req.Status = models.RequestPending
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeRequestStore) Get(ctx context.Context, id int) (*models.DistributionRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (f *fakeRequestStore) List(ctx context.Context, filter models.RequestFilter) ([]models.DistributionRequest, error) {
	var out []models.DistributionRequest
	for _, req := range f.requests {
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.Type != "" && req.Type != filter.Type {
			continue
		}
		if filter.Priority != "" && req.Priority != filter.Priority {
			continue
		}
		out = append(out, *req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRequestStore) Approve(ctx context.Context, id int, approvedQuantity, courierID, approvedBy int, adminNotes string) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.Status != models.RequestPending {
		return false, nil
	}
	req.Status = models.RequestApproved
	req.ApprovedQuantity = &approvedQuantity
	req.AssignedCourierID = &courierID
	req.ApprovedBy = &approvedBy
	req.AdminNotes = &adminNotes
	return true, nil
}

func (f *fakeRequestStore) Reject(ctx context.Context, id int, reason string, rejectedBy int) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.Status != models.RequestPending {
		return false, nil
	}
	req.Status = models.RequestRejected
	req.RejectionReason = &reason
	req.ApprovedBy = &rejectedBy
	return true, nil
}

func (f *fakeRequestStore) SetStatus(ctx context.Context, id int, status string) error {
	if req, ok := f.requests[id]; ok {
		req.Status = status
	}
	return nil
}

func (f *fakeRequestStore) CountPending(ctx context.Context) (int, error) {
	count := 0
	for _, req := range f.requests {
		if req.Status == models.RequestPending {
			count++
		}
	}
	return count, nil
}

func (f *fakeRequestStore) Stats(ctx context.Context) (*models.RequestStats, error) {
	stats := &models.RequestStats{ByStatus: map[string]int{}, ByPriority: map[string]int{}}
	for _, req := range f.requests {
		stats.Total++
		stats.ByStatus[req.Status]++
		stats.ByPriority[req.Priority]++
	}
	return stats, nil
}

type fakeTaskStore struct {
	tasks  map[int]*models.Task
	nextID int
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int]*models.Task), nextID: 1}
}

func (f *fakeTaskStore) CreateBatch(ctx context.Context, batch []models.Task) ([]int, error) {
	var ids []int
	for _, t := range batch {
		t.ID = f.nextID
		f.nextID++
		t.Status = models.TaskAssigned
		copied := t
		f.tasks[t.ID] = &copied
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (f *fakeTaskStore) Get(ctx context.Context, id int) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTaskStore) ListByRequest(ctx context.Context, requestID int) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.RequestID == requestID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskStore) ListByCourier(ctx context.Context, courierID int) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.CourierID == courierID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskStore) SetStatus(ctx context.Context, id int, status string) error {
	if t, ok := f.tasks[id]; ok {
		t.Status = status
	}
	return nil
}

func (f *fakeTaskStore) StatusCounts(ctx context.Context, requestID int) (map[string]int, error) {
	counts := make(map[string]int)
	for _, t := range f.tasks {
		if t.RequestID == requestID {
			counts[t.Status]++
		}
	}
	return counts, nil
}

func (f *fakeTaskStore) Counts(ctx context.Context) (int, int, error) {
	total, delivered := 0, 0
	for _, t := range f.tasks {
		total++
		if t.Status == models.TaskDelivered {
			delivered++
		}
	}
	return total, delivered, nil
}

type fakeBeneficiaryStore struct {
	beneficiaries map[int]*models.Beneficiary
	deliveries    map[int]int
}

func newFakeBeneficiaryStore(bs ...models.Beneficiary) *fakeBeneficiaryStore {
	f := &fakeBeneficiaryStore{
		beneficiaries: make(map[int]*models.Beneficiary),
		deliveries:    make(map[int]int),
	}
	for i := range bs {
		b := bs[i]
		f.beneficiaries[b.ID] = &b
	}
	return f
}

func (f *fakeBeneficiaryStore) CountByIDs(ctx context.Context, ids []int) (int, error) {
	count := 0
	for _, id := range ids {
		if _, ok := f.beneficiaries[id]; ok {
			count++
		}
	}
	return count, nil
}

func (f *fakeBeneficiaryStore) ListByArea(ctx context.Context, filter models.AreaFilter) ([]models.Beneficiary, error) {
	var out []models.Beneficiary
	for _, b := range f.beneficiaries {
		if filter.Governorate != "" && b.Governorate != filter.Governorate {
			continue
		}
		if filter.City != "" && b.City != filter.City {
			continue
		}
		if filter.District != "" && b.District != filter.District {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBeneficiaryStore) RecordDelivery(ctx context.Context, id int) error {
	f.deliveries[id]++
	if b, ok := f.beneficiaries[id]; ok {
		b.PackagesReceived++
	}
	return nil
}

type fakeTemplateStore struct {
	templates map[int]*models.PackageTemplate
	usage     map[int]int
}

func newFakeTemplateStore(ts ...models.PackageTemplate) *fakeTemplateStore {
	f := &fakeTemplateStore{
		templates: make(map[int]*models.PackageTemplate),
		usage:     make(map[int]int),
	}
	for i := range ts {
		t := ts[i]
		f.templates[t.ID] = &t
	}
	return f
}

func (f *fakeTemplateStore) Get(ctx context.Context, id int) (*models.PackageTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTemplateStore) IncrementUsage(ctx context.Context, id int) error {
	f.usage[id]++
	return nil
}

type fakeCourierStore struct {
	couriers  map[int]*models.Courier
	completed map[int]int
}

func newFakeCourierStore(cs ...models.Courier) *fakeCourierStore {
	f := &fakeCourierStore{
		couriers:  make(map[int]*models.Courier),
		completed: make(map[int]int),
	}
	for i := range cs {
		c := cs[i]
		f.couriers[c.ID] = &c
	}
	return f
}

func (f *fakeCourierStore) Get(ctx context.Context, id int) (*models.Courier, error) {
	c, ok := f.couriers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourierStore) SetStatus(ctx context.Context, id int, status string) error {
	if c, ok := f.couriers[id]; ok {
		c.Status = status
	}
	return nil
}

func (f *fakeCourierStore) RecordCompletedTask(ctx context.Context, id int) error {
	f.completed[id]++
	return nil
}

type fakeAlertStore struct {
	alerts []*models.Alert
	nextID int
}

func newFakeAlertStore() *fakeAlertStore {
	return &fakeAlertStore{nextID: 1}
}

func (f *fakeAlertStore) Create(ctx context.Context, a *models.Alert) error {
	a.ID = f.nextID
	f.nextID++
	copied := *a
	f.alerts = append(f.alerts, &copied)
	return nil
}

func (f *fakeAlertStore) List(ctx context.Context) ([]models.Alert, error) {
	out := make([]models.Alert, 0, len(f.alerts))
	for i := len(f.alerts) - 1; i >= 0; i-- {
		out = append(out, *f.alerts[i])
	}
	return out, nil
}

func (f *fakeAlertStore) HasUnreadOfType(ctx context.Context, alertType string) (bool, error) {
	for _, a := range f.alerts {
		if a.Type == alertType && !a.IsRead {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAlertStore) MarkRead(ctx context.Context, id int) error {
	for _, a := range f.alerts {
		if a.ID == id {
			a.IsRead = true
		}
	}
	return nil
}

func (f *fakeAlertStore) Delete(ctx context.Context, id int) error {
	for i, a := range f.alerts {
		if a.ID == id {
			f.alerts = append(f.alerts[:i], f.alerts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeAlertStore) CountUnread(ctx context.Context) (int, error) {
	count := 0
	for _, a := range f.alerts {
		if !a.IsRead {
			count++
		}
	}
	return count, nil
}

// noopAlerts satisfies alertDeriver for tests that don't exercise alerts
type noopAlerts struct{}

func (noopAlerts) Derive(ctx context.Context) error { return nil }

// recordingPublisher captures published events
type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(event string, payload interface{}) {
	p.events = append(p.events, event)
}
