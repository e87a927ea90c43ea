package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"hospital-meals/internal/entities"
	apperrors "hospital-meals/pkg/errors"
	"hospital-meals/pkg/eventbus"

	"github.com/aarondl/null/v8"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
)

type fakeOrderRepo struct {
	mu       sync.Mutex
	orders   map[uint64]*entities.Order
	patients map[uint64]entities.Patient
	items    map[uint64]entities.MenuItem
	nextID   uint64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[uint64]*entities.Order{},
		patients: map[uint64]entities.Patient{
			1: {ID: 1, MRN: "MRN-001", FullName: "John Doe", Ward: "Ward A", Bed: "A-12", DietaryRestrictions: "Low Sodium", Allergies: "Penicillin"},
			2: {ID: 2, MRN: "MRN-002", FullName: "Jane Smith", Ward: "Ward B", Bed: "B-03", DietaryRestrictions: "Diabetic", Allergies: "Nuts"},
		},
		items: map[uint64]entities.MenuItem{
			1: {ID: 1, Name: "Oatmeal", Category: "Breakfast", Dietary: "Vegetarian"},
		},
	}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entities.Order) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[order.PatientID]; !ok {
		return 0, &apperrors.ReferenceError{Entity: "patient"}
	}
	if _, ok := r.items[order.ItemID]; !ok {
		return 0, &apperrors.ReferenceError{Entity: "menu_item"}
	}
	r.nextID++
	stored := *order
	stored.ID = r.nextID
	r.orders[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uint64, status entities.OrderStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return apperrors.NewNotFoundError("order", id)
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (r *fakeOrderRepo) UpdateConsumption(_ context.Context, id uint64, c entities.ConsumptionStatus, waste int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return apperrors.NewNotFoundError("order", id)
	}
	o.ConsumptionStatus = c
	o.WastePercent = waste
	o.ConsumptionRecordedAt = null.TimeFrom(at)
	o.UpdatedAt = at
	return nil
}

func (r *fakeOrderRepo) view(o *entities.Order) entities.OrderView {
	p := r.patients[o.PatientID]
	return entities.OrderView{
		Order:               *o,
		PatientName:         p.FullName,
		Ward:                p.Ward,
		Bed:                 p.Bed,
		RoomNumber:          p.RoomNumber,
		DietaryRestrictions: p.DietaryRestrictions,
		Allergies:           p.Allergies,
		ItemName:            r.items[o.ItemID].Name,
	}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uint64) (*entities.OrderView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("order", id)
	}
	v := r.view(o)
	return &v, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter entities.OrderFilter) ([]entities.OrderView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]entities.OrderView, 0)
	for _, o := range r.orders {
		v := r.view(o)
		if filter.Status != "" && string(v.Status) != filter.Status {
			continue
		}
		if filter.Ward != "" && v.Ward != filter.Ward {
			continue
		}
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *fakeOrderRepo) stored(id uint64) entities.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.orders[id]
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []entities.AuditLog
	err     error
}

func (a *fakeAudit) Record(_ context.Context, entry entities.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, entry)
	return nil
}

func (a *fakeAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeBus struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (b *fakeBus) Publish(_ context.Context, event eventbus.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *fakeBus) published() []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.Event(nil), b.events...)
}

type fakeTiffinRepo struct {
	mu     sync.Mutex
	orders map[uint64]*entities.TiffinOrder
	nextID uint64
}

func newFakeTiffinRepo() *fakeTiffinRepo {
	return &fakeTiffinRepo{orders: map[uint64]*entities.TiffinOrder{}}
}

func (r *fakeTiffinRepo) Create(_ context.Context, order *entities.TiffinOrder) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *order
	stored.ID = r.nextID
	r.orders[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeTiffinRepo) Update(_ context.Context, order *entities.TiffinOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[order.ID]
	if !ok {
		return apperrors.NewNotFoundError("tiffin_order", order.ID)
	}
	updated := *order
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedBy = existing.CreatedBy
	r.orders[order.ID] = &updated
	return nil
}

func (r *fakeTiffinRepo) UpdateStatus(_ context.Context, order *entities.TiffinOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[order.ID]
	if !ok {
		return apperrors.NewNotFoundError("tiffin_order", order.ID)
	}
	existing.Status = order.Status
	existing.UpdatedAt = order.UpdatedAt
	return nil
}

func (r *fakeTiffinRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return apperrors.NewNotFoundError("tiffin_order", id)
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeTiffinRepo) FindByID(_ context.Context, id uint64) (*entities.TiffinOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("tiffin_order", id)
	}
	copied := *o
	return &copied, nil
}

func (r *fakeTiffinRepo) List(_ context.Context, filter entities.TiffinFilter) ([]entities.TiffinOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]entities.TiffinOrder, 0)
	for _, o := range r.orders {
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		if filter.Ward != "" && o.Ward != filter.Ward {
			continue
		}
		if filter.OrderDate != "" && o.OrderDateString() != filter.OrderDate {
			continue
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].OrderDate.Equal(result[j].OrderDate) {
			return result[i].OrderDate.After(result[j].OrderDate)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	default:
		c.values[key] = fmt.Sprint(v)
	}
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	fmt.Sscan(c.values[key], &n)
	n++
	c.values[key] = fmt.Sprint(n)
	return n, nil
}

func (c *fakeCache) Expire(_ context.Context, key string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok, nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

type fakeMenuRepo struct {
	items      []entities.MenuItem
	listCalls  int
	replaceErr error
}

func (r *fakeMenuRepo) List(_ context.Context) ([]entities.MenuItem, error) {
	r.listCalls++
	return append([]entities.MenuItem(nil), r.items...), nil
}

func (r *fakeMenuRepo) ReplaceAll(_ context.Context, _ pgx.Tx, items []entities.MenuItem) ([]entities.MenuItem, error) {
	if r.replaceErr != nil {
		return nil, r.replaceErr
	}
	replaced := make([]entities.MenuItem, len(items))
	for i, it := range items {
		it.ID = uint64(i + 1)
		replaced[i] = it
	}
	r.items = replaced
	return replaced, nil
}

// fakeTxManager вызывает fn без реальной транзакции.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	users map[string]*entities.User
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint64) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakePatientRepo struct {
	patients map[uint64]*entities.Patient
	nextID   uint64
}

func (r *fakePatientRepo) List(_ context.Context) ([]entities.Patient, error) {
	out := make([]entities.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePatientRepo) FindByID(_ context.Context, id uint64) (*entities.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("patient", id)
	}
	copied := *p
	return &copied, nil
}

func (r *fakePatientRepo) Create(_ context.Context, patient *entities.Patient) (uint64, error) {
	for _, p := range r.patients {
		if p.MRN == patient.MRN {
			return 0, apperrors.ErrConflict
		}
	}
	r.nextID++
	stored := *patient
	stored.ID = r.nextID
	r.patients[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakePatientRepo) Update(_ context.Context, patient *entities.Patient) error {
	if _, ok := r.patients[patient.ID]; !ok {
		return apperrors.NewNotFoundError("patient", patient.ID)
	}
	stored := *patient
	r.patients[patient.ID] = &stored
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.patients[id]; !ok {
		return apperrors.NewNotFoundError("patient", id)
	}
	delete(r.patients, id)
	return nil
}

type fakeReportRepo struct {
	dailySince  time.Time
	weeklySince time.Time
	wasteSince  time.Time
	topLimit    uint64
}

func (r *fakeReportRepo) DailyCounts(_ context.Context, since time.Time) ([]entities.DailyCount, error) {
	r.dailySince = since
	return []entities.DailyCount{{Day: since.Format(entities.DateLayout), Count: 1}}, nil
}

func (r *fakeReportRepo) WeeklyCounts(_ context.Context, since time.Time) ([]entities.WeeklyCount, error) {
	r.weeklySince = since
	return []entities.WeeklyCount{}, nil
}

func (r *fakeReportRepo) TopDishes(_ context.Context, limit uint64) ([]entities.DishCount, error) {
	r.topLimit = limit
	return []entities.DishCount{}, nil
}

func (r *fakeReportRepo) ByDietaryRestriction(_ context.Context) ([]entities.DietaryCount, error) {
	return []entities.DietaryCount{{Restriction: "None", Count: 2}}, nil
}

func (r *fakeReportRepo) WasteByWardDaily(_ context.Context, since time.Time) ([]entities.WardWaste, error) {
	r.wasteSince = since
	return []entities.WardWaste{}, nil
}
