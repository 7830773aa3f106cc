package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps counters and the movement log in memory. It implements
// both LedgerStore and CatalogStore and is used by tests and by the
// single-binary demo mode. The mutex makes every ApplyMovement a serialized
// check-and-mutate, matching the atomicity the SQL stores get from
// conditional updates.
type MemoryStore struct {
	mu        sync.RWMutex
	seq       int64
	sizes     map[string]*SizeCounters
	movements []Movement

	items     map[string]*Item
	links     []SharedLink
	brands    map[string]*Brand
	promoters map[string]*Promoter
	employees map[string]*Employee
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sizes:     make(map[string]*SizeCounters),
		items:     make(map[string]*Item),
		brands:    make(map[string]*Brand),
		promoters: make(map[string]*Promoter),
		employees: make(map[string]*Employee),
	}
}

// ApplyMovement applies the kind's counter effects and appends the movement
// under one lock, so a stale read can never pass validation.
func (s *MemoryStore) ApplyMovement(ctx context.Context, m *Movement) (*Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	size, ok := s.sizes[m.SizeID]
	if !ok || size.ItemID != m.ItemID {
		return nil, ErrNotFound
	}

	switch m.Kind {
	case KindTakeOut:
		if size.Available < m.Quantity {
			return nil, ErrInsufficientAvailable
		}
		size.Available -= m.Quantity
		size.InCirculation += m.Quantity
	case KindReturn:
		if size.InCirculation < m.Quantity {
			return nil, ErrInsufficientCirculation
		}
		size.InCirculation -= m.Quantity
		size.Available += m.Quantity
	case KindBurn:
		if size.InCirculation < m.Quantity {
			return nil, ErrInsufficientCirculation
		}
		size.InCirculation -= m.Quantity
	case KindRestock:
		size.Available += m.Quantity
		size.Original += m.Quantity
	default:
		return nil, ErrNotFound
	}

	s.seq++
	m.Seq = s.seq
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now()
	s.movements = append(s.movements, *m)
	stored := *m
	return &stored, nil
}

func (s *MemoryStore) InsertSize(ctx context.Context, size *SizeCounters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if size.ID == "" {
		size.ID = uuid.New().String()
	}
	if _, exists := s.sizes[size.ID]; exists {
		return ErrDuplicateKey
	}
	cp := *size
	s.sizes[size.ID] = &cp
	return nil
}

func (s *MemoryStore) SizeByID(ctx context.Context, sizeID string) (*SizeCounters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size, ok := s.sizes[sizeID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *size
	return &cp, nil
}

func (s *MemoryStore) SizesByItem(ctx context.Context, itemID string) ([]SizeCounters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []SizeCounters
	for _, size := range s.sizes {
		if size.ItemID == itemID {
			out = append(out, *size)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out, nil
}

func (s *MemoryStore) MovementsByPromoter(ctx context.Context, promoterID string) ([]Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Movement
	for _, m := range s.movements {
		if m.PromoterID == promoterID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) MovementsByItem(ctx context.Context, itemID string, limit, offset int) ([]Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []Movement
	for i := len(s.movements) - 1; i >= 0; i-- {
		if s.movements[i].ItemID == itemID {
			all = append(all, s.movements[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Catalog side

func (s *MemoryStore) CreateItem(ctx context.Context, item *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *MemoryStore) ItemByID(ctx context.Context, id string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *MemoryStore) UpdateItem(ctx context.Context, item *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[item.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Name = item.Name
	cur.ProductCode = item.ProductCode
	cur.IsActive = item.IsActive
	return nil
}

func (s *MemoryStore) ItemsByBrand(ctx context.Context, brandID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Item
	for _, item := range s.items {
		if item.BrandID == brandID {
			out = append(out, *item)
		}
	}
	for _, link := range s.links {
		if link.BrandID != brandID {
			continue
		}
		if item, ok := s.items[link.ItemID]; ok && item.BrandID != brandID {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *MemoryStore) SetItemShared(ctx context.Context, itemID string, shared bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return ErrNotFound
	}
	item.IsShared = shared
	return nil
}

func (s *MemoryStore) InsertSharedLink(ctx context.Context, itemID, brandID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, link := range s.links {
		if link.ItemID == itemID && link.BrandID == brandID {
			return ErrDuplicateKey
		}
	}
	s.links = append(s.links, SharedLink{ID: uuid.New().String(), ItemID: itemID, BrandID: brandID})
	return nil
}

func (s *MemoryStore) DeleteSharedLink(ctx context.Context, itemID, brandID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, link := range s.links {
		if link.ItemID == itemID && link.BrandID == brandID {
			s.links = append(s.links[:i], s.links[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) SharedBrands(ctx context.Context, itemID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for _, link := range s.links {
		if link.ItemID == itemID {
			out = append(out, link.BrandID)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateBrand(ctx context.Context, b *Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	cp := *b
	s.brands[b.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateBrand(ctx context.Context, b *Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.brands[b.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Name = b.Name
	cur.IsActive = b.IsActive
	cur.IsPinned = b.IsPinned
	return nil
}

func (s *MemoryStore) BrandByID(ctx context.Context, id string) (*Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.brands[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *MemoryStore) Brands(ctx context.Context) ([]Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Brand
	for _, b := range s.brands {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) CreatePromoter(ctx context.Context, p *Promoter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := *p
	s.promoters[p.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdatePromoter(ctx context.Context, p *Promoter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.promoters[p.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Name = p.Name
	cur.PhoneNumber = p.PhoneNumber
	cur.Notes = p.Notes
	cur.IsActive = p.IsActive
	return nil
}

func (s *MemoryStore) Promoters(ctx context.Context) ([]Promoter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Promoter
	for _, p := range s.promoters {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) PromoterByID(ctx context.Context, id string) (*Promoter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.promoters[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) CreateEmployee(ctx context.Context, e *Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	cp := *e
	s.employees[e.ID] = &cp
	return nil
}

func (s *MemoryStore) Employees(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Employee
	for _, e := range s.employees {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (s *MemoryStore) EmployeeByID(ctx context.Context, id string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *MemoryStore) EmployeeByName(ctx context.Context, fullName string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.FullName == fullName {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
