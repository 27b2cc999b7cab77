package handler

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
	"github.com/iliyamo/bike-catalog-admin/internal/queue"
	"github.com/iliyamo/bike-catalog-admin/internal/repository"
)

// memCatalog is an in-memory catalog shared by the three fake stores. It
// enforces unique product type names and cascades deletes like the schema.
type memCatalog struct {
	mu     sync.Mutex
	nextID uint64
	pts    map[uint64]model.ProductType
	pcs    map[uint64]model.PartCategory
	pos    map[uint64]model.PartOption
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		pts: map[uint64]model.ProductType{},
		pcs: map[uint64]model.PartCategory{},
		pos: map[uint64]model.PartOption{},
	}
}

func (m *memCatalog) id() uint64 { m.nextID++; return m.nextID }

type ptStore struct{ *memCatalog }
type pcStore struct{ *memCatalog }
type poStore struct{ *memCatalog }

func (s ptStore) nameTaken(name string, except uint64) bool {
	for id, pt := range s.pts {
		if id != except && pt.Name == name {
			return true
		}
	}
	return false
}

func (s ptStore) Create(_ context.Context, pt *model.ProductType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(pt.Name, 0) {
		return repository.ErrConflict
	}
	pt.ID = s.id()
	s.pts[pt.ID] = *pt
	return nil
}

func (s ptStore) GetByID(_ context.Context, id uint64) (*model.ProductType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pt, ok := s.pts[id]
	if !ok {
		return nil, repository.ErrProductTypeNotFound
	}
	return &pt, nil
}

func (s ptStore) List(_ context.Context, skip, limit int) ([]*model.ProductType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.ProductType
	for _, pt := range s.pts {
		pt := pt
		out = append(out, &pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, skip, limit), nil
}

func (s ptStore) Update(_ context.Context, pt *model.ProductType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pts[pt.ID]; !ok {
		return repository.ErrProductTypeNotFound
	}
	if s.nameTaken(pt.Name, pt.ID) {
		return repository.ErrConflict
	}
	s.pts[pt.ID] = *pt
	return nil
}

func (s ptStore) Delete(_ context.Context, id uint64) (*model.ProductType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pt, ok := s.pts[id]
	if !ok {
		return nil, repository.ErrProductTypeNotFound
	}
	delete(s.pts, id)
	for cid, pc := range s.pcs {
		if pc.ProductTypeID == id {
			s.deleteCategory(cid)
		}
	}
	return &pt, nil
}

func (m *memCatalog) deleteCategory(id uint64) {
	delete(m.pcs, id)
	for oid, po := range m.pos {
		if po.PartCategoryID == id {
			delete(m.pos, oid)
		}
	}
}

func (s pcStore) Create(_ context.Context, pc *model.PartCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pts[pc.ProductTypeID]; !ok {
		return repository.ErrConflict
	}
	pc.ID = s.id()
	s.pcs[pc.ID] = *pc
	return nil
}

func (s pcStore) GetByID(_ context.Context, id uint64) (*model.PartCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pc, ok := s.pcs[id]
	if !ok {
		return nil, repository.ErrPartCategoryNotFound
	}
	return &pc, nil
}

func (s pcStore) ListByProductType(_ context.Context, ptID uint64, skip, limit int) ([]*model.PartCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.PartCategory
	for _, pc := range s.pcs {
		if pc.ProductTypeID == ptID {
			pc := pc
			out = append(out, &pc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return page(out, skip, limit), nil
}

func (s pcStore) Update(_ context.Context, pc *model.PartCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pcs[pc.ID]; !ok {
		return repository.ErrPartCategoryNotFound
	}
	s.pcs[pc.ID] = *pc
	return nil
}

func (s pcStore) Delete(_ context.Context, id uint64) (*model.PartCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pc, ok := s.pcs[id]
	if !ok {
		return nil, repository.ErrPartCategoryNotFound
	}
	s.deleteCategory(id)
	return &pc, nil
}

func (s poStore) Create(_ context.Context, po *model.PartOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pcs[po.PartCategoryID]; !ok {
		return repository.ErrConflict
	}
	po.ID = s.id()
	s.pos[po.ID] = *po
	return nil
}

func (s poStore) GetByID(_ context.Context, id uint64) (*model.PartOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	po, ok := s.pos[id]
	if !ok {
		return nil, repository.ErrPartOptionNotFound
	}
	return &po, nil
}

func (s poStore) ListByCategory(_ context.Context, pcID uint64, skip, limit int) ([]*model.PartOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.PartOption
	for _, po := range s.pos {
		if po.PartCategoryID == pcID {
			po := po
			out = append(out, &po)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, skip, limit), nil
}

func (s poStore) Update(_ context.Context, po *model.PartOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pos[po.ID]; !ok {
		return repository.ErrPartOptionNotFound
	}
	s.pos[po.ID] = *po
	return nil
}

func (s poStore) Delete(_ context.Context, id uint64) (*model.PartOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	po, ok := s.pos[id]
	if !ok {
		return nil, repository.ErrPartOptionNotFound
	}
	delete(s.pos, id)
	return &po, nil
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.CatalogChangedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.CatalogChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Resource+"."+ev.Action)
	}
	return out
}
