package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

type memStore struct {
	products  map[string]*entity.Product
	movements []*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{products: make(map[string]*entity.Product)}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.movements = make([]*entity.Movement, len(s.movements))
	for i, m := range s.movements {
		mm := *m
		c.movements[i] = &mm
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.movements = from.movements
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(&memProductRepo{r.store}, &memMovementRepo{r.store})
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.store.products[p.ID] = p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memProductRepo) ListActive(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.Active && p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Search(term string, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error { r.store.products[p.ID] = p; return nil }
func (r *memProductRepo) Deactivate(id string) error     { return nil }

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) AdjustStock(id string, delta int) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
	return nil
}

func (r *memProductRepo) SetStock(id string, stock int) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByType(movementType string, limit int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.Type == movementType {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByDateRange(from, to time.Time) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListRecent(limit int) ([]*entity.Movement, error) {
	if limit > 0 && len(r.store.movements) > limit {
		return r.store.movements[len(r.store.movements)-limit:], nil
	}
	return r.store.movements, nil
}
