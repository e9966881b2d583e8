package purchases

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

// memStore estado compartido de los repos en memoria para las pruebas.
type memStore struct {
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	purchases map[string]*entity.Purchase
	details   map[string][]*entity.PurchaseDetail
	movements []*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		suppliers: make(map[string]*entity.Supplier),
		purchases: make(map[string]*entity.Purchase),
		details:   make(map[string][]*entity.PurchaseDetail),
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, sp := range s.suppliers {
		cp := *sp
		c.suppliers[id] = &cp
	}
	for id, p := range s.purchases {
		cp := *p
		if p.ReceivedDate != nil {
			d := *p.ReceivedDate
			cp.ReceivedDate = &d
		}
		c.purchases[id] = &cp
	}
	for id, ds := range s.details {
		cp := make([]*entity.PurchaseDetail, len(ds))
		for i, d := range ds {
			dd := *d
			cp[i] = &dd
		}
		c.details[id] = cp
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
	s.suppliers = from.suppliers
	s.purchases = from.purchases
	s.details = from.details
	s.movements = from.movements
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(&memPurchaseRepo{r.store}, &memProductRepo{r.store}, &memMovementRepo{r.store})
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

func (r *memProductRepo) ListActive(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListLowStock() ([]*entity.Product, error)                { return nil, nil }
func (r *memProductRepo) Search(term string, limit int) ([]*entity.Product, error) {
	return nil, nil
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

type memPurchaseRepo struct{ store *memStore }

func (r *memPurchaseRepo) Create(p *entity.Purchase) error {
	r.store.purchases[p.ID] = p
	return nil
}

func (r *memPurchaseRepo) CreateDetail(d *entity.PurchaseDetail) error {
	r.store.details[d.PurchaseID] = append(r.store.details[d.PurchaseID], d)
	return nil
}

func (r *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.store.purchases[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *memPurchaseRepo) GetDetails(purchaseID string) ([]*entity.PurchaseDetail, error) {
	return r.store.details[purchaseID], nil
}

func (r *memPurchaseRepo) UpdateState(id, state string, receivedDate *time.Time) error {
	p, ok := r.store.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.State = state
	if receivedDate != nil {
		p.ReceivedDate = receivedDate
	}
	return nil
}

func (r *memPurchaseRepo) LastNumber(prefix string, year int) (string, error) {
	// Mismo contrato que el repo real: gana la secuencia numérica más alta,
	// no el string mayor.
	want := fmt.Sprintf("%s-%d-", prefix, year)
	best, bestSeq := "", -1
	for _, p := range r.store.purchases {
		if !strings.HasPrefix(p.Number, want) {
			continue
		}
		seq, err := strconv.Atoi(p.Number[len(want):])
		if err != nil {
			continue
		}
		if seq > bestSeq {
			best, bestSeq = p.Number, seq
		}
	}
	return best, nil
}

func (r *memPurchaseRepo) ListByState(state string, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.store.purchases {
		if p.State == state {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPurchaseRepo) ListByDateRange(from, to time.Time) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.store.purchases {
		if !p.Date.Before(from) && !p.Date.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit int) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByType(movementType string, limit int) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByDateRange(from, to time.Time) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListRecent(limit int) ([]*entity.Movement, error) { return nil, nil }

type memSupplierRepo struct{ store *memStore }

func (r *memSupplierRepo) Create(s *entity.Supplier) error { r.store.suppliers[s.ID] = s; return nil }

func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *memSupplierRepo) GetByRUC(ruc string) (*entity.Supplier, error) {
	for _, s := range r.store.suppliers {
		if s.RUC == ruc {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memSupplierRepo) ListActive(limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *memSupplierRepo) Update(s *entity.Supplier) error { r.store.suppliers[s.ID] = s; return nil }
func (r *memSupplierRepo) Deactivate(id string) error      { return nil }
