package sales

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
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	details   map[string][]*entity.SaleDetail
	movements []*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[string]*entity.Sale),
		details:   make(map[string][]*entity.SaleDetail),
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, cu := range s.customers {
		cp := *cu
		c.customers[id] = &cp
	}
	for id, v := range s.sales {
		cp := *v
		c.sales[id] = &cp
	}
	for id, ds := range s.details {
		cp := make([]*entity.SaleDetail, len(ds))
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
	s.customers = from.customers
	s.sales = from.sales
	s.details = from.details
	s.movements = from.movements
}

// memTxRunner simula la transacción con snapshot + restore en caso de error.
type memTxRunner struct{ store *memStore }

func (r *memTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(&memSaleRepo{r.store}, &memProductRepo{r.store}, &memMovementRepo{r.store})
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

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

func (r *memProductRepo) Update(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *memProductRepo) Deactivate(id string) error {
	if p, ok := r.store.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

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

type memSaleRepo struct{ store *memStore }

func (r *memSaleRepo) Create(s *entity.Sale) error {
	r.store.sales[s.ID] = s
	return nil
}

func (r *memSaleRepo) CreateDetail(d *entity.SaleDetail) error {
	r.store.details[d.SaleID] = append(r.store.details[d.SaleID], d)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *memSaleRepo) GetDetails(saleID string) ([]*entity.SaleDetail, error) {
	return r.store.details[saleID], nil
}

func (r *memSaleRepo) UpdateState(id, state string) error {
	s, ok := r.store.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.State = state
	return nil
}

func (r *memSaleRepo) LastNumber(prefix string, year int) (string, error) {
	// Mismo contrato que el repo real: gana la secuencia numérica más alta,
	// no el string mayor.
	want := fmt.Sprintf("%s-%d-", prefix, year)
	best, bestSeq := "", -1
	for _, s := range r.store.sales {
		if !strings.HasPrefix(s.Number, want) {
			continue
		}
		seq, err := strconv.Atoi(s.Number[len(want):])
		if err != nil {
			continue
		}
		if seq > bestSeq {
			best, bestSeq = s.Number, seq
		}
	}
	return best, nil
}

func (r *memSaleRepo) ListByState(state string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.State == state {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListByDate(date time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListByDateRange(from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
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
	return r.store.movements, nil
}

type memCustomerRepo struct{ store *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	r.store.customers[c.ID] = c
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.store.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *memCustomerRepo) GetByDocument(document string) (*entity.Customer, error) {
	for _, c := range r.store.customers {
		if c.Document == document {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCustomerRepo) ListActive(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.store.customers {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) Update(c *entity.Customer) error {
	r.store.customers[c.ID] = c
	return nil
}

func (r *memCustomerRepo) Deactivate(id string) error {
	if c, ok := r.store.customers[id]; ok {
		c.Active = false
	}
	return nil
}
