package service_test

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/pkg/pagination"
)

// memStore is an in-memory stand-in for the database, shared by the fake
// repositories. Transactions serialize on the store mutex and roll back by
// restoring a snapshot, which gives the same observable behavior as the real
// row-locked transactions: concurrent checkouts execute one at a time and a
// failed one leaves no trace.
type memStore struct {
	mu        sync.Mutex
	products  map[uuid.UUID]*entity.Product
	stockLogs []entity.StockLog
	sales     map[uuid.UUID]*entity.Sale
	saleItems []entity.SaleItem
	payments  map[string]*entity.Payment
	customers map[uuid.UUID]*entity.Customer
	loyalty   []entity.LoyaltyTransaction
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[uuid.UUID]*entity.Product),
		sales:     make(map[uuid.UUID]*entity.Sale),
		payments:  make(map[string]*entity.Payment),
		customers: make(map[uuid.UUID]*entity.Customer),
	}
}

type txKey struct{}

// acquire locks the store unless the context is already inside a transaction
// (the transaction holds the lock for its whole duration).
func (s *memStore) acquire(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, sale := range s.sales {
		cp := *sale
		snap.sales[id] = &cp
	}
	for id, p := range s.payments {
		cp := *p
		snap.payments[id] = &cp
	}
	for id, c := range s.customers {
		cp := *c
		snap.customers[id] = &cp
	}
	snap.stockLogs = append([]entity.StockLog(nil), s.stockLogs...)
	snap.saleItems = append([]entity.SaleItem(nil), s.saleItems...)
	snap.loyalty = append([]entity.LoyaltyTransaction(nil), s.loyalty...)
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.sales = snap.sales
	s.payments = snap.payments
	s.customers = snap.customers
	s.stockLogs = snap.stockLogs
	s.saleItems = snap.saleItems
	s.loyalty = snap.loyalty
}

// fakeTxManager runs fn with the store locked and restores the pre-transaction
// snapshot when fn fails.
type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeProductRepo struct{ store *memStore }

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	defer r.store.acquire(ctx)()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	defer r.store.acquire(ctx)()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	defer r.store.acquire(ctx)()
	for _, p := range r.store.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	defer r.store.acquire(ctx)()
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error {
	defer r.store.acquire(ctx)()
	if p, ok := r.store.products[id]; ok {
		p.StockQuantity = newStock
	}
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.acquire(ctx)()
	delete(r.store.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	defer r.store.acquire(ctx)()
	var out []entity.Product
	for _, p := range r.store.products {
		if !params.IncludeInactive && !p.IsActive {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	defer r.store.acquire(ctx)()
	var out []entity.Product
	for _, p := range r.store.products {
		if p.IsActive && p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeStockLogRepo struct{ store *memStore }

func (r *fakeStockLogRepo) Create(ctx context.Context, log *entity.StockLog) error {
	defer r.store.acquire(ctx)()
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	r.store.stockLogs = append(r.store.stockLogs, *log)
	return nil
}

func (r *fakeStockLogRepo) ListRecentByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]entity.StockLog, error) {
	logs, err := r.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	// newest first
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (r *fakeStockLogRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.StockLog, error) {
	defer r.store.acquire(ctx)()
	var out []entity.StockLog
	for _, l := range r.store.stockLogs {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeSaleRepo struct{ store *memStore }

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	defer r.store.acquire(ctx)()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	cp := *sale
	r.store.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	defer r.store.acquire(ctx)()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.store.saleItems = append(r.store.saleItems, *item)
	return nil
}

func (r *fakeSaleRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	defer r.store.acquire(ctx)()
	sale, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	for _, item := range r.store.saleItems {
		if item.SaleID == id {
			cp.Items = append(cp.Items, item)
		}
	}
	for _, p := range r.store.payments {
		if p.SaleID == id {
			pc := *p
			cp.Payment = &pc
			break
		}
	}
	if cp.CustomerID != nil {
		if c, ok := r.store.customers[*cp.CustomerID]; ok {
			cc := *c
			cp.Customer = &cc
		}
	}
	return &cp, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	defer r.store.acquire(ctx)()
	var out []entity.Sale
	for _, sale := range r.store.sales {
		if params.CustomerID != nil && (sale.CustomerID == nil || *sale.CustomerID != *params.CustomerID) {
			continue
		}
		if params.CreatedBy != nil && sale.CreatedBy != *params.CreatedBy {
			continue
		}
		out = append(out, *sale)
	}
	return out, int64(len(out)), nil
}

type fakePaymentRepo struct {
	store *memStore
	// failures drains one error per Create call before succeeding, used to
	// exercise the checkout retry path
	failures []error
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	defer r.store.acquire(ctx)()
	if len(r.failures) > 0 {
		err := r.failures[0]
		r.failures = r.failures[1:]
		return err
	}
	cp := *payment
	r.store.payments[payment.ID] = &cp
	return nil
}

type fakeCustomerRepo struct{ store *memStore }

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	defer r.store.acquire(ctx)()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	cp := *customer
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	defer r.store.acquire(ctx)()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	defer r.store.acquire(ctx)()
	cp := *customer
	r.store.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) UpdateLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error {
	defer r.store.acquire(ctx)()
	if c, ok := r.store.customers[id]; ok {
		c.LoyaltyPoints = points
	}
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.acquire(ctx)()
	delete(r.store.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	defer r.store.acquire(ctx)()
	var out []entity.Customer
	for _, c := range r.store.customers {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeLoyaltyRepo struct{ store *memStore }

func (r *fakeLoyaltyRepo) Create(ctx context.Context, tx *entity.LoyaltyTransaction) error {
	defer r.store.acquire(ctx)()
	r.store.loyalty = append(r.store.loyalty, *tx)
	return nil
}

func (r *fakeLoyaltyRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.LoyaltyTransaction, int64, error) {
	defer r.store.acquire(ctx)()
	var out []entity.LoyaltyTransaction
	for _, tx := range r.store.loyalty {
		if tx.CustomerID == customerID {
			out = append(out, tx)
		}
	}
	return out, int64(len(out)), nil
}
