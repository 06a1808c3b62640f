package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/domain/loyalty"
	"github.com/tillpoint/pos-api/internal/domain/pricing"
	"github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/internal/domain/stock"
	"github.com/tillpoint/pos-api/pkg/apperror"
	"github.com/tillpoint/pos-api/pkg/identifier"
	"github.com/tillpoint/pos-api/pkg/pagination"
)

// SaleService handles the checkout flow and sale queries
type SaleService struct {
	txManager    repository.TxManager
	saleRepo     repository.SaleRepository
	paymentRepo  repository.PaymentRepository
	productRepo  repository.ProductRepository
	stockLogRepo repository.StockLogRepository
	customerRepo repository.CustomerRepository
	loyaltyRepo  repository.LoyaltyTransactionRepository
	maxRetries   int
}

// NewSaleService creates a new sale service
func NewSaleService(
	txManager repository.TxManager,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	stockLogRepo repository.StockLogRepository,
	customerRepo repository.CustomerRepository,
	loyaltyRepo repository.LoyaltyTransactionRepository,
	maxRetries int,
) *SaleService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &SaleService{
		txManager:    txManager,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		productRepo:  productRepo,
		stockLogRepo: stockLogRepo,
		customerRepo: customerRepo,
		loyaltyRepo:  loyaltyRepo,
		maxRetries:   maxRetries,
	}
}

// SaleItemInput represents one line item in a checkout request. UnitPrice
// overrides the product's sale price when set (price negotiated at the till);
// DiscountPercent is a percentage in [0, 100].
type SaleItemInput struct {
	ProductID       uuid.UUID
	Quantity        int
	UnitPrice       *int64 // cents
	DiscountPercent decimal.Decimal
}

// CreateSaleInput represents the checkout request
type CreateSaleInput struct {
	UserID         uuid.UUID
	CustomerID     *uuid.UUID
	Items          []SaleItemInput
	PaymentMethod  enum.PaymentMethod
	ReceivedAmount *int64 // cents, CASH only
}

// CreateSale records a complete sale: items, stock decrements with their
// ledger entries, the payment, and loyalty accrual, all in one transaction.
// Nothing is persisted when any part fails.
//
// Products are locked in ascending id order so two checkouts sharing products
// can never deadlock each other. The whole transaction is retried a bounded
// number of times when the database reports a serialization failure or when
// the generated payment id collides; a fresh id is generated on each attempt.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if err := validateCreateSaleInput(input); err != nil {
		return nil, err
	}

	var saleID uuid.UUID
	var err error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		saleID, err = s.createSaleTx(ctx, input)
		if err == nil {
			break
		}
		if !errors.Is(err, apperror.ErrConcurrencyConflict) && !errors.Is(err, apperror.ErrDuplicateKey) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithDetails(ctx, saleID)
}

// createSaleTx runs one attempt of the checkout transaction and returns the
// id of the created sale.
func (s *SaleService) createSaleTx(ctx context.Context, input *CreateSaleInput) (uuid.UUID, error) {
	var saleID uuid.UUID

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		products, err := s.lockProducts(ctx, input.Items)
		if err != nil {
			return err
		}

		lines := make([]pricing.LineInput, len(input.Items))
		for i, item := range input.Items {
			product := products[item.ProductID]
			unitPrice := product.SalePrice
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}
			lines[i] = pricing.LineInput{
				Quantity:        item.Quantity,
				UnitPrice:       unitPrice,
				CostPrice:       product.CostPrice,
				DiscountPercent: item.DiscountPercent,
			}
		}

		totals, err := pricing.Calculate(lines)
		if err != nil {
			return apperror.NewBadRequestError(err.Error())
		}
		if totals.Total != totals.SubTotal-totals.Discount {
			return apperror.NewInvariantViolationError(
				fmt.Sprintf("total %d != subtotal %d - discount %d", totals.Total, totals.SubTotal, totals.Discount))
		}

		received, change, err := settleCash(input, totals.Total)
		if err != nil {
			return err
		}

		var customer *entity.Customer
		if input.CustomerID != nil {
			customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewNotFoundError("Customer")
			}
		}

		sale := &entity.Sale{
			CreatedBy:  input.UserID,
			CustomerID: input.CustomerID,
			SubTotal:   totals.SubTotal,
			Discount:   totals.Discount,
			Total:      totals.Total,
			Profit:     totals.Profit,
		}
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		saleID = sale.ID
		reference := fmt.Sprintf("Sale #%s", sale.ID)

		// Items are persisted in submitted order; the lock order above only
		// governs lock acquisition.
		for i, item := range input.Items {
			product := products[item.ProductID]
			line := totals.Lines[i]

			newStock, err := stock.Apply(product.StockQuantity, enum.StockLogTypeSale, item.Quantity)
			if err != nil {
				if errors.Is(err, stock.ErrInsufficientStock) {
					return apperror.NewInsufficientStockError(product.Name, product.StockQuantity, item.Quantity)
				}
				return apperror.NewBadRequestError(err.Error())
			}

			if err := s.stockLogRepo.Create(ctx, &entity.StockLog{
				ProductID:     product.ID,
				Type:          enum.StockLogTypeSale,
				Quantity:      item.Quantity,
				PreviousStock: product.StockQuantity,
				NewStock:      newStock,
				Reason:        "Sale",
				Reference:     reference,
				CreatedBy:     input.UserID,
			}); err != nil {
				return err
			}
			if err := s.productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
				return err
			}
			// Keep the in-memory copy current so a later line for the same
			// product sees the decremented quantity.
			product.StockQuantity = newStock

			if err := s.saleRepo.CreateItem(ctx, &entity.SaleItem{
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     line.EffectivePrice,
				Discount:  line.Discount,
				Total:     line.Total,
			}); err != nil {
				return err
			}
		}

		if err := s.paymentRepo.Create(ctx, &entity.Payment{
			ID:             identifier.Generate("PAY"),
			SaleID:         sale.ID,
			Amount:         totals.Total,
			PaymentMethod:  input.PaymentMethod,
			ReceivedAmount: received,
			ChangeAmount:   change,
		}); err != nil {
			return err
		}

		if customer != nil {
			if err := s.accrueLoyalty(ctx, customer.ID, totals.Profit, reference); err != nil {
				return err
			}
		}

		return nil
	})

	return saleID, err
}

// lockProducts acquires row locks on every distinct product in the request,
// in ascending product-id order, and returns them keyed by id. Missing and
// inactive products are indistinguishable to the till.
func (s *SaleService) lockProducts(ctx context.Context, items []SaleItemInput) (map[uuid.UUID]*entity.Product, error) {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	products := make(map[uuid.UUID]*entity.Product, len(ids))
	for _, id := range ids {
		product, err := s.productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", id))
		}
		products[id] = product
	}
	return products, nil
}

// accrueLoyalty converts the sale profit into points and appends the ledger
// entry. Zero or negative profit, or a profit too small to floor to a whole
// point, accrues nothing and writes no entry.
func (s *SaleService) accrueLoyalty(ctx context.Context, customerID uuid.UUID, profit int64, reference string) error {
	points := loyalty.PointsFromProfit(profit)
	if points == 0 {
		return nil
	}

	customer, err := s.customerRepo.GetByIDForUpdate(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	balance := customer.LoyaltyPoints + points
	if err := s.customerRepo.UpdateLoyaltyPoints(ctx, customerID, balance); err != nil {
		return err
	}

	return s.loyaltyRepo.Create(ctx, &entity.LoyaltyTransaction{
		ID:         identifier.Generate("LT"),
		CustomerID: customerID,
		Points:     points,
		Type:       enum.LoyaltyTransactionTypeEarned,
		Reference:  reference,
		Balance:    balance,
	})
}

// settleCash validates the tendered amount for cash payments and computes the
// change. Non-cash methods carry neither received nor change amounts.
func settleCash(input *CreateSaleInput, total int64) (received, change *int64, err error) {
	if input.PaymentMethod != enum.PaymentMethodCash {
		return nil, nil, nil
	}
	if input.ReceivedAmount == nil {
		return nil, nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "received_amount", Message: "Received amount is required for cash payments"},
		})
	}
	if *input.ReceivedAmount < total {
		return nil, nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "received_amount", Message: "Received amount is less than the sale total"},
		})
	}
	c := *input.ReceivedAmount - total
	return input.ReceivedAmount, &c, nil
}

func validateCreateSaleInput(input *CreateSaleInput) error {
	var fieldErrors []apperror.FieldError

	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "items", Message: "At least one item is required",
		})
	}
	for i, item := range input.Items {
		if item.ProductID == uuid.Nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].product_id", i), Message: "Product ID is required",
			})
		}
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].quantity", i), Message: "Quantity must be positive",
			})
		}
	}
	if !input.PaymentMethod.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "payment_method", Message: "Payment method must be one of CASH, CARD, MOBILE",
		})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// GetSale retrieves a sale with its items, payment and customer
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
