package orderapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meal-market/cart"
	"meal-market/lifecycle"
	"meal-market/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormService implements OrderService and Catalog against the local
// database.
type GormService struct {
	db *gorm.DB
}

func NewGormService(db *gorm.DB) *GormService {
	return &GormService{db: db}
}

// CreateOrder persists a new PENDING order. Pricing is computed here from
// catalog rows read inside the transaction; item prices are snapshotted
// so later catalog changes never alter historical orders.
func (s *GormService) CreateOrder(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	var order models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider models.Provider
		if err := tx.First(&provider, req.ProviderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if !provider.IsOpen {
			return ErrProviderClosed
		}

		subtotal := decimal.Zero
		var items []models.OrderItem
		for _, reqItem := range req.Items {
			if reqItem.Quantity < cart.MinQuantity || reqItem.Quantity > cart.MaxQuantity {
				return cart.ErrQuantityOutOfRange
			}
			var meal models.Meal
			if err := tx.First(&meal, reqItem.MealID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrMealNotFound
				}
				return fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			if meal.ProviderID != req.ProviderID {
				return ErrWrongProvider
			}
			if !meal.IsAvailable {
				return fmt.Errorf("%w: %s", ErrMealUnavailable, meal.Name)
			}
			price := decimal.NewFromFloat(meal.Price)
			subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(reqItem.Quantity))))
			items = append(items, models.OrderItem{
				MealID:   meal.ID,
				Quantity: reqItem.Quantity,
				Price:    meal.Price,
				Name:     meal.Name,
			})
		}

		fee := cart.DeliveryFee(subtotal)
		total, _ := subtotal.Add(fee).Float64()
		feeAmount, _ := fee.Float64()

		order = models.Order{
			OrderNumber:     newOrderNumber(),
			CustomerID:      req.CustomerID,
			ProviderID:      req.ProviderID,
			Status:          models.StatusPending,
			TotalAmount:     total,
			DeliveryFee:     feeAmount,
			DeliveryAddress: req.Address,
			Notes:           req.Notes,
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: req.CustomerID,
			ActorRole: models.RoleCustomer,
			Note:      "order placed",
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		// Re-read with associations inside the transaction: a failure
		// here rolls back the whole creation rather than handing the
		// caller a half-populated order.
		if err := tx.Preload("Items").Preload("Provider").First(&order, order.ID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// UpdateStatus applies a lifecycle transition. The current status is
// re-read inside the transaction so a stale client copy can never win a
// race against another actor's transition.
func (s *GormService) UpdateStatus(ctx context.Context, orderID uint, change StatusChange) (models.Order, error) {
	var order models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		result, err := lifecycle.Step(order, change.To, change.ActorRole)
		if err != nil {
			return err
		}

		if err := tx.Model(&order).Update("status", change.To).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		note := change.Note
		if result.Override {
			note = strings.TrimSpace("[ADMIN OVERRIDE] " + note)
			zap.L().Warn("order status overridden by admin",
				zap.Uint("order_id", order.ID),
				zap.String("from", string(result.From)),
				zap.String("to", string(change.To)),
				zap.Uint("admin_id", change.ActorID),
			)
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: result.From,
			ToStatus:   change.To,
			ChangedBy:  change.ActorID,
			ActorRole:  change.ActorRole,
			Override:   result.Override,
			Note:       note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		order.Status = change.To
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *GormService) GetOrder(ctx context.Context, orderID uint) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Meal").
		Preload("Provider").
		Preload("StatusHistory").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return order, nil
}

func (s *GormService) ListOrders(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	query := s.db.WithContext(ctx).Preload("Items").Preload("Provider")
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.ProviderID != 0 {
		query = query.Where("provider_id = ?", filter.ProviderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return orders, nil
}

// Meal implements Catalog for add-to-cart lookups.
func (s *GormService) Meal(ctx context.Context, mealID uint) (models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).First(&meal, mealID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Meal{}, ErrMealNotFound
	}
	if err != nil {
		return models.Meal{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return meal, nil
}

// Provider implements Catalog.
func (s *GormService) Provider(ctx context.Context, providerID uint) (models.Provider, error) {
	var provider models.Provider
	err := s.db.WithContext(ctx).First(&provider, providerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Provider{}, ErrProviderNotFound
	}
	if err != nil {
		return models.Provider{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return provider, nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
