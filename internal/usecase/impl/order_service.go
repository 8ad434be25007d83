package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "rescue/internal/delivery/context"
	"rescue/internal/domain/constants"
	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/repository"
	"rescue/internal/domain/service"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	publisher service.EventPublisher
	qrcode    service.QRCodeService
	cache     service.CatalogCache
	logger    *slog.Logger
	now       func() time.Time
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	CartRepo  repository.CartRepository
	Publisher service.EventPublisher
	QRCode    service.QRCodeService
	Cache     service.CatalogCache
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		cartRepo:  params.CartRepo,
		publisher: params.Publisher,
		qrcode:    params.QRCode,
		cache:     params.Cache,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts the buyer's cart into one pending order per seller.
// The cart stays locked for the whole checkout and is emptied only when the transaction commits.
func (srv *orderService) Checkout(ctx context.Context, buyerID uuid.UUID, method entity.PaymentMethod) ([]*entity.Order, error) {
	if !method.IsValid() {
		return nil, domainerrors.ErrInvalidPaymentMethod
	}

	var orders []*entity.Order
	_, err := srv.cartRepo.Mutate(ctx, buyerID, func(cart *entity.Cart) error {
		if cart.IsEmpty() {
			return domainerrors.ErrCartEmpty
		}

		now := srv.now()
		groups := cart.GroupBySeller()
		pending := make([]*entity.Order, 0, len(groups))
		for _, group := range groups {
			pending = append(pending, entity.NewOrder(buyerID, group.SellerID, group.Lines, method, now))
		}

		if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return placeOrders(ctx, repoFactory, pending)
		}); err != nil {
			return err
		}

		orders = pending
		cart.Clear()

		return nil
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
	}

	srv.invalidateCatalog(ctx)
	for _, order := range orders {
		srv.publish(ctx, constants.EventOrderPlaced, order)
	}

	srv.log(ctx).Info("Checkout completed",
		slog.String("buyer_id", buyerID.String()),
		slog.Int("orders", len(orders)),
	)

	return orders, nil
}

func placeOrders(ctx context.Context, repoFactory repository.RepositoryFactory, orders []*entity.Order) error {
	products := repoFactory.NewProductRepository()
	orderRepo := repoFactory.NewOrderRepository()

	for _, order := range orders {
		for _, item := range order.Items {
			ok, err := products.DecrementIfAvailable(ctx, item.ProductID, item.Quantity)
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductUnavailable.WithDetails(item.ProductName)
			}
			if err != nil {
				return errors.Wrapf(err, "failed to reserve stock for %s", item.ProductID)
			}
			if !ok {
				return domainerrors.ErrInsufficientStock.WithDetails(item.ProductName)
			}
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrapf(err, "failed to create order %s", order.OrderNumber)
		}
	}

	return nil
}

// GetOrder returns an order to its buyer, its seller, or an admin.
func (srv *orderService) GetOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}
	if !actor.IsAdmin() && !order.InvolvesAccount(actor.ID) {
		return nil, domainerrors.ErrForbidden
	}

	return order, nil
}

// ListOrders lists the actor's orders. Counts always cover every status.
func (srv *orderService) ListOrders(ctx context.Context, actor usecase.Actor, status entity.OrderStatus) (*usecase.OrderList, error) {
	if status != "" && !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("status must be pending, completed or cancelled")
	}

	var filter repository.OrderFilter
	switch actor.Role {
	case entity.RoleBuyer:
		filter.BuyerID = &actor.ID
	case entity.RoleSeller:
		filter.SellerID = &actor.ID
	case entity.RoleAdmin:
	default:
		return nil, domainerrors.ErrForbidden
	}

	all, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	list := &usecase.OrderList{
		Orders: all,
		Counts: entity.CountOrdersByStatus(all),
	}
	if status != "" {
		list.Orders = make([]*entity.Order, 0, len(all))
		for _, order := range all {
			if order.Status == status {
				list.Orders = append(list.Orders, order)
			}
		}
	}

	return list, nil
}

// UpdateStatus moves an order along pending → completed|cancelled.
// Sellers may complete or cancel their orders, buyers may only cancel theirs, admins may do both.
// Cancelling puts the ordered quantities back in stock within the same transaction.
func (srv *orderService) UpdateStatus(ctx context.Context, actor usecase.Actor, id uuid.UUID, next entity.OrderStatus) (*entity.Order, error) {
	if next != entity.OrderStatusCompleted && next != entity.OrderStatusCancelled {
		return nil, domainerrors.ErrValidationFailed.WithDetails("status must be completed or cancelled")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find order")
		}
		if !mayTransition(actor, order, next) {
			return domainerrors.ErrForbidden
		}
		if !order.TransitionTo(next, srv.now()) {
			return domainerrors.ErrInvalidStatusTransition.WithDetails(
				string(order.Status) + " orders cannot become " + string(next))
		}

		if next == entity.OrderStatusCancelled {
			if err := restoreStock(ctx, repoFactory.NewProductRepository(), order); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(ctx, order); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}
		updated = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	if next == entity.OrderStatusCancelled {
		srv.invalidateCatalog(ctx)
	}
	srv.publish(ctx, constants.EventOrderStatusChanged, updated)

	srv.log(ctx).Info("Order status changed",
		slog.String("order_id", updated.ID.String()),
		slog.String("status", string(updated.Status)),
		slog.String("by", actor.ID.String()),
	)

	return updated, nil
}

func mayTransition(actor usecase.Actor, order *entity.Order, next entity.OrderStatus) bool {
	switch {
	case actor.IsAdmin():
		return true
	case actor.ID == order.SellerID:
		return true
	case actor.ID == order.BuyerID:
		return next == entity.OrderStatusCancelled
	default:
		return false
	}
}

// restoreStock skips products that were deleted after the order was placed.
func restoreStock(ctx context.Context, products repository.ProductRepository, order *entity.Order) error {
	for _, item := range order.Items {
		err := products.IncrementStock(ctx, item.ProductID, item.Quantity)
		if errors.Is(err, repository.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "failed to restore stock for %s", item.ProductID)
		}
	}

	return nil
}

// PickupQR renders the pickup code for the buyer of a pending order.
func (srv *orderService) PickupQR(ctx context.Context, actor usecase.Actor, id uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != actor.ID {
		return nil, domainerrors.ErrForbidden
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domainerrors.ErrInvalidStatusTransition.WithDetails("only pending orders can be picked up")
	}

	png, err := srv.qrcode.GeneratePickupQR(order)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate pickup QR")
	}

	return png, nil
}

// CompletePickup completes the order encoded in a scanned pickup code.
func (srv *orderService) CompletePickup(ctx context.Context, actor usecase.Actor, qrData string) (*entity.Order, error) {
	orderID, err := srv.qrcode.ParsePickupQR(qrData)
	if err != nil {
		return nil, domainerrors.ErrInvalidPickupCode
	}
	if actor.Role == entity.RoleBuyer {
		return nil, domainerrors.ErrForbidden
	}

	return srv.UpdateStatus(ctx, actor, orderID, entity.OrderStatusCompleted)
}

// publish never fails the caller; the write it reports has already committed.
func (srv *orderService) publish(ctx context.Context, eventType string, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		EventType:   eventType,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		BuyerID:     order.BuyerID.String(),
		SellerID:    order.SellerID.String(),
		Status:      string(order.Status),
		Total:       order.Total,
		ItemCount:   order.ItemCount(),
		OccurredAt:  srv.now(),
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order event",
			slog.String("event_type", eventType),
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)
	}
}

func (srv *orderService) invalidateCatalog(ctx context.Context) {
	if err := srv.cache.Invalidate(ctx); err != nil {
		srv.log(ctx).Warn("Marketplace cache invalidation failed", slog.Any("error", err))
	}
}
