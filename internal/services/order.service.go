package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/internal/repository"
	"github.com/ospteam/marketplace/pkg/logger"
	"github.com/ospteam/marketplace/pkg/prom"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByUID(ctx context.Context, uid string) (*model.Order, error)
	List(ctx context.Context, f model.OrderFilter) ([]*model.Order, int64, error)
	UpdateOfferPrice(ctx context.Context, uid string, price float64) error
	UpdateStatus(ctx context.Context, uid string, status model.OrderStatus) error
	Delete(ctx context.Context, uid string) error
	DeleteByItemUIDs(ctx context.Context, itemUIDs []string) error
	DeleteByUser(ctx context.Context, userUID string) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error)
}

type OrderMailer interface {
	SendPurchaseRequestToSeller(ctx context.Context, recipient, itemName string, offerPrice float64) error
	SendPurchaseRequestToBuyer(ctx context.Context, recipient, itemName string, offerPrice float64) error
	SendApproval(ctx context.Context, recipient, itemName string) error
	SendRejection(ctx context.Context, recipient, itemName string) error
}

type OrderService struct {
	orderRepo OrderRepository
	itemRepo  ItemRepository
	userRepo  UserRepository
	txRepo    TransactionRepository
	mailer    OrderMailer
}

func NewOrderService(orderRepo OrderRepository, itemRepo ItemRepository, userRepo UserRepository, txRepo TransactionRepository, mailer OrderMailer) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		txRepo:    txRepo,
		mailer:    mailer,
	}
}

// RaisePurchaseRequest creates a PENDING order for the item at the buyer's
// offer and takes the item off sale. The on_sale flip is a separate write
// after the order insert, not atomic with it. Both parties are notified by
// mail; a mail failure aborts the request even though the order is already
// persisted.
func (s *OrderService) RaisePurchaseRequest(ctx context.Context, buyerUID, itemUID string, offerPrice float64) (*model.Order, error) {
	if offerPrice < 0 {
		return nil, ErrInvalidOffer
	}

	item, err := s.itemRepo.GetByUID(ctx, itemUID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: item %s", ErrNotFound, itemUID)
		}
		return nil, err
	}
	buyer, err := s.userRepo.GetByUIDAndRole(ctx, buyerUID, model.RoleBuyer)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: buyer %s", ErrNotFound, buyerUID)
		}
		return nil, err
	}
	seller, err := s.userRepo.GetByUIDAndRole(ctx, item.SellerUID, model.RoleSeller)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: seller %s", ErrNotFound, item.SellerUID)
		}
		return nil, err
	}

	order, err := s.orderRepo.Create(ctx, &model.Order{
		UID:        uuid.NewString(),
		OfferPrice: offerPrice,
		ItemUID:    item.UID,
		BuyerUID:   buyer.UID,
		SellerUID:  seller.UID,
		Status:     model.OrderStatusPending,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.itemRepo.SetOnSale(ctx, item.UID, false); err != nil {
		return nil, fmt.Errorf("take item off sale: %w", err)
	}

	prom.IncCounter(prom.SystemOrders, prom.MetricOrdersCreated)

	if err := s.mailer.SendPurchaseRequestToSeller(ctx, seller.Email, item.Name, offerPrice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}
	if err := s.mailer.SendPurchaseRequestToBuyer(ctx, buyer.Email, item.Name, offerPrice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}

	logger.Info("Purchase request raised", "order_uid", order.UID, "item_uid", item.UID, "offer", offerPrice)

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, uid string) (*model.Order, error) {
	order, err := s.orderRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, uid)
		}
		return nil, err
	}
	return order, nil
}

// Negotiate overwrites the offer price on a pending order. No history is kept.
func (s *OrderService) Negotiate(ctx context.Context, orderUID string, offerPrice float64) error {
	if offerPrice < 0 {
		return ErrInvalidOffer
	}

	order, err := s.orderRepo.GetByUID(ctx, orderUID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return fmt.Errorf("%w: order %s", ErrNotFound, orderUID)
		}
		return err
	}
	if order.Status != model.OrderStatusPending {
		return fmt.Errorf("%w: only pending orders can be negotiated", ErrState)
	}

	return s.orderRepo.UpdateOfferPrice(ctx, orderUID, offerPrice)
}

// UpdateOrderStatus is the seller's accept/reject decision on a pending
// order. ACCEPTED persists the status and keeps the order for payment.
// REJECTED puts the item back on sale and deletes the order outright, so no
// rejected record survives. The buyer is mailed either way, before the state
// moves; a mail failure leaves the order untouched.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderUID string, status model.OrderStatus) error {
	if status != model.OrderStatusAccepted && status != model.OrderStatusRejected {
		return ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByUID(ctx, orderUID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return fmt.Errorf("%w: order %s", ErrNotFound, orderUID)
		}
		return err
	}
	if order.Status != model.OrderStatusPending {
		return fmt.Errorf("%w: order is already %s", ErrState, order.Status)
	}

	item, err := s.itemRepo.GetByUID(ctx, order.ItemUID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return fmt.Errorf("%w: item %s", ErrNotFound, order.ItemUID)
		}
		return err
	}
	buyer, err := s.userRepo.GetByUID(ctx, order.BuyerUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%w: buyer %s", ErrNotFound, order.BuyerUID)
		}
		return err
	}

	if status == model.OrderStatusAccepted {
		if err := s.mailer.SendApproval(ctx, buyer.Email, item.Name); err != nil {
			return fmt.Errorf("%w: %v", ErrExternal, err)
		}
		if err := s.orderRepo.UpdateStatus(ctx, orderUID, model.OrderStatusAccepted); err != nil {
			return err
		}
		prom.IncCounter(prom.SystemOrders, prom.MetricOrdersAccepted)
		logger.Info("Order accepted", "order_uid", orderUID)
		return nil
	}

	if err := s.mailer.SendRejection(ctx, buyer.Email, item.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrExternal, err)
	}
	err = s.orderRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.itemRepo.SetOnSale(ctx, item.UID, true); err != nil {
			return fmt.Errorf("restore item on sale: %w", err)
		}
		if err := s.orderRepo.Delete(ctx, orderUID); err != nil {
			return fmt.Errorf("delete rejected order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	prom.IncCounter(prom.SystemOrders, prom.MetricOrdersRejected)
	logger.Info("Order rejected", "order_uid", orderUID)
	return nil
}

// Payment converts an accepted order into an immutable transaction snapshot,
// then deletes the item and the order. Snapshot, item delete and order delete
// run in a single store transaction, so a second concurrent payment loses the
// race and fails on the already-deleted order.
func (s *OrderService) Payment(ctx context.Context, buyerUID, orderUID string) (*model.Transaction, error) {
	order, err := s.orderRepo.GetByUID(ctx, orderUID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderUID)
		}
		return nil, err
	}
	if order.BuyerUID != buyerUID {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderUID)
	}
	if order.Status != model.OrderStatusAccepted {
		return nil, ErrOrderNotApproved
	}

	item, err := s.itemRepo.GetByUID(ctx, order.ItemUID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: item %s", ErrNotFound, order.ItemUID)
		}
		return nil, err
	}
	buyer, err := s.userRepo.GetByUID(ctx, order.BuyerUID)
	if err != nil {
		return nil, err
	}
	seller, err := s.userRepo.GetByUID(ctx, order.SellerUID)
	if err != nil {
		return nil, err
	}

	var created *model.Transaction
	err = s.orderRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.txRepo.Create(ctx, &model.Transaction{
			UID:        uuid.NewString(),
			OfferPrice: order.OfferPrice,
			ItemName:   item.Name,
			ItemUID:    item.UID,
			BuyerName:  buyer.Name,
			BuyerUID:   buyer.UID,
			SellerName: seller.Name,
			SellerUID:  seller.UID,
			CreatedAt:  time.Now(),
		})
		if err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		if err := s.itemRepo.Delete(ctx, item.UID); err != nil {
			return fmt.Errorf("delete sold item: %w", err)
		}
		if err := s.orderRepo.Delete(ctx, orderUID); err != nil {
			return fmt.Errorf("delete paid order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncCounter(prom.SystemOrders, prom.MetricOrdersPaid)
	logger.Info("Payment completed", "order_uid", orderUID, "transaction_uid", created.UID, "amount", order.OfferPrice)

	return created, nil
}

func (s *OrderService) ListOrders(ctx context.Context, f model.OrderFilter) ([]*model.Order, int64, error) {
	return s.orderRepo.List(ctx, f)
}

func (s *OrderService) ListTransactions(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	return s.txRepo.List(ctx, f)
}
