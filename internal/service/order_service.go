package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// GetOrder fetches an order; a non-admin caller only sees their own orders
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID, caller *domain.User) (*domain.Order, error) {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin && order.UserID != caller.ID {
		return nil, &errors.ErrUnauthorized{Message: "access denied"}
	}

	return order, nil
}

// ListUserOrders returns the caller's order history, newest first
func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return s.repos.Order.ListByUser(ctx, userID)
}

// ShipOrder marks an order as shipped with tracking information.
// Fulfillment transitions never touch the payment status.
func (s *orderService) ShipOrder(ctx context.Context, orderID uuid.UUID, carrier, trackingNumber string) error {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Validate state transition
	if !order.Status.CanTransitionTo(domain.OrderStatusShipped) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   domain.OrderStatusShipped,
		}
	}

	if err := s.repos.Order.UpdateTracking(ctx, orderID, carrier, trackingNumber); err != nil {
		return err
	}

	s.logger.Info("order shipped",
		zap.String("order_id", orderID.String()),
		zap.String("carrier", carrier),
		zap.String("tracking_number", trackingNumber),
	)

	return nil
}

// DeliverOrder marks a shipped order as delivered
func (s *orderService) DeliverOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusDelivered)
}

// CancelOrder cancels an order that has not shipped yet
func (s *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusCancelled)
}

func (s *orderService) transition(ctx context.Context, orderID uuid.UUID, to domain.OrderStatus) error {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Validate state transition
	if !order.Status.CanTransitionTo(to) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   to,
		}
	}

	if err := s.repos.Order.UpdateStatus(ctx, orderID, to); err != nil {
		return err
	}

	s.logger.Info("order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("from", order.Status.String()),
		zap.String("to", to.String()),
	)

	return nil
}
