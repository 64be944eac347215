package checkout

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/cart"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/pricing"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

// ErrSubmissionInFlight is returned when a session submits a second checkout
// while the first has not reached a terminal state
var ErrSubmissionInFlight = stderrors.New("a checkout submission is already in flight for this session")

// GatewayResult is the adapter-reported outcome of a payment capture
type GatewayResult struct {
	Success  bool
	Declined bool
	Reason   string
}

// PaymentGateway initiates an external payment-capture session for an order
// and amount. The call may block on a human-interactive authorization step;
// it must honor ctx cancellation.
type PaymentGateway interface {
	Initiate(ctx context.Context, orderID uuid.UUID, amount float64) (GatewayResult, error)
}

// SubmitRequest carries checkout input from the client
type SubmitRequest struct {
	UserID          uuid.UUID
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
	// IdempotencyKey is a client-generated token for the checkout attempt.
	// Retries with the same token return the order the first attempt
	// produced instead of creating a duplicate.
	IdempotencyKey string
}

// SubmitResult reports the outcome of a submission attempt
type SubmitResult struct {
	OrderID       uuid.UUID
	PaymentStatus domain.PaymentStatus
	State         State
}

// Service drives the submission protocol:
//
//	Idle → Validating → Creating → AwaitingPayment → Finalizing → Completed
//
// with ValidationFailed, CreationFailed and PaymentFailed as failure exits.
// Cash-on-delivery skips AwaitingPayment. At most one submission per session
// runs at a time.
type Service struct {
	orders      repository.OrderRepository
	idempotency repository.IdempotencyRepository
	carts       *cart.Manager
	gateway     PaymentGateway
	taxRate     float64
	shippingFee float64
	logger      *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService creates a checkout service
func NewService(
	repos *repository.Repositories,
	carts *cart.Manager,
	gateway PaymentGateway,
	taxRate, shippingFee float64,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:      repos.Order,
		idempotency: repos.Idempotency,
		carts:       carts,
		gateway:     gateway,
		taxRate:     taxRate,
		shippingFee: shippingFee,
		logger:      logger,
		inFlight:    make(map[string]struct{}),
	}
}

// Preview computes the price breakdown the cart would be charged right now
func (s *Service) Preview(ctx context.Context, sessionID string) ([]domain.CartLine, domain.PriceBreakdown) {
	lines := s.carts.Get(ctx, sessionID).Snapshot()
	return lines, pricing.ComputeBreakdown(lines, s.taxRate, s.shippingFee)
}

// Submit runs one checkout attempt for the session. On success the pending
// order is finalized and the cart cleared. On any failure the cart is
// preserved; once an order has been created it remains, unpaid, for manual
// retry or abandonment audit.
func (s *Service) Submit(ctx context.Context, sessionID string, req SubmitRequest) (*SubmitResult, error) {
	if !s.acquire(sessionID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(sessionID)

	state := StateIdle
	logger := s.logger.With(zap.String("session_id", sessionID), zap.String("user_id", req.UserID.String()))

	// A retried attempt with a known token returns the original order
	// without touching the store again. The lookup runs before validation:
	// after a success whose response was lost, the cart is already empty
	// and the empty-cart check would reject the retry.
	if req.IdempotencyKey != "" {
		if result, ok := s.replayIdempotent(ctx, req.IdempotencyKey, logger); ok {
			return result, nil
		}
	}

	// Validating
	state = StateValidating
	snapshot := s.carts.Get(ctx, sessionID).Snapshot()
	if err := validate(snapshot, req); err != nil {
		logger.Info("checkout validation failed", zap.String("state", StateValidationFailed.String()), zap.Error(err))
		return nil, err
	}

	// Creating
	state = StateCreating
	breakdown := pricing.ComputeBreakdown(snapshot, s.taxRate, s.shippingFee)
	order := &domain.Order{
		UserID:          req.UserID,
		Lines:           snapshot,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Breakdown:       breakdown,
		PaymentStatus:   domain.PaymentStatusUnpaid,
		Status:          domain.OrderStatusPlaced,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		logger.Error("pending order creation failed", zap.String("state", StateCreationFailed.String()), zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "create order", Err: err}
	}
	logger.Info("pending order created",
		zap.String("order_id", order.ID.String()),
		zap.Float64("grand_total", breakdown.GrandTotal),
		zap.String("payment_method", req.PaymentMethod.String()),
	)

	if req.IdempotencyKey != "" {
		s.recordIdempotencyKey(ctx, req, order, logger)
	}

	// AwaitingPayment, unless cash on delivery
	finalStatus := domain.PaymentStatusCODConfirmed
	if req.PaymentMethod == domain.PaymentMethodGateway {
		state = StateAwaitingPayment
		if err := s.capturePayment(ctx, order, logger); err != nil {
			return nil, err
		}
		finalStatus = domain.PaymentStatusPaid
	}

	// Finalizing
	state = StateFinalizing
	if err := verifyTotals(order); err != nil {
		logger.Error("refusing to finalize order", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, err
	}

	if err := s.orders.MarkPaid(ctx, order.ID, finalStatus); err != nil {
		logger.Error("marking order paid failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "mark order paid", Err: err}
	}

	s.carts.Clear(ctx, sessionID)
	state = StateCompleted
	logger.Info("checkout completed",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_status", finalStatus.String()),
		zap.String("state", state.String()),
	)

	return &SubmitResult{
		OrderID:       order.ID,
		PaymentStatus: finalStatus,
		State:         state,
	}, nil
}

func validate(snapshot []domain.CartLine, req SubmitRequest) error {
	if len(snapshot) == 0 {
		return &errors.ErrValidation{Message: "cart is empty"}
	}
	if !req.ShippingAddress.IsComplete() {
		return &errors.ErrValidation{Message: "shipping address is incomplete"}
	}
	if !req.PaymentMethod.IsValid() {
		return &errors.ErrValidation{Message: "unknown payment method"}
	}
	return nil
}

// capturePayment invokes the gateway and maps every non-success outcome,
// including user cancellation, to ErrPayment. The pending order is not
// deleted: it stays unpaid for retry or abandonment audit.
func (s *Service) capturePayment(ctx context.Context, order *domain.Order, logger *zap.Logger) error {
	result, err := s.gateway.Initiate(ctx, order.ID, order.Breakdown.GrandTotal)
	if err != nil {
		reason := "gateway unreachable"
		if ctx.Err() != nil {
			reason = "payment cancelled"
		}
		logger.Warn("payment capture failed",
			zap.String("order_id", order.ID.String()),
			zap.String("state", StatePaymentFailed.String()),
			zap.Error(err),
		)
		return &errors.ErrPayment{Reason: reason, Err: err}
	}
	if !result.Success {
		logger.Warn("payment not captured",
			zap.String("order_id", order.ID.String()),
			zap.String("state", StatePaymentFailed.String()),
			zap.String("reason", result.Reason),
			zap.Bool("declined", result.Declined),
		)
		return &errors.ErrPayment{Reason: result.Reason, Declined: result.Declined}
	}
	return nil
}

// verifyTotals checks the order's frozen breakdown against its own line
// snapshot and refuses to finalize on any mismatch. The check uses only
// frozen values; current tax or shipping configuration plays no part.
func verifyTotals(order *domain.Order) error {
	b := order.Breakdown
	if b.GrandTotal != b.Subtotal+b.TaxAmount+b.ShippingAmount {
		return &errors.ErrInvariant{Message: "grand total does not equal the sum of its components"}
	}

	var subtotal float64
	for _, line := range order.Lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	if pricing.RoundMinorUnits(subtotal) != b.Subtotal {
		return &errors.ErrInvariant{Message: "frozen subtotal does not match the line snapshot"}
	}
	return nil
}

func (s *Service) replayIdempotent(ctx context.Context, key string, logger *zap.Logger) (*SubmitResult, bool) {
	record, err := s.idempotency.GetByKey(ctx, key)
	if err != nil {
		if !stderrors.Is(err, repository.ErrIdempotencyKeyNotFound) {
			logger.Warn("idempotency lookup failed", zap.Error(err))
		}
		return nil, false
	}

	order, err := s.orders.GetByID(ctx, record.OrderID)
	if err != nil {
		logger.Warn("idempotent replay could not load order", zap.String("order_id", record.OrderID.String()), zap.Error(err))
		return nil, false
	}

	logger.Info("duplicate checkout detected, returning existing order",
		zap.String("idempotency_key", key),
		zap.String("order_id", order.ID.String()),
	)
	state := StateCreating
	if order.PaymentStatus != domain.PaymentStatusUnpaid {
		state = StateCompleted
	}
	return &SubmitResult{
		OrderID:       order.ID,
		PaymentStatus: order.PaymentStatus,
		State:         state,
	}, true
}

func (s *Service) recordIdempotencyKey(ctx context.Context, req SubmitRequest, order *domain.Order, logger *zap.Logger) {
	record := &domain.IdempotencyKey{
		Key:     req.IdempotencyKey,
		UserID:  req.UserID,
		OrderID: order.ID,
	}
	// A failure here only weakens duplicate detection; the order exists
	if err := s.idempotency.Create(ctx, record); err != nil {
		logger.Warn("failed to store idempotency key", zap.Error(err))
	}
}

func (s *Service) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *Service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}
