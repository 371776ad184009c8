package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/verdant/internal/billing"
	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/events"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/telemetry"
)

// InitiatePaymentParams requests a gateway intent. When OrderID is set the
// intent is created for the order's stored total.
type InitiatePaymentParams struct {
	Amount  decimal.Decimal
	OrderID *uuid.UUID
	UserID  *uuid.UUID
}

// InitiatePaymentIntent creates a payment intent at the gateway. Nothing is
// written locally.
func (s *orderService) InitiatePaymentIntent(ctx context.Context, params InitiatePaymentParams) (*billing.PaymentIntent, error) {
	const op = "payment.create_intent"

	if !params.Amount.IsPositive() {
		return nil, domain.WithOp(domain.ErrInvalidAmount, op)
	}

	now := s.now()
	amount := params.Amount
	req := billing.CreatePaymentIntentParams{
		Currency:    s.config.Currency,
		Receipt:     fmt.Sprintf("rcpt_%d", now.UnixMilli()),
		Description: "Verdant plant order",
		Metadata:    map[string]string{},
	}

	if params.OrderID != nil {
		order, err := s.store.GetOrder(ctx, *params.OrderID)
		if err != nil {
			return nil, notFoundOr(err, domain.ErrOrderNotFound, op)
		}
		if params.UserID != nil && order.UserID != *params.UserID {
			return nil, domain.WithOp(domain.ErrOrderNotFound, op)
		}
		if order.Status != domain.OrderStatusPaymentPending.String() {
			return nil, domain.WithOp(domain.ErrNotAwaitingPayment, op)
		}
		if !amount.Equal(order.TotalAmount) {
			return nil, domain.WithOp(domain.ErrAmountMismatch, op)
		}
		amount = order.TotalAmount

		req.Metadata["order_id"] = order.ID.String()
		req.Metadata["user_id"] = order.UserID.String()
		// One intent per payable state of the order; a retry after failure gets a new one.
		req.IdempotencyKey = fmt.Sprintf("order_%s_%d", order.ID, order.StatusUpdatedAt.UnixMicro())
	} else if params.UserID != nil {
		req.Metadata["user_id"] = params.UserID.String()
	}
	req.AmountMinor = domain.ToMinorUnits(amount)

	gctx, cancel := context.WithTimeout(ctx, s.config.GatewayTimeout)
	defer cancel()

	start := time.Now()
	intent, err := s.gateway.CreatePaymentIntent(gctx, req)
	s.metrics.ObserveGateway(s.gateway.Name(), "create_intent", time.Since(start).Seconds())
	s.metrics.RecordPaymentIntent(s.gateway.Name(), err)
	if err != nil {
		if errors.Is(gctx.Err(), context.DeadlineExceeded) {
			s.metrics.RecordGatewayTimeout(s.gateway.Name())
		}
		return nil, domain.Upstream(err, op)
	}

	s.logger.InfoContext(ctx, "payment intent created",
		"intent_id", intent.ID,
		"provider", intent.Provider,
		"amount_minor", intent.AmountMinor,
		"receipt", req.Receipt,
	)
	return intent, nil
}

// VerifyAndComplete confirms a gateway capture and, in one transaction,
// decrements stock, records the payment, confirms the order and clears the cart.
func (s *orderService) VerifyAndComplete(ctx context.Context, orderID, userID uuid.UUID, transactionID string) (*repository.Payment, error) {
	return s.complete(ctx, "order.verify", orderID, userID, transactionID, false)
}

// ReconcileCapture is VerifyAndComplete for gateway-reported captures. A
// PaymentFailed order is reopened and confirmed in the same transaction,
// since the customer may have paid on a later attempt within the same intent.
func (s *orderService) ReconcileCapture(ctx context.Context, orderID, userID uuid.UUID, transactionID string) (*repository.Payment, error) {
	return s.complete(ctx, "order.reconcile", orderID, userID, transactionID, true)
}

func (s *orderService) complete(ctx context.Context, op string, orderID, userID uuid.UUID, transactionID string, reopenFailed bool) (*repository.Payment, error) {
	if transactionID == "" {
		return nil, domain.NewValidationError(op, "transactionId", "Transaction ID is required")
	}

	var (
		payment  repository.Payment
		order    repository.Order
		plantIDs []uuid.UUID
		method   domain.PaymentMethod
		from     domain.OrderStatus
	)
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		var (
			status domain.OrderStatus
			err    error
		)
		order, status, err = lockOrder(ctx, q, orderID, &userID, op)
		if err != nil {
			return err
		}
		from = status
		if reopenFailed && status == domain.OrderStatusPaymentFailed {
			if status, err = status.Apply(domain.EventRetry); err != nil {
				return err
			}
		}
		if status != domain.OrderStatusPaymentPending {
			return domain.WithOp(domain.ErrNotAwaitingPayment, op)
		}
		next, err := status.Apply(domain.EventPaymentVerified)
		if err != nil {
			return err
		}

		txn, err := s.fetchTransaction(ctx, transactionID)
		if err != nil {
			s.metrics.RecordPaymentFailed("gateway_error")
			return paymentNotCaptured(op, err)
		}
		if !txn.Captured {
			s.metrics.RecordPaymentFailed("not_captured")
			return paymentNotCaptured(op, fmt.Errorf("transaction status %q", txn.Status))
		}
		if expected := domain.ToMinorUnits(order.TotalAmount); txn.AmountMinor != 0 && txn.AmountMinor != expected {
			s.metrics.RecordPaymentFailed("amount_mismatch")
			return paymentNotCaptured(op, fmt.Errorf("captured %d, order total %d", txn.AmountMinor, expected))
		}
		if owner := txn.Metadata["order_id"]; owner != "" && owner != orderID.String() {
			s.metrics.RecordPaymentFailed("order_mismatch")
			return paymentNotCaptured(op, fmt.Errorf("transaction was issued for order %s", owner))
		}
		method = domain.ParsePaymentMethod(txn.Method)

		// Lines come back ordered by plant id, so concurrent verifies lock plants in the same order.
		lines, err := q.ListOrderLines(ctx, orderID)
		if err != nil {
			return domain.Internal(err, op, "failed to load order lines")
		}
		if len(lines) == 0 {
			return domain.WithOp(domain.ErrOrderLinesMissing, op)
		}

		for _, line := range lines {
			n, err := q.DecrementPlantStock(ctx, repository.DecrementPlantStockParams{
				ID:       line.PlantID,
				Quantity: line.Quantity,
			})
			if err != nil {
				return domain.Internal(err, op, "failed to decrement stock")
			}
			if n == 0 {
				s.metrics.RecordStockConflict()
				return domain.WithOp(domain.ErrInsufficientStock, op)
			}
			plantIDs = append(plantIDs, line.PlantID)
		}

		payment, err = q.CreatePayment(ctx, repository.CreatePaymentParams{
			OrderID:       orderID,
			UserID:        userID,
			Amount:        order.TotalAmount,
			Method:        string(method),
			Status:        string(domain.PaymentStatusSuccess),
			TransactionID: transactionID,
		})
		if err != nil {
			if repository.IsUniqueViolation(err, repository.ConstraintOrderSuccessPayment) {
				return domain.WithOp(domain.ErrPaymentAlreadyRecorded, op)
			}
			if repository.IsUniqueViolation(err, repository.ConstraintTransactionSuccessPayment) {
				return domain.WithOp(domain.ErrTransactionAlreadyUsed, op)
			}
			return domain.Internal(err, op, "failed to record payment")
		}

		if _, err := q.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
			ID:     orderID,
			Status: next.String(),
		}); err != nil {
			return domain.Internal(err, op, "failed to confirm order")
		}

		if _, err := q.ClearCart(ctx, userID); err != nil {
			return domain.Internal(err, op, "failed to clear cart")
		}

		user, err := q.GetUser(ctx, userID)
		if err != nil {
			return notFoundOr(err, domain.ErrUserNotFound, op)
		}
		details, err := q.ListOrderLineDetails(ctx, []uuid.UUID{orderID})
		if err != nil {
			return domain.Internal(err, op, "failed to load order lines")
		}

		return writeEvent(ctx, q, orderID, events.TypeOrderConfirmed, events.OrderConfirmed{
			OrderID:         orderID,
			UserID:          userID,
			PaymentID:       payment.ID,
			TransactionID:   transactionID,
			Method:          string(method),
			TotalAmount:     order.TotalAmount,
			ShippingAddress: order.ShippingAddress,
			Lines:           eventLines(details),
			CustomerEmail:   user.Email,
			CustomerName:    fullName(user),
		})
	})
	if err != nil {
		s.logger.WarnContext(ctx, "payment verification rejected",
			"order_id", orderID,
			"transaction_id", transactionID,
			"error", err,
		)
		return nil, asDomainError(err, op)
	}

	s.catalog.Invalidate(ctx, plantIDs...)
	s.metrics.RecordPaymentVerified(string(method), s.config.Currency, domain.ToMinorUnits(order.TotalAmount))
	s.metrics.RecordStatusChange(from.String(), domain.OrderStatusConfirmed.String())
	s.logger.InfoContext(ctx, "payment verified",
		"order_id", orderID,
		"from_status", from,
		"payment_id", payment.ID,
		"transaction_id", transactionID,
		"method", method,
	)
	return &payment, nil
}

// MarkPaymentFailed records a declined payment and moves the order to
// PaymentFailed. The Failed ledger row is written at most once per order.
func (s *orderService) MarkPaymentFailed(ctx context.Context, orderID, userID uuid.UUID) (*repository.Order, error) {
	const op = "order.mark_failed"

	var updated repository.Order
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		order, status, err := lockOrder(ctx, q, orderID, &userID, op)
		if err != nil {
			return err
		}
		if status != domain.OrderStatusPaymentPending {
			return domain.WithOp(domain.ErrNotAwaitingPayment, op)
		}
		next, err := status.Apply(domain.EventPaymentDeclined)
		if err != nil {
			return err
		}

		if _, err := q.CreateFailedPaymentIfAbsent(ctx, repository.CreateFailedPaymentParams{
			OrderID: orderID,
			UserID:  userID,
			Amount:  order.TotalAmount,
		}); err != nil {
			return domain.Internal(err, op, "failed to record failed payment")
		}

		updated, err = q.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
			ID:     orderID,
			Status: next.String(),
		})
		if err != nil {
			return domain.Internal(err, op, "failed to update order status")
		}

		user, err := q.GetUser(ctx, userID)
		if err != nil {
			return notFoundOr(err, domain.ErrUserNotFound, op)
		}
		return writeEvent(ctx, q, orderID, events.TypeOrderPaymentFailed, events.OrderPaymentFailed{
			OrderID:       orderID,
			UserID:        userID,
			TotalAmount:   order.TotalAmount,
			CustomerEmail: user.Email,
			CustomerName:  fullName(user),
		})
	})
	if err != nil {
		return nil, asDomainError(err, op)
	}

	s.metrics.RecordPaymentFailed("declined")
	s.metrics.RecordStatusChange(domain.OrderStatusPaymentPending.String(), updated.Status)
	s.logger.InfoContext(ctx, "payment marked failed", "order_id", orderID)
	return &updated, nil
}

// fetchTransaction asks the gateway for a transaction under the gateway timeout.
func (s *orderService) fetchTransaction(ctx context.Context, transactionID string) (*billing.Transaction, error) {
	ctx, finish := telemetry.StartSpan(ctx, "payment.gateway", "get_transaction "+s.gateway.Name())
	defer finish()

	gctx, cancel := context.WithTimeout(ctx, s.config.GatewayTimeout)
	defer cancel()

	start := time.Now()
	txn, err := s.gateway.GetTransaction(gctx, transactionID)
	s.metrics.ObserveGateway(s.gateway.Name(), "get_transaction", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(gctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			s.metrics.RecordGatewayTimeout(s.gateway.Name())
		}
		return nil, err
	}
	return txn, nil
}

// paymentNotCaptured matches domain.ErrPaymentNotCaptured with errors.Is and
// keeps the cause for logs.
func paymentNotCaptured(op string, cause error) error {
	return &domain.Error{
		Code:    domain.EPAYMENT,
		Op:      op,
		Message: domain.ErrPaymentNotCaptured.Message,
		Err:     fmt.Errorf("%w: %w", domain.ErrPaymentNotCaptured, cause),
	}
}
