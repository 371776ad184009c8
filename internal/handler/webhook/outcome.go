package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/telemetry"
)

// Webhook outcomes recorded in metrics.
const (
	outcomeProcessed = "processed"
	outcomeDuplicate = "duplicate"
	outcomeRejected  = "rejected"
	outcomeIgnored   = "ignored"
	outcomeError     = "error"
)

// readPayload reads the raw body that the provider signed.
func readPayload(r *http.Request, op string) ([]byte, error) {
	payload, err := io.ReadAll(r.Body)
	if err == nil {
		return payload, nil
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return nil, domain.Errorf(domain.ETOOLARGE, op, "Payload too large")
	}
	return nil, domain.Errorf(domain.EINVALID, op, "Error reading request body")
}

// outcomeFor logs a failed webhook action at a level matching its cause.
func outcomeFor(ctx context.Context, logger *slog.Logger, err error, transactionID string) string {
	if errors.Is(err, domain.ErrTransactionAlreadyUsed) {
		// Money captured for one order was presented for another.
		logger.Error("webhook transaction already applied elsewhere", "error", err)
		telemetry.CaptureErrorFromContext(ctx, err, map[string]interface{}{
			"transaction_id": transactionID,
		})
		return outcomeError
	}
	switch domain.ErrorCode(err) {
	case domain.ECONFLICT:
		// Redelivery, or the client already reported the result.
		logger.Info("webhook event already applied", "reason", domain.ErrorMessage(err))
		return outcomeDuplicate
	case domain.EINTERNAL, domain.EUPSTREAM:
		logger.Error("webhook event processing failed", "error", err)
		telemetry.CaptureErrorFromContext(ctx, err, map[string]interface{}{
			"transaction_id": transactionID,
		})
		return outcomeError
	default:
		logger.Warn("webhook event rejected", "error", err, "code", domain.ErrorCode(err))
		return outcomeRejected
	}
}
