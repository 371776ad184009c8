package billing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockProvider is a mock billing provider for testing and local development.
// Simulates payment flows without calling a real gateway.
type MockProvider struct {
	// CreatePaymentIntentFunc allows customizing payment intent creation behavior
	CreatePaymentIntentFunc func(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetTransactionFunc allows customizing transaction lookup behavior
	GetTransactionFunc func(ctx context.Context, transactionID string) (*Transaction, error)

	// VerifyWebhookSignatureFunc allows customizing webhook verification behavior
	VerifyWebhookSignatureFunc func(payload []byte, signature string, secret string) error

	// PaymentIntents stores created payment intents for retrieval
	PaymentIntents map[string]*PaymentIntent

	// Transactions stores simulated payments, keyed by transaction id
	Transactions map[string]*Transaction

	// CallLog tracks method calls for test assertions
	CallLog []string

	mu sync.Mutex
}

// NewMockProvider creates a new mock billing provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		PaymentIntents: make(map[string]*PaymentIntent),
		Transactions:   make(map[string]*Transaction),
		CallLog:        []string{},
	}
}

// Name implements Provider.
func (m *MockProvider) Name() string { return "mock" }

// CreatePaymentIntent creates a mock payment intent.
func (m *MockProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	m.log(fmt.Sprintf("CreatePaymentIntent(%d, %s)", params.AmountMinor, params.Currency))

	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, params)
	}
	if params.AmountMinor <= 0 {
		return nil, ErrAmountTooSmall
	}

	// Default mock behavior: create an intent awaiting payment
	pi := &PaymentIntent{
		ID:          "order_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:14],
		Provider:    m.Name(),
		AmountMinor: params.AmountMinor,
		Currency:    params.Currency,
		Receipt:     params.Receipt,
		Status:      "created",
		Metadata:    params.Metadata,
		CreatedAt:   time.Now(),
	}

	m.mu.Lock()
	m.PaymentIntents[pi.ID] = pi
	m.mu.Unlock()
	return pi, nil
}

// GetTransaction returns a simulated transaction.
func (m *MockProvider) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	m.log(fmt.Sprintf("GetTransaction(%s)", transactionID))

	if m.GetTransactionFunc != nil {
		return m.GetTransactionFunc(ctx, transactionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	tx, exists := m.Transactions[transactionID]
	if !exists {
		return nil, ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

// VerifyWebhookSignature verifies a mock webhook signature.
func (m *MockProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	m.log("VerifyWebhookSignature")

	if m.VerifyWebhookSignatureFunc != nil {
		return m.VerifyWebhookSignatureFunc(payload, signature, secret)
	}

	// Default mock behavior: always verify successfully
	return nil
}

// SimulateCapturedPayment records a captured transaction for the given amount.
// Used in tests to simulate a successful checkout.
func (m *MockProvider) SimulateCapturedPayment(transactionID string, amountMinor int64, method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions[transactionID] = &Transaction{
		ID:          transactionID,
		Status:      "captured",
		Captured:    true,
		Method:      method,
		AmountMinor: amountMinor,
		Currency:    "INR",
	}
}

// SimulateCapturedPaymentForOrder records a captured transaction whose intent
// carried order_id metadata, as real gateways report it.
func (m *MockProvider) SimulateCapturedPaymentForOrder(transactionID string, amountMinor int64, method, orderID string) {
	m.SimulateCapturedPayment(transactionID, amountMinor, method)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions[transactionID].Metadata = map[string]string{"order_id": orderID}
}

// SimulateAuthorizedPayment records a transaction that was authorized but never captured.
func (m *MockProvider) SimulateAuthorizedPayment(transactionID string, amountMinor int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions[transactionID] = &Transaction{
		ID:          transactionID,
		Status:      "authorized",
		AmountMinor: amountMinor,
		Currency:    "INR",
	}
}

// SimulateFailedPayment records a failed transaction.
func (m *MockProvider) SimulateFailedPayment(transactionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions[transactionID] = &Transaction{
		ID:       transactionID,
		Status:   "failed",
		Currency: "INR",
	}
}

// Calls returns a snapshot of the call log.
func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.CallLog...)
}

func (m *MockProvider) log(call string) {
	m.mu.Lock()
	m.CallLog = append(m.CallLog, call)
	m.mu.Unlock()
}
