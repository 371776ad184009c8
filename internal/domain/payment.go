package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Payment-related domain errors.
var (
	ErrInvalidAmount      = &Error{Code: EINVALID, Message: "Invalid amount"}
	ErrAmountMismatch     = &Error{Code: EINVALID, Message: "Amount does not match order total"}
	ErrGatewayUnavailable = &Error{Code: EUPSTREAM, Message: "Payment gateway unavailable"}
)

// PaymentMethod is the normalized instrument a payment was made with.
type PaymentMethod string

const (
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodCard       PaymentMethod = "CARD"
	PaymentMethodNetBanking PaymentMethod = "NETBANKING"
	PaymentMethodWallet     PaymentMethod = "WALLET"
	PaymentMethodEMI        PaymentMethod = "EMI"
	PaymentMethodPayLater   PaymentMethod = "PAYLATER"
	PaymentMethodCOD        PaymentMethod = "COD"
	PaymentMethodUnknown    PaymentMethod = "UNKNOWN"
)

// ParsePaymentMethod maps a raw gateway method string to a PaymentMethod.
// Unrecognized values map to PaymentMethodUnknown, never to COD.
func ParsePaymentMethod(raw string) PaymentMethod {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(raw)))
	switch key {
	case "upi":
		return PaymentMethodUPI
	case "card", "creditcard", "debitcard":
		return PaymentMethodCard
	case "netbanking":
		return PaymentMethodNetBanking
	case "wallet":
		return PaymentMethodWallet
	case "emi", "cardlessemi":
		return PaymentMethodEMI
	case "paylater":
		return PaymentMethodPayLater
	case "cod", "cashondelivery":
		return PaymentMethodCOD
	}
	return PaymentMethodUnknown
}

// PaymentStatus is the outcome recorded in the payment ledger.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusSuccess PaymentStatus = "Success"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// ToMinorUnits converts a currency amount to the gateway's smallest unit
// (paise for INR), rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FromMinorUnits converts a gateway amount back to currency units.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
