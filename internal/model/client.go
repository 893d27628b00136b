package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a customer of the agency.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientProject lifecycle statuses.
const (
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusDelivered  = "delivered"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCancelled  = "cancelled"
)

// Payment methods accepted for a ClientProject.
const (
	PaymentBankTransfer = "bank_transfer"
	PaymentUPI          = "upi"
	PaymentCash         = "cash"
	PaymentCheque       = "cheque"
	PaymentCard         = "card"
	PaymentPayPal       = "paypal"
	PaymentOther        = "other"
)

var validProjectStatuses = map[string]bool{
	ProjectStatusInProgress: true,
	ProjectStatusCompleted:  true,
	ProjectStatusDelivered:  true,
	ProjectStatusOnHold:     true,
	ProjectStatusCancelled:  true,
}

var validPaymentMethods = map[string]bool{
	PaymentBankTransfer: true,
	PaymentUPI:          true,
	PaymentCash:         true,
	PaymentCheque:       true,
	PaymentCard:         true,
	PaymentPayPal:       true,
	PaymentOther:        true,
}

// IsValidProjectStatus reports whether s is a known lifecycle status.
func IsValidProjectStatus(s string) bool { return validProjectStatuses[s] }

// IsValidPaymentMethod reports whether s is a known payment method.
func IsValidPaymentMethod(s string) bool { return validPaymentMethods[s] }

// ClientProject is a billable engagement belonging to exactly one Client.
// Monetary fields are exact decimals; balance and profit are always derived.
type ClientProject struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Status        string          `json:"status"`
	TotalBill     decimal.Decimal `json:"total_bill"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Expenses      decimal.Decimal `json:"expenses"`
	StartDate     *time.Time      `json:"start_date,omitempty"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	DeliveredDate *time.Time      `json:"delivered_date,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BalanceDue is the billed amount not yet paid.
func (p *ClientProject) BalanceDue() decimal.Decimal {
	return p.TotalBill.Sub(p.AmountPaid)
}

// Profit is the amount paid minus expenses.
func (p *ClientProject) Profit() decimal.Decimal {
	return p.AmountPaid.Sub(p.Expenses)
}

// IsProfitable reports whether Profit is non-negative.
func (p *ClientProject) IsProfitable() bool {
	return !p.Profit().IsNegative()
}

// ClientProjectListOptions filters the client project list. Empty fields match everything.
type ClientProjectListOptions struct {
	ClientID string
	Status   string
}
