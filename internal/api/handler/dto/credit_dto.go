package dto

import (
	"fmt"
	"time"

	"credit-system/internal/domain/credit"
	"credit-system/internal/domain/customer"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateCreditRequest struct {
	CustomerID           int64  `json:"customerId"`
	CreditValue          string `json:"creditValue"`
	DayFirstInstallment  string `json:"dayFirstInstallment"`
	NumberOfInstallments int    `json:"numberOfInstallments"`
}

func (r *CreateCreditRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("customerId must be positive")
	}
	value, err := decimal.NewFromString(r.CreditValue)
	if err != nil {
		return fmt.Errorf("invalid creditValue amount: %w", err)
	}
	if !value.IsPositive() {
		return fmt.Errorf("creditValue must be greater than zero")
	}
	if r.NumberOfInstallments <= 0 {
		return fmt.Errorf("numberOfInstallments must be positive")
	}
	if _, err := time.Parse(dateLayout, r.DayFirstInstallment); err != nil {
		return fmt.Errorf("invalid dayFirstInstallment format (use YYYY-MM-DD): %w", err)
	}
	return nil
}

func (r *CreateCreditRequest) ToEntity() (*credit.Credit, error) {
	value, err := decimal.NewFromString(r.CreditValue)
	if err != nil {
		return nil, fmt.Errorf("invalid creditValue amount: %w", err)
	}
	dayFirstInstallment, err := time.Parse(dateLayout, r.DayFirstInstallment)
	if err != nil {
		return nil, fmt.Errorf("invalid dayFirstInstallment format (use YYYY-MM-DD): %w", err)
	}
	return credit.NewCredit(value, dayFirstInstallment, r.NumberOfInstallments, r.CustomerID)
}

// CreditListItemResponse is the compact view used when listing a
// customer's credits.
type CreditListItemResponse struct {
	CreditCode           string `json:"creditCode"`
	CreditValue          string `json:"creditValue"`
	NumberOfInstallments int    `json:"numberOfInstallments"`
	Status               string `json:"status"`
}

func NewCreditListItemResponse(cred *credit.Credit) CreditListItemResponse {
	return CreditListItemResponse{
		CreditCode:           cred.CreditCode.String(),
		CreditValue:          cred.CreditValue.StringFixed(2),
		NumberOfInstallments: cred.NumberOfInstallments,
		Status:               string(cred.Status),
	}
}

// CreditResponse is the detail view, enriched with the owning customer's
// email and income.
type CreditResponse struct {
	CreditCode           string `json:"creditCode"`
	CreditValue          string `json:"creditValue"`
	DayFirstInstallment  string `json:"dayFirstInstallment"`
	NumberOfInstallments int    `json:"numberOfInstallments"`
	Status               string `json:"status"`
	EmailCustomer        string `json:"emailCustomer,omitempty"`
	IncomeCustomer       string `json:"incomeCustomer,omitempty"`
}

func NewCreditResponse(cred *credit.Credit, owner *customer.Customer) CreditResponse {
	resp := CreditResponse{
		CreditCode:           cred.CreditCode.String(),
		CreditValue:          cred.CreditValue.StringFixed(2),
		DayFirstInstallment:  cred.DayFirstInstallment.Format(dateLayout),
		NumberOfInstallments: cred.NumberOfInstallments,
		Status:               string(cred.Status),
	}
	if owner != nil {
		resp.EmailCustomer = owner.Email
		resp.IncomeCustomer = owner.Income.StringFixed(2)
	}
	return resp
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}
