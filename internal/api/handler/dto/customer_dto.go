package dto

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"credit-system/internal/domain/customer"

	"github.com/shopspring/decimal"
)

var cpfPattern = regexp.MustCompile(`^\d{11}$`)

type CreateCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ZipCode   string `json:"zipCode"`
	Street    string `json:"street"`
	Income    string `json:"income"`
}

func (r *CreateCustomerRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return fmt.Errorf("firstName cannot be empty")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return fmt.Errorf("lastName cannot be empty")
	}
	if !cpfPattern.MatchString(strings.TrimSpace(r.CPF)) {
		return fmt.Errorf("cpf must be an 11 digit numeric string")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("email is not valid")
	}
	if r.Password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	income, err := decimal.NewFromString(r.Income)
	if err != nil {
		return fmt.Errorf("invalid income amount: %w", err)
	}
	if income.IsNegative() {
		return fmt.Errorf("income cannot be negative")
	}
	return nil
}

func (r *CreateCustomerRequest) ToEntity() (*customer.Customer, error) {
	income, err := decimal.NewFromString(r.Income)
	if err != nil {
		return nil, fmt.Errorf("invalid income amount: %w", err)
	}
	return customer.NewCustomer(
		r.FirstName,
		r.LastName,
		strings.TrimSpace(r.CPF),
		r.Email,
		r.Password,
		customer.Address{ZipCode: r.ZipCode, Street: r.Street},
		income,
	)
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Income    *string `json:"income,omitempty"`
	ZipCode   *string `json:"zipCode,omitempty"`
	Street    *string `json:"street,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if r.FirstName == nil && r.LastName == nil && r.Income == nil && r.ZipCode == nil && r.Street == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	if r.Income != nil {
		if _, err := decimal.NewFromString(*r.Income); err != nil {
			return fmt.Errorf("invalid income amount: %w", err)
		}
	}
	return nil
}

func (r *UpdateCustomerRequest) ToPatch() (customer.Patch, error) {
	patch := customer.Patch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		ZipCode:   r.ZipCode,
		Street:    r.Street,
	}
	if r.Income != nil {
		income, err := decimal.NewFromString(*r.Income)
		if err != nil {
			return customer.Patch{}, fmt.Errorf("invalid income amount: %w", err)
		}
		patch.Income = &income
	}
	return patch, nil
}

type CustomerResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	ZipCode   string    `json:"zipCode"`
	Street    string    `json:"street"`
	Income    string    `json:"income"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		ID:        strconv.FormatInt(cust.ID, 10),
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		CPF:       cust.CPF,
		Email:     cust.Email,
		ZipCode:   cust.Address.ZipCode,
		Street:    cust.Address.Street,
		Income:    cust.Income.StringFixed(2),
		CreatedAt: cust.CreatedAt,
		UpdatedAt: cust.UpdatedAt,
	}
}
