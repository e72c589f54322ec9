package customer

import (
	"regexp"
	"strings"
	"time"

	"credit-system/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

var cpfPattern = regexp.MustCompile(`^\d{11}$`)

// Address is a value object embedded in Customer. It has no identity of
// its own and lives and dies with its owning customer.
type Address struct {
	ZipCode string `json:"zipCode"`
	Street  string `json:"street"`
}

type Customer struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Password  string          `json:"-"`
	Address   Address         `json:"address"`
	Income    decimal.Decimal `json:"income"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewCustomer(firstName, lastName, cpf, email, password string, address Address, income decimal.Decimal) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	cpf = strings.TrimSpace(cpf)
	email = strings.TrimSpace(email)

	if firstName == "" {
		return nil, apperrors.NewValidationError("firstName", "first name cannot be empty")
	}
	if lastName == "" {
		return nil, apperrors.NewValidationError("lastName", "last name cannot be empty")
	}
	if !cpfPattern.MatchString(cpf) {
		return nil, apperrors.NewValidationError("cpf", "cpf must be an 11 digit numeric string")
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("email", "email is not valid")
	}
	if password == "" {
		return nil, apperrors.NewValidationError("password", "password cannot be empty")
	}
	if income.IsNegative() {
		return nil, apperrors.NewValidationError("income", "income cannot be negative")
	}

	now := time.Now()
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		CPF:       cpf,
		Email:     email,
		Password:  password,
		Address:   address,
		Income:    income,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Patch carries the mutable subset of customer fields. CPF, email,
// password and id are immutable after registration.
type Patch struct {
	FirstName *string
	LastName  *string
	Income    *decimal.Decimal
	ZipCode   *string
	Street    *string
}

func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Income == nil &&
		p.ZipCode == nil && p.Street == nil
}

func (p Patch) Validate() error {
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return apperrors.NewValidationError("firstName", "first name cannot be empty")
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return apperrors.NewValidationError("lastName", "last name cannot be empty")
	}
	if p.Income != nil && p.Income.IsNegative() {
		return apperrors.NewValidationError("income", "income cannot be negative")
	}
	return nil
}

// Apply overwrites only the fields present in the patch.
func (c *Customer) Apply(p Patch) {
	if p.FirstName != nil {
		c.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		c.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.Income != nil {
		c.Income = *p.Income
	}
	if p.ZipCode != nil {
		c.Address.ZipCode = *p.ZipCode
	}
	if p.Street != nil {
		c.Address.Street = *p.Street
	}
	c.UpdatedAt = time.Now()
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
