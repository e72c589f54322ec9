package customer_test

import (
	"testing"

	"credit-system/internal/domain/customer"
	"credit-system/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validAddress() customer.Address {
	return customer.Address{ZipCode: "12345678", Street: "Rua 1"}
}

func TestNewCustomer(t *testing.T) {
	income := decimal.NewFromInt(1000)

	t.Run("Success", func(t *testing.T) {
		cust, err := customer.NewCustomer("  Camila  ", " Cavalcante ", "28475934625", "camila@gmail.com", "12345", validAddress(), income)

		assert.NoError(t, err)
		assert.NotNil(t, cust)
		assert.Equal(t, "Camila", cust.FirstName)
		assert.Equal(t, "Cavalcante", cust.LastName)
		assert.Equal(t, "28475934625", cust.CPF)
		assert.Equal(t, "camila@gmail.com", cust.Email)
		assert.True(t, income.Equal(cust.Income))
		assert.False(t, cust.CreatedAt.IsZero())
		assert.Equal(t, cust.CreatedAt, cust.UpdatedAt)
		assert.Equal(t, int64(0), cust.ID)
	})

	t.Run("Error - Empty First Name", func(t *testing.T) {
		_, err := customer.NewCustomer("   ", "Cavalcante", "28475934625", "camila@gmail.com", "12345", validAddress(), income)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Error - Empty Last Name", func(t *testing.T) {
		_, err := customer.NewCustomer("Camila", "", "28475934625", "camila@gmail.com", "12345", validAddress(), income)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Error - CPF Too Short", func(t *testing.T) {
		_, err := customer.NewCustomer("Camila", "Cavalcante", "123", "camila@gmail.com", "12345", validAddress(), income)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "cpf", validationErr.Field)
	})

	t.Run("Error - CPF Not Numeric", func(t *testing.T) {
		_, err := customer.NewCustomer("Camila", "Cavalcante", "2847593462a", "camila@gmail.com", "12345", validAddress(), income)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Error - Invalid Email", func(t *testing.T) {
		_, err := customer.NewCustomer("Camila", "Cavalcante", "28475934625", "camila.gmail.com", "12345", validAddress(), income)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Error - Empty Password", func(t *testing.T) {
		_, err := customer.NewCustomer("Camila", "Cavalcante", "28475934625", "camila@gmail.com", "", validAddress(), income)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Error - Negative Income", func(t *testing.T) {
		_, err := customer.NewCustomer("Camila", "Cavalcante", "28475934625", "camila@gmail.com", "12345", validAddress(), decimal.NewFromInt(-1))
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestPatch(t *testing.T) {
	t.Run("IsEmpty", func(t *testing.T) {
		assert.True(t, customer.Patch{}.IsEmpty())

		name := "Camila"
		assert.False(t, customer.Patch{FirstName: &name}.IsEmpty())
	})

	t.Run("Validate - Success", func(t *testing.T) {
		name := "Camila"
		income := decimal.NewFromInt(2000)
		patch := customer.Patch{FirstName: &name, Income: &income}
		assert.NoError(t, patch.Validate())
	})

	t.Run("Validate - Empty First Name", func(t *testing.T) {
		name := "  "
		patch := customer.Patch{FirstName: &name}
		err := patch.Validate()
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Validate - Negative Income", func(t *testing.T) {
		income := decimal.NewFromInt(-5)
		patch := customer.Patch{Income: &income}
		err := patch.Validate()
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestCustomerApply(t *testing.T) {
	income := decimal.NewFromInt(1000)
	cust, err := customer.NewCustomer("Camila", "Cavalcante", "28475934625", "camila@gmail.com", "12345", validAddress(), income)
	assert.NoError(t, err)

	newName := "  Cami  "
	newIncome := decimal.NewFromInt(2500)
	newStreet := "Rua Updated"

	cust.Apply(customer.Patch{FirstName: &newName, Income: &newIncome, Street: &newStreet})

	assert.Equal(t, "Cami", cust.FirstName)
	assert.Equal(t, "Cavalcante", cust.LastName)
	assert.True(t, newIncome.Equal(cust.Income))
	assert.Equal(t, "Rua Updated", cust.Address.Street)
	assert.Equal(t, "12345678", cust.Address.ZipCode)
}

func TestCustomerFullName(t *testing.T) {
	cust := &customer.Customer{FirstName: "Camila", LastName: "Cavalcante"}
	assert.Equal(t, "Camila Cavalcante", cust.FullName())
}
