package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"credit-system/internal/domain/customer"
	"credit-system/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newStoredCustomer() *customer.Customer {
	return &customer.Customer{
		ID:        1,
		FirstName: "Camila",
		LastName:  "Cavalcante",
		CPF:       "28475934625",
		Email:     "camila@gmail.com",
		Password:  "12345",
		Address:   customer.Address{ZipCode: "12345678", Street: "Rua 1"},
		Income:    decimal.RequireFromString("1000.00"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func setupCustomerRepo(t *testing.T) (context.Context, *CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewCustomerRepository(mockPool, logger)

	return ctx, repo, mockPool
}

const insertCustomerQuery = `
        INSERT INTO customers (first_name, last_name, cpf, email, password, zip_code, street, income, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        RETURNING id, created_at, updated_at`

const selectCustomerColumns = `id, first_name, last_name, cpf, email, password, zip_code, street, income, created_at, updated_at`

func TestSaveNewCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := newStoredCustomer()
	cust.ID = 0

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).WithArgs(
		cust.FirstName,
		cust.LastName,
		cust.CPF,
		cust.Email,
		cust.Password,
		cust.Address.ZipCode,
		cust.Address.Street,
		cust.Income,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(1), cust.CreatedAt, cust.UpdatedAt))

	err := repo.Save(ctx, cust)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cust.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveNewCustomerWhenDuplicateCPF(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := newStoredCustomer()
	cust.ID = 0

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).WithArgs(
		cust.FirstName,
		cust.LastName,
		cust.CPF,
		cust.Email,
		cust.Password,
		cust.Address.ZipCode,
		cust.Address.Street,
		cust.Income,
	).WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "customers_cpf_key"})

	err := repo.Save(ctx, cust)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveExistingCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := newStoredCustomer()

	query := `
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            zip_code = $3,
            street = $4,
            income = $5,
            updated_at = NOW()
        WHERE id = $6`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		cust.FirstName,
		cust.LastName,
		cust.Address.ZipCode,
		cust.Address.Street,
		cust.Income,
		cust.ID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Save(ctx, cust)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveExistingCustomerWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := newStoredCustomer()

	mockPool.ExpectExec(regexp.QuoteMeta("UPDATE customers")).WithArgs(
		cust.FirstName,
		cust.LastName,
		cust.Address.ZipCode,
		cust.Address.Street,
		cust.Income,
		cust.ID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Save(ctx, cust)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByIDReturnOne(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := newStoredCustomer()

	query := `
        SELECT ` + selectCustomerColumns + `
        FROM customers
        WHERE id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(cust.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "last_name", "cpf", "email", "password", "zip_code", "street", "income", "created_at", "updated_at"}).
			AddRow(cust.ID, cust.FirstName, cust.LastName, cust.CPF, cust.Email, cust.Password, cust.Address.ZipCode, cust.Address.Street, cust.Income, cust.CreatedAt, cust.UpdatedAt))

	result, err := repo.FindByID(ctx, cust.ID)
	assert.NoError(t, err)
	assert.Equal(t, cust.ID, result.ID)
	assert.Equal(t, cust.CPF, result.CPF)
	assert.True(t, cust.Income.Equal(result.Income))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByIDReturnNone(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT")).WithArgs(int64(404)).WillReturnError(pgx.ErrNoRows)

	result, err := repo.FindByID(ctx, 404)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllCustomers(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := newStoredCustomer()

	query := `
        SELECT ` + selectCustomerColumns + `
        FROM customers
        ORDER BY id ASC`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "last_name", "cpf", "email", "password", "zip_code", "street", "income", "created_at", "updated_at"}).
			AddRow(cust.ID, cust.FirstName, cust.LastName, cust.CPF, cust.Email, cust.Password, cust.Address.ZipCode, cust.Address.Street, cust.Income, cust.CreatedAt, cust.UpdatedAt).
			AddRow(int64(2), "Bob", "Souza", "12345678901", "bob@gmail.com", "pw", "", "", decimal.Zero, cust.CreatedAt, cust.UpdatedAt))

	customers, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, customers, 2)
	assert.Equal(t, "Bob", customers[1].FirstName)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM customers WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteCustomerWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM customers WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(ctx, 404)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
