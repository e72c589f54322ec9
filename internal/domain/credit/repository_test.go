package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Create(ctx context.Context, cred *Credit) (*Credit, error) {
	ret := _m.Called(ctx, cred)

	var r0 *Credit
	if rf, ok := ret.Get(0).(func(context.Context, *Credit) *Credit); ok {
		r0 = rf(ctx, cred)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Credit)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *Credit) error); ok {
		r1 = rf(ctx, cred)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*Credit, error) {
	ret := _m.Called(ctx, creditCode)

	var r0 *Credit
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *Credit); ok {
		r0 = rf(ctx, creditCode)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Credit)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, creditCode)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Credit
	if rf, ok := ret.Get(0).(func(context.Context, int64) []*Credit); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Credit)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) FindExpiredInProgress(ctx context.Context, asOf time.Time) ([]*Credit, error) {
	ret := _m.Called(ctx, asOf)

	var r0 []*Credit
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) []*Credit); ok {
		r0 = rf(ctx, asOf)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Credit)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, time.Time) error); ok {
		r1 = rf(ctx, asOf)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) UpdateStatus(ctx context.Context, creditID int64, status Status) error {
	ret := _m.Called(ctx, creditID, status)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, Status) error); ok {
		r0 = rf(ctx, creditID, status)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

var _ Repository = (*MockRepository)(nil)
