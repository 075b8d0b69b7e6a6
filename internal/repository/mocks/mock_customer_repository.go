package mocks

import (
	"context"

	"trainerweb/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, f model.CustomerFields) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockCustomerRepository) Replace(ctx context.Context, id int64, f model.CustomerFields) error {
	args := m.Called(ctx, id, f)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
