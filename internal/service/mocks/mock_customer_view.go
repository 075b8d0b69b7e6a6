package mocks

import (
	"context"

	"trainerweb/internal/model"
	"trainerweb/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCustomerView struct {
	mock.Mock
}

func (m *MockCustomerView) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCustomerView) OpenAdd() {
	m.Called()
}

func (m *MockCustomerView) CancelAdd() {
	m.Called()
}

func (m *MockCustomerView) Create(ctx context.Context, f model.CustomerFields) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockCustomerView) BeginEdit(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCustomerView) CancelEdit() {
	m.Called()
}

func (m *MockCustomerView) Update(ctx context.Context, id int64, f model.CustomerFields) error {
	args := m.Called(ctx, id, f)
	return args.Error(0)
}

func (m *MockCustomerView) RequestDelete(id int64) {
	m.Called(id)
}

func (m *MockCustomerView) CancelDelete() {
	m.Called()
}

func (m *MockCustomerView) ConfirmDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerView) Snapshot() service.CustomerState {
	args := m.Called()
	return args.Get(0).(service.CustomerState)
}
