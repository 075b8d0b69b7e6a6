package mocks

import (
	"context"

	"trainerweb/internal/model"
	"trainerweb/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockTrainingView struct {
	mock.Mock
}

func (m *MockTrainingView) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrainingView) OpenAdd() {
	m.Called()
}

func (m *MockTrainingView) CancelAdd() {
	m.Called()
}

func (m *MockTrainingView) Create(ctx context.Context, d model.TrainingDraft) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockTrainingView) BeginEdit(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTrainingView) CancelEdit() {
	m.Called()
}

func (m *MockTrainingView) Update(ctx context.Context, e model.TrainingEdit) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockTrainingView) RequestDelete(id int64) {
	m.Called(id)
}

func (m *MockTrainingView) CancelDelete() {
	m.Called()
}

func (m *MockTrainingView) ConfirmDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrainingView) Snapshot() service.TrainingState {
	args := m.Called()
	return args.Get(0).(service.TrainingState)
}
