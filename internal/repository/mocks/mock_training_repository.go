package mocks

import (
	"context"

	"trainerweb/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockTrainingRepository struct {
	mock.Mock
}

func (m *MockTrainingRepository) List(ctx context.Context) ([]model.Training, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Training), args.Error(1)
}

func (m *MockTrainingRepository) Create(ctx context.Context, t model.NewTraining) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTrainingRepository) Replace(ctx context.Context, id int64, t model.TrainingUpdate) error {
	args := m.Called(ctx, id, t)
	return args.Error(0)
}

func (m *MockTrainingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
