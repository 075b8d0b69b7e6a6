package repository

import (
	"context"

	"trainerweb/internal/model"
)

// TrainingRepository is the remote training collection.
type TrainingRepository interface {
	// List returns every training with its customer's name and email.
	List(ctx context.Context) ([]model.Training, error)

	Create(ctx context.Context, t model.NewTraining) error

	// Replace updates date, activity and duration; the owner is untouched.
	Replace(ctx context.Context, id int64, t model.TrainingUpdate) error

	Delete(ctx context.Context, id int64) error
}
