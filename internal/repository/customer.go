package repository

import (
	"context"

	"trainerweb/internal/model"
)

// CustomerRepository is the remote customer collection.
type CustomerRepository interface {
	// List returns the full collection in server order, each id derived from its self link.
	List(ctx context.Context) ([]model.Customer, error)

	// Create submits a new customer; the backend assigns id and link.
	Create(ctx context.Context, f model.CustomerFields) error

	// Replace overwrites every editable field of one customer.
	Replace(ctx context.Context, id int64, f model.CustomerFields) error

	// Delete removes one customer. The backend also drops its trainings.
	Delete(ctx context.Context, id int64) error
}
