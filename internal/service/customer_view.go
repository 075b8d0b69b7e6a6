package service

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"trainerweb/internal/logging"
	"trainerweb/internal/model"
	"trainerweb/internal/repository"
)

// CustomerState is a point-in-time copy of the customer page.
type CustomerState struct {
	Customers     []model.Customer
	AddOpen       bool
	Draft         model.CustomerFields
	Editing       *model.Customer
	PendingDelete *DeleteConfirmation
}

// CustomerView owns the customer list and its dialogs. The list only ever
// changes by a full reload from the backend; mutations are never applied
// locally.
type CustomerView interface {
	// Load replaces the list with the backend collection. On failure the
	// previous list stays.
	Load(ctx context.Context) error

	OpenAdd()
	// CancelAdd closes the add dialog and keeps whatever was typed.
	CancelAdd()
	// Create submits f. On success the form is cleared, the dialog closed and
	// the list reloaded; on failure the form stays filled in for a retry.
	Create(ctx context.Context, f model.CustomerFields) error

	BeginEdit(id int64) error
	CancelEdit()
	// Update replaces every editable field of one customer. The edit dialog
	// closes only on success.
	Update(ctx context.Context, id int64, f model.CustomerFields) error

	// RequestDelete opens the confirmation gate; nothing is sent yet.
	RequestDelete(id int64)
	CancelDelete()
	// ConfirmDelete deletes the pending customer and reloads on success. id
	// must name the customer the gate was opened for; anything else is
	// refused and the gate stays open.
	ConfirmDelete(ctx context.Context, id int64) error

	Snapshot() CustomerState
}

type customerView struct {
	repo repository.CustomerRepository
	log  *logging.Logger

	mu            sync.Mutex
	rows          []model.Customer
	addOpen       bool
	draft         model.CustomerFields
	edit          *model.Customer
	pendingDelete *DeleteConfirmation
}

// NewCustomerView constructs an empty CustomerView; call Load to populate it.
func NewCustomerView(repo repository.CustomerRepository, log *logging.Logger) CustomerView {
	if log == nil {
		log = logging.Default()
	}
	return &customerView{repo: repo, log: log}
}

func (v *customerView) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "CustomerView.Load")
	defer span.End()

	items, err := v.repo.List(ctx)
	if err != nil {
		fail(ctx, v.log, span, "customer_load_failed", err, nil)
		return err
	}
	span.SetAttributes(attribute.Int("customers.count", len(items)))

	v.mu.Lock()
	v.rows = items
	v.mu.Unlock()
	return nil
}

func (v *customerView) OpenAdd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addOpen = true
}

func (v *customerView) CancelAdd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addOpen = false
}

func (v *customerView) Create(ctx context.Context, f model.CustomerFields) error {
	ctx, span := tracer.Start(ctx, "CustomerView.Create")
	defer span.End()

	v.mu.Lock()
	v.draft = f
	v.mu.Unlock()

	if err := v.repo.Create(ctx, f); err != nil {
		fail(ctx, v.log, span, "customer_create_failed", err, nil)
		return err
	}

	v.mu.Lock()
	v.draft = model.CustomerFields{}
	v.addOpen = false
	v.mu.Unlock()

	_ = v.Load(ctx)
	return nil
}

func (v *customerView) BeginEdit(id int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.rows {
		if c.ID == id {
			v.edit = &c
			return nil
		}
	}
	return ErrNotFound
}

func (v *customerView) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.edit = nil
}

func (v *customerView) Update(ctx context.Context, id int64, f model.CustomerFields) error {
	ctx, span := tracer.Start(ctx, "CustomerView.Update", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	v.mu.Lock()
	base := model.Customer{ID: id}
	if v.edit != nil && v.edit.ID == id {
		base = *v.edit
	}
	edited := base.WithFields(f)
	v.edit = &edited
	v.mu.Unlock()

	if err := v.repo.Replace(ctx, id, f); err != nil {
		fail(ctx, v.log, span, "customer_update_failed", err, logging.Fields{"customer_id": id})
		return err
	}

	v.mu.Lock()
	if v.edit != nil && v.edit.ID == id {
		v.edit = nil
	}
	v.mu.Unlock()

	_ = v.Load(ctx)
	return nil
}

func (v *customerView) RequestDelete(id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingDelete = &DeleteConfirmation{ID: id, Message: customerDeletePrompt}
}

func (v *customerView) CancelDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingDelete = nil
}

func (v *customerView) ConfirmDelete(ctx context.Context, id int64) error {
	v.mu.Lock()
	pending := v.pendingDelete
	if pending == nil {
		v.mu.Unlock()
		return ErrNoPendingDelete
	}
	if pending.ID != id {
		v.mu.Unlock()
		return ErrDeleteMismatch
	}
	v.pendingDelete = nil
	v.mu.Unlock()

	ctx, span := tracer.Start(ctx, "CustomerView.Delete", trace.WithAttributes(attribute.Int64("customer.id", pending.ID)))
	defer span.End()

	if err := v.repo.Delete(ctx, pending.ID); err != nil {
		fail(ctx, v.log, span, "customer_delete_failed", err, logging.Fields{"customer_id": pending.ID})
		return err
	}

	_ = v.Load(ctx)
	return nil
}

func (v *customerView) Snapshot() CustomerState {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([]model.Customer, len(v.rows))
	copy(rows, v.rows)
	s := CustomerState{
		Customers: rows,
		AddOpen:   v.addOpen,
		Draft:     v.draft,
	}
	if v.edit != nil {
		e := *v.edit
		s.Editing = &e
	}
	if v.pendingDelete != nil {
		d := *v.pendingDelete
		s.PendingDelete = &d
	}
	return s
}
