package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"trainerweb/internal/localtime"
	"trainerweb/internal/logging"
	"trainerweb/internal/model"
	"trainerweb/internal/repository"
)

// TrainingState is a point-in-time copy of the training page.
type TrainingState struct {
	Trainings     []model.Training
	AddOpen       bool
	Draft         model.TrainingDraft
	Editing       *model.TrainingEdit
	PendingDelete *DeleteConfirmation
}

// TrainingView owns the training list and its dialogs, with the same reload
// discipline as CustomerView. Dates are entered and edited as datetime-local
// values in the view's location.
type TrainingView interface {
	Load(ctx context.Context) error

	OpenAdd()
	CancelAdd()
	// Create converts the draft and submits it for the referenced customer.
	// Unconvertible input is logged and nothing is sent.
	Create(ctx context.Context, d model.TrainingDraft) error

	// BeginEdit fills the edit dialog; an unparseable date shows as empty.
	BeginEdit(id int64) error
	CancelEdit()
	// Update replaces date, activity and duration. The owner never changes.
	Update(ctx context.Context, e model.TrainingEdit) error

	RequestDelete(id int64)
	CancelDelete()
	ConfirmDelete(ctx context.Context, id int64) error

	Snapshot() TrainingState
}

type trainingView struct {
	repo repository.TrainingRepository
	log  *logging.Logger
	loc  *time.Location

	mu            sync.Mutex
	rows          []model.Training
	addOpen       bool
	draft         model.TrainingDraft
	edit          *model.TrainingEdit
	pendingDelete *DeleteConfirmation
}

// NewTrainingView constructs an empty TrainingView converting dates in loc.
func NewTrainingView(repo repository.TrainingRepository, log *logging.Logger, loc *time.Location) TrainingView {
	if log == nil {
		log = logging.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &trainingView{repo: repo, log: log, loc: loc}
}

func (v *trainingView) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "TrainingView.Load")
	defer span.End()

	items, err := v.repo.List(ctx)
	if err != nil {
		fail(ctx, v.log, span, "training_load_failed", err, nil)
		return err
	}
	span.SetAttributes(attribute.Int("trainings.count", len(items)))

	v.mu.Lock()
	v.rows = items
	v.mu.Unlock()
	return nil
}

func (v *trainingView) OpenAdd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addOpen = true
}

func (v *trainingView) CancelAdd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addOpen = false
}

func (v *trainingView) Create(ctx context.Context, d model.TrainingDraft) error {
	ctx, span := tracer.Start(ctx, "TrainingView.Create")
	defer span.End()

	v.mu.Lock()
	v.draft = d
	v.mu.Unlock()

	date, duration, err := v.convert(d.Date, d.Duration)
	if err != nil {
		fail(ctx, v.log, span, "training_create_invalid", err, nil)
		return err
	}
	body := model.NewTraining{
		Date:     date,
		Activity: d.Activity,
		Duration: duration,
		Customer: model.CustomerRef(d.CustomerLink),
	}
	if err := v.repo.Create(ctx, body); err != nil {
		fail(ctx, v.log, span, "training_create_failed", err, nil)
		return err
	}

	v.mu.Lock()
	v.draft = model.TrainingDraft{}
	v.addOpen = false
	v.mu.Unlock()

	_ = v.Load(ctx)
	return nil
}

func (v *trainingView) BeginEdit(id int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, t := range v.rows {
		if t.ID == id {
			v.edit = &model.TrainingEdit{
				ID:       t.ID,
				Date:     localtime.ToInput(t.Date, v.loc),
				Activity: t.Activity,
				Duration: strconv.Itoa(t.Duration),
			}
			return nil
		}
	}
	return ErrNotFound
}

func (v *trainingView) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.edit = nil
}

func (v *trainingView) Update(ctx context.Context, e model.TrainingEdit) error {
	ctx, span := tracer.Start(ctx, "TrainingView.Update", trace.WithAttributes(attribute.Int64("training.id", e.ID)))
	defer span.End()

	v.mu.Lock()
	edited := e
	v.edit = &edited
	v.mu.Unlock()

	fields := logging.Fields{"training_id": e.ID}
	date, duration, err := v.convert(e.Date, e.Duration)
	if err != nil {
		fail(ctx, v.log, span, "training_update_invalid", err, fields)
		return err
	}
	body := model.TrainingUpdate{Date: date, Activity: e.Activity, Duration: duration}
	if err := v.repo.Replace(ctx, e.ID, body); err != nil {
		fail(ctx, v.log, span, "training_update_failed", err, fields)
		return err
	}

	v.mu.Lock()
	if v.edit != nil && v.edit.ID == e.ID {
		v.edit = nil
	}
	v.mu.Unlock()

	_ = v.Load(ctx)
	return nil
}

func (v *trainingView) RequestDelete(id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingDelete = &DeleteConfirmation{ID: id, Message: trainingDeletePrompt}
}

func (v *trainingView) CancelDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingDelete = nil
}

func (v *trainingView) ConfirmDelete(ctx context.Context, id int64) error {
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

	ctx, span := tracer.Start(ctx, "TrainingView.Delete", trace.WithAttributes(attribute.Int64("training.id", pending.ID)))
	defer span.End()

	if err := v.repo.Delete(ctx, pending.ID); err != nil {
		fail(ctx, v.log, span, "training_delete_failed", err, logging.Fields{"training_id": pending.ID})
		return err
	}

	_ = v.Load(ctx)
	return nil
}

func (v *trainingView) Snapshot() TrainingState {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([]model.Training, len(v.rows))
	copy(rows, v.rows)
	s := TrainingState{
		Trainings: rows,
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

func (v *trainingView) convert(date, duration string) (string, int, error) {
	instant, err := localtime.ToInstant(date, v.loc)
	if err != nil {
		return "", 0, err
	}
	minutes, err := parseDuration(duration)
	if err != nil {
		return "", 0, err
	}
	return instant, minutes, nil
}

// parseDuration reads the duration field; an empty field counts as 0.
func parseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return n, nil
}
