package handler

import (
	"github.com/gofiber/fiber/v2"

	"trainerweb/internal/logging"
	"trainerweb/internal/model"
	"trainerweb/internal/ui"
)

func backToTrainings(c *fiber.Ctx, w *Workspace) error {
	w.settle(pageTrainings)
	return c.Redirect("/trainings", fiber.StatusSeeOther)
}

// TrainingsPage renders the training list, sorted and filtered by the query
// string. The list is fetched from the backend unless a form post just did.
func TrainingsPage(pages *ui.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		if !w.settled(pageTrainings) {
			_ = w.Trainings.Load(c.UserContext())
		}

		q := listQuery(c)
		state := w.Trainings.Snapshot()
		state.Trainings = q.Trainings(state.Trainings)

		return render(c, pages, fiber.StatusOK, ui.PageTrainings, ui.Page{
			Title:  "Trainings",
			Active: ui.PageTrainings,
			Data:   ui.TrainingsData{TrainingState: state, Query: q},
		})
	}
}

func OpenAddTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		w.Trainings.OpenAdd()
		return backToTrainings(c, w)
	}
}

func CancelAddTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		w.Trainings.CancelAdd()
		return backToTrainings(c, w)
	}
}

// CreateTraining submits the add form. Date and duration arrive as typed;
// the view converts them.
func CreateTraining(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		var d model.TrainingDraft
		if err := c.BodyParser(&d); err != nil {
			log.Error(c.UserContext(), "training_form_invalid", err, nil)
			return backToTrainings(c, w)
		}
		_ = w.Trainings.Create(c.UserContext(), d)
		return backToTrainings(c, w)
	}
}

func EditTraining(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		if id, ok := paramID(c, log); ok {
			if err := w.Trainings.BeginEdit(id); err != nil {
				log.Error(c.UserContext(), "training_edit_unknown", err, logging.Fields{"training_id": id})
			}
		}
		return backToTrainings(c, w)
	}
}

func CancelEditTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		w.Trainings.CancelEdit()
		return backToTrainings(c, w)
	}
}

// UpdateTraining submits the edit form for :id.
func UpdateTraining(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		id, ok := paramID(c, log)
		if !ok {
			return backToTrainings(c, w)
		}
		var e model.TrainingEdit
		if err := c.BodyParser(&e); err != nil {
			log.Error(c.UserContext(), "training_form_invalid", err, logging.Fields{"training_id": id})
			return backToTrainings(c, w)
		}
		e.ID = id
		_ = w.Trainings.Update(c.UserContext(), e)
		return backToTrainings(c, w)
	}
}

func RequestDeleteTraining(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		if id, ok := paramID(c, log); ok {
			w.Trainings.RequestDelete(id)
		}
		return backToTrainings(c, w)
	}
}

// ConfirmDeleteTraining deletes :id if it is the training the gate is open for.
func ConfirmDeleteTraining(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		if id, ok := paramID(c, log); ok {
			if err := w.Trainings.ConfirmDelete(c.UserContext(), id); refused(err) {
				log.Error(c.UserContext(), "training_delete_refused", err, logging.Fields{"training_id": id})
			}
		}
		return backToTrainings(c, w)
	}
}

func CancelDeleteTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		w.Trainings.CancelDelete()
		return backToTrainings(c, w)
	}
}
