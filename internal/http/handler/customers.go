package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"trainerweb/internal/logging"
	"trainerweb/internal/model"
	"trainerweb/internal/service"
	"trainerweb/internal/ui"
)

// Form posts act on the session's view and answer 303 to the page, which
// renders the view as the post left it. View failures are logged by the view
// and only show up as unchanged state.

// paramID parses the :id route parameter. A bad id is logged and reported
// as ok=false; the caller then leaves the view untouched.
func paramID(c *fiber.Ctx, log *logging.Logger) (int64, bool) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Error(c.UserContext(), "invalid_id", err, logging.Fields{"path": c.Path(), "id": raw})
		return 0, false
	}
	return id, true
}

// listQuery reads the sort and filter query parameters.
func listQuery(c *fiber.Ctx) service.ListQuery {
	return service.ParseListQuery(c.Query("sort"), c.Query("dir"), c.Query("q"))
}

// refused reports a confirm the gate turned down. Backend failures are
// logged by the view itself.
func refused(err error) bool {
	return errors.Is(err, service.ErrNoPendingDelete) || errors.Is(err, service.ErrDeleteMismatch)
}

func backToCustomers(c *fiber.Ctx, w *Workspace) error {
	w.settle(pageCustomers)
	return c.Redirect("/customers", fiber.StatusSeeOther)
}

// CustomersPage renders the customer list, sorted and filtered by the query
// string. The list is fetched from the backend unless a form post just did.
func CustomersPage(pages *ui.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		if !w.settled(pageCustomers) {
			_ = w.Customers.Load(c.UserContext())
		}

		q := listQuery(c)
		state := w.Customers.Snapshot()
		state.Customers = q.Customers(state.Customers)

		return render(c, pages, fiber.StatusOK, ui.PageCustomers, ui.Page{
			Title:  "Customers",
			Active: ui.PageCustomers,
			Data:   ui.CustomersData{CustomerState: state, Query: q},
		})
	}
}

func OpenAddCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		w.Customers.OpenAdd()
		return backToCustomers(c, w)
	}
}

func CancelAddCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		w.Customers.CancelAdd()
		return backToCustomers(c, w)
	}
}

// CreateCustomer submits the add form.
func CreateCustomer(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		var f model.CustomerFields
		if err := c.BodyParser(&f); err != nil {
			log.Error(c.UserContext(), "customer_form_invalid", err, nil)
			return backToCustomers(c, w)
		}
		_ = w.Customers.Create(c.UserContext(), f)
		return backToCustomers(c, w)
	}
}

func EditCustomer(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		if id, ok := paramID(c, log); ok {
			if err := w.Customers.BeginEdit(id); err != nil {
				log.Error(c.UserContext(), "customer_edit_unknown", err, logging.Fields{"customer_id": id})
			}
		}
		return backToCustomers(c, w)
	}
}

func CancelEditCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		w.Customers.CancelEdit()
		return backToCustomers(c, w)
	}
}

// UpdateCustomer submits the edit form for :id.
func UpdateCustomer(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		id, ok := paramID(c, log)
		if !ok {
			return backToCustomers(c, w)
		}
		var f model.CustomerFields
		if err := c.BodyParser(&f); err != nil {
			log.Error(c.UserContext(), "customer_form_invalid", err, logging.Fields{"customer_id": id})
			return backToCustomers(c, w)
		}
		_ = w.Customers.Update(c.UserContext(), id, f)
		return backToCustomers(c, w)
	}
}

// RequestDeleteCustomer opens the confirmation gate; nothing is deleted yet.
func RequestDeleteCustomer(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		if id, ok := paramID(c, log); ok {
			w.Customers.RequestDelete(id)
		}
		return backToCustomers(c, w)
	}
}

// ConfirmDeleteCustomer deletes :id if it is the customer the gate is open for.
func ConfirmDeleteCustomer(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		if id, ok := paramID(c, log); ok {
			if err := w.Customers.ConfirmDelete(c.UserContext(), id); refused(err) {
				log.Error(c.UserContext(), "customer_delete_refused", err, logging.Fields{"customer_id": id})
			}
		}
		return backToCustomers(c, w)
	}
}

func CancelDeleteCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := workspaceFrom(c)
		w.Customers.CancelDelete()
		return backToCustomers(c, w)
	}
}
