package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trainerweb/internal/logging"
	"trainerweb/internal/model"
	"trainerweb/internal/repository/rest"
	"trainerweb/internal/service"
	serviceMocks "trainerweb/internal/service/mocks"
)

// mockWorkspaces hands the same mocks to every session.
func mockWorkspaces(customers service.CustomerView, trainings service.TrainingView) *Workspaces {
	return NewWorkspaces(
		func() service.CustomerView { return customers },
		func() service.TrainingView { return trainings },
		time.Hour,
	)
}

func newMockApp(t *testing.T, customers service.CustomerView, trainings service.TrainingView) *fiber.App {
	t.Helper()
	app := fiber.New()
	RegisterRoutes(app, Deps{
		Backend:    pingerFunc(func(context.Context) error { return nil }),
		Workspaces: mockWorkspaces(customers, trainings),
		Pages:      newPages(t),
		Log:        logging.Discard(),
	})
	return app
}

// browser replays the session cookie the way a real browser tab does.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	resp, err := b.app.Test(req)
	require.NoError(b.t, err)
	for _, ck := range resp.Cookies() {
		b.cookies[ck.Name] = ck
	}
	return resp
}

func (b *browser) get(target string) string {
	b.t.Helper()
	resp := b.do(httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(b.t, http.StatusOK, resp.StatusCode)
	return readBody(b.t, resp)
}

// submit posts a form, expects the 303 and follows it.
func (b *browser) submit(target string, values url.Values) string {
	b.t.Helper()
	resp := b.do(formRequest(target, values))
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
	return b.get(resp.Header.Get("Location"))
}

func TestCustomersPage(t *testing.T) {
	view := new(serviceMocks.MockCustomerView)
	app := newMockApp(t, view, new(serviceMocks.MockTrainingView))

	view.On("Load", mock.Anything).Return(errors.New("backend down")).Once()
	view.On("Snapshot").Return(service.CustomerState{
		Customers: []model.Customer{{ID: 7, FirstName: "Ada", LastName: "Lovelace"}},
	}).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/customers", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `<tr data-id="7">`)
	view.AssertExpectations(t)
}

func TestCustomersPage_SortAndFilter(t *testing.T) {
	view := new(serviceMocks.MockCustomerView)
	app := newMockApp(t, view, new(serviceMocks.MockTrainingView))
	b := newBrowser(t, app)

	rows := []model.Customer{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", City: "London"},
		{ID: 2, FirstName: "Alan", LastName: "Turing", City: "Manchester"},
		{ID: 3, FirstName: "Grace", LastName: "Hopper", City: "New York"},
	}
	view.On("Load", mock.Anything).Return(nil)
	view.On("Snapshot").Return(service.CustomerState{Customers: rows})

	body := b.get("/customers?sort=lastname&dir=desc&q=l")
	assert.NotContains(t, body, `<tr data-id="3">`)
	require.Contains(t, body, `<tr data-id="1">`)
	require.Contains(t, body, `<tr data-id="2">`)
	assert.Less(t, strings.Index(body, `<tr data-id="2">`), strings.Index(body, `<tr data-id="1">`))
	assert.Contains(t, body, `name="q" value="l"`)

	body = b.get("/customers")
	assert.Less(t, strings.Index(body, `<tr data-id="1">`), strings.Index(body, `<tr data-id="2">`))
	assert.Less(t, strings.Index(body, `<tr data-id="2">`), strings.Index(body, `<tr data-id="3">`))
	assert.Contains(t, body, `name="q" value=""`)
}

func TestCreateCustomer_RedirectsWithoutSecondReload(t *testing.T) {
	view := new(serviceMocks.MockCustomerView)
	app := newMockApp(t, view, new(serviceMocks.MockTrainingView))
	b := newBrowser(t, app)

	want := model.CustomerFields{
		FirstName: "Ada", LastName: "Lovelace", StreetAddress: "1 Analytical St",
		Postcode: "00100", City: "London", Email: "ada@example.com", Phone: "555",
	}
	view.On("Create", mock.Anything, want).Return(nil).Once()
	view.On("Snapshot").Return(service.CustomerState{})

	resp := b.do(formRequest("/customers", url.Values{
		"firstname":     {"Ada"},
		"lastname":      {"Lovelace"},
		"streetaddress": {"1 Analytical St"},
		"postcode":      {"00100"},
		"city":          {"London"},
		"email":         {"ada@example.com"},
		"phone":         {"555"},
	}))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/customers", resp.Header.Get("Location"))

	b.get("/customers")
	view.AssertNotCalled(t, "Load", mock.Anything)

	view.On("Load", mock.Anything).Return(nil).Once()
	b.get("/customers")
	view.AssertExpectations(t)
}

func TestCustomerIDRoutes(t *testing.T) {
	view := new(serviceMocks.MockCustomerView)
	app := newMockApp(t, view, new(serviceMocks.MockTrainingView))

	post := func(target string, values url.Values) {
		t.Helper()
		resp, err := app.Test(formRequest(target, values))
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/customers", resp.Header.Get("Location"))
	}

	t.Run("edit", func(t *testing.T) {
		view.On("BeginEdit", int64(7)).Return(nil).Once()
		post("/customers/7/edit", nil)
	})

	t.Run("update", func(t *testing.T) {
		view.On("Update", mock.Anything, int64(7), model.CustomerFields{FirstName: "Augusta"}).Return(nil).Once()
		post("/customers/7", url.Values{"firstname": {"Augusta"}})
	})

	t.Run("request delete", func(t *testing.T) {
		view.On("RequestDelete", int64(7)).Once()
		post("/customers/7/delete", nil)
	})

	t.Run("confirm carries the id", func(t *testing.T) {
		view.On("ConfirmDelete", mock.Anything, int64(7)).Return(nil).Once()
		post("/customers/7/delete/confirm", nil)
	})

	t.Run("non-numeric id leaves the view alone", func(t *testing.T) {
		post("/customers/abc/delete", nil)
		post("/customers/abc/delete/confirm", nil)
	})

	t.Run("static paths are not ids", func(t *testing.T) {
		view.On("OpenAdd").Once()
		view.On("CancelDelete").Once()
		post("/customers/add", nil)
		post("/customers/delete/cancel", nil)
	})

	view.AssertExpectations(t)
	view.AssertNumberOfCalls(t, "Update", 1)
	view.AssertNumberOfCalls(t, "RequestDelete", 1)
	view.AssertNumberOfCalls(t, "ConfirmDelete", 1)
}

func TestUpdateTraining(t *testing.T) {
	view := new(serviceMocks.MockTrainingView)
	app := newMockApp(t, new(serviceMocks.MockCustomerView), view)

	want := model.TrainingEdit{ID: 3, Date: "2024-03-01T10:30", Activity: "Spinning", Duration: "45"}
	view.On("Update", mock.Anything, want).Return(nil).Once()

	resp, err := app.Test(formRequest("/trainings/3", url.Values{
		"date":     {"2024-03-01T10:30"},
		"activity": {"Spinning"},
		"duration": {"45"},
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/trainings", resp.Header.Get("Location"))
	view.AssertExpectations(t)
}

func TestTrainingsPage_SortByDuration(t *testing.T) {
	view := new(serviceMocks.MockTrainingView)
	app := newMockApp(t, new(serviceMocks.MockCustomerView), view)

	view.On("Load", mock.Anything).Return(nil).Once()
	view.On("Snapshot").Return(service.TrainingState{Trainings: []model.Training{
		{ID: 1, Activity: "Spinning", Duration: 100},
		{ID: 2, Activity: "Zumba", Duration: 9},
	}}).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/trainings?sort=duration", nil))
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Less(t, strings.Index(body, `<tr data-id="2">`), strings.Index(body, `<tr data-id="1">`))
	view.AssertExpectations(t)
}

// customerBackend is an in-memory stand-in for the customer REST service.
type customerBackend struct {
	mu           sync.Mutex
	nextID       int64
	customers    map[int64]model.CustomerFields
	order        []int64
	deleteStatus int
	requests     []string
}

func newCustomerBackend(rows ...model.CustomerFields) *customerBackend {
	b := &customerBackend{nextID: 1, customers: map[int64]model.CustomerFields{}, deleteStatus: http.StatusNoContent}
	for _, f := range rows {
		b.add(f)
	}
	return b
}

func (b *customerBackend) add(f model.CustomerFields) {
	id := b.nextID
	b.nextID++
	b.customers[id] = f
	b.order = append(b.order, id)
}

func (b *customerBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/customers":
		type link struct {
			Href string `json:"href"`
		}
		type row struct {
			model.CustomerFields
			Links map[string]link `json:"_links"`
		}
		rows := []row{}
		for _, id := range b.order {
			href := fmt.Sprintf("http://%s/api/customers/%d", r.Host, id)
			rows = append(rows, row{CustomerFields: b.customers[id], Links: map[string]link{"self": {Href: href}}})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"_embedded": map[string]any{"customers": rows}})
	case r.Method == http.MethodPost && r.URL.Path == "/api/customers":
		var f model.CustomerFields
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.add(f)
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/customers/"):
		if b.deleteStatus < 300 {
			id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/customers/"), 10, 64)
			delete(b.customers, id)
			b.order = without(b.order, id)
		}
		w.WriteHeader(b.deleteStatus)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func without(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (b *customerBackend) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func newBackendApp(t *testing.T, backend http.Handler) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := rest.NewClient(srv.URL + "/api")
	require.NoError(t, err)

	log := logging.Discard()
	pages := newPages(t)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(pages)})
	RegisterRoutes(app, Deps{
		Backend: client,
		Workspaces: NewWorkspaces(
			func() service.CustomerView { return service.NewCustomerView(rest.NewCustomerREST(client), log) },
			func() service.TrainingView { return service.NewTrainingView(rest.NewTrainingREST(client), log, time.UTC) },
			time.Hour,
		),
		Pages: pages,
		Log:   log,
	})
	return app
}

func TestCustomerFlow_CreateReloadsOnceAndClearsForm(t *testing.T) {
	backend := newCustomerBackend()
	b := newBrowser(t, newBackendApp(t, backend))

	body := b.submit("/customers/add", nil)
	assert.Contains(t, body, `id="add-customer"`)

	body = b.submit("/customers", url.Values{
		"firstname": {"Ada"},
		"lastname":  {"Lovelace"},
		"email":     {"ada@example.com"},
	})

	assert.Equal(t, []string{"POST /api/customers", "GET /api/customers"}, backend.seen())
	assert.Contains(t, body, `<tr data-id="1">`)
	assert.Contains(t, body, "<td>Lovelace</td>")
	assert.NotContains(t, body, `id="add-customer"`)

	body = b.submit("/customers/add", nil)
	assert.Contains(t, body, `name="firstname" value=""`)
}

func TestCustomerFlow_FailedDeleteKeepsRow(t *testing.T) {
	backend := newCustomerBackend(model.CustomerFields{FirstName: "Ada", LastName: "Lovelace"})
	backend.deleteStatus = http.StatusInternalServerError
	b := newBrowser(t, newBackendApp(t, backend))

	require.Contains(t, b.get("/customers"), `<tr data-id="1">`)

	body := b.submit("/customers/1/delete", nil)
	assert.Contains(t, body, `action="/customers/1/delete/confirm"`)
	assert.Contains(t, body, "This will also delete their trainings.")

	body = b.submit("/customers/1/delete/confirm", nil)

	assert.Contains(t, body, `<tr data-id="1">`)
	assert.NotContains(t, body, `id="confirm-delete"`)
	assert.Equal(t, []string{"GET /api/customers", "DELETE /api/customers/1"}, backend.seen())
}

func TestCustomerFlow_CancelledDeleteSendsNothing(t *testing.T) {
	backend := newCustomerBackend(model.CustomerFields{FirstName: "Ada"})
	b := newBrowser(t, newBackendApp(t, backend))

	b.get("/customers")
	b.submit("/customers/1/delete", nil)
	body := b.submit("/customers/delete/cancel", nil)

	assert.Contains(t, body, `<tr data-id="1">`)
	assert.NotContains(t, body, `id="confirm-delete"`)
	assert.Equal(t, []string{"GET /api/customers"}, backend.seen())
}

func TestCustomerFlow_SessionsHaveTheirOwnDeleteGate(t *testing.T) {
	backend := newCustomerBackend(
		model.CustomerFields{FirstName: "Ada"},
		model.CustomerFields{FirstName: "Alan"},
	)
	app := newBackendApp(t, backend)
	first, second := newBrowser(t, app), newBrowser(t, app)

	first.get("/customers")
	first.submit("/customers/1/delete", nil)
	second.get("/customers")
	second.submit("/customers/2/delete", nil)

	body := first.submit("/customers/1/delete/confirm", nil)

	assert.Equal(t, []string{
		"GET /api/customers",
		"GET /api/customers",
		"DELETE /api/customers/1",
		"GET /api/customers",
	}, backend.seen())
	assert.NotContains(t, body, `<tr data-id="1">`)
	assert.Contains(t, body, `<tr data-id="2">`)

	body = second.submit("/customers/delete/cancel", nil)
	assert.NotContains(t, body, `id="confirm-delete"`)
}

func TestCustomerFlow_StaleConfirmIsRefused(t *testing.T) {
	backend := newCustomerBackend(
		model.CustomerFields{FirstName: "Ada"},
		model.CustomerFields{FirstName: "Alan"},
	)
	b := newBrowser(t, newBackendApp(t, backend))

	b.get("/customers")
	b.submit("/customers/1/delete", nil)
	b.submit("/customers/2/delete", nil)

	body := b.submit("/customers/1/delete/confirm", nil)

	assert.Equal(t, []string{"GET /api/customers"}, backend.seen())
	assert.Contains(t, body, `action="/customers/2/delete/confirm"`)
	assert.Contains(t, body, `<tr data-id="1">`)
}

func TestCustomerFlow_DraftsStayInTheirSession(t *testing.T) {
	backend := newCustomerBackend()
	app := newBackendApp(t, backend)
	first, second := newBrowser(t, app), newBrowser(t, app)

	assert.Contains(t, first.submit("/customers/add", nil), `id="add-customer"`)
	assert.NotContains(t, second.get("/customers"), `id="add-customer"`)
}

func TestTrainingFlow_CreateConvertsFormValues(t *testing.T) {
	var (
		mu     sync.Mutex
		posted map[string]any
	)
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/trainings":
			mu.Lock()
			_ = json.NewDecoder(r.Body).Decode(&posted)
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
		case "GET /api/gettrainings":
			_, _ = io.WriteString(w, `[{"id":5,"date":"2024-03-01T10:30:00.000Z","duration":45,"activity":"Spinning",
				"customer":{"firstname":"Ada","lastname":"Lovelace","email":"ada@example.com"}}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	link := "http://backend.example/api/customers/7"
	b := newBrowser(t, newBackendApp(t, backend))

	body := b.submit("/trainings", url.Values{
		"date":     {"2024-03-01T10:30"},
		"activity": {"Spinning"},
		"duration": {"45"},
		"customer": {link},
	})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "2024-03-01T10:30:00.000Z", posted["date"])
	assert.Equal(t, float64(45), posted["duration"])
	assert.Equal(t, link, posted["customer"])
	assert.Contains(t, body, `<tr data-id="5">`)
	assert.Contains(t, body, "Ada Lovelace")
}
