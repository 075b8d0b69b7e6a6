package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"trainerweb/internal/model"
	"trainerweb/internal/repository"
)

const customersPath = "/customers"

// CustomerREST is the backend implementation of repository.CustomerRepository.
type CustomerREST struct {
	client *Client
}

// NewCustomerREST creates a new CustomerREST repository.
func NewCustomerREST(c *Client) *CustomerREST {
	return &CustomerREST{client: c}
}

var _ repository.CustomerRepository = (*CustomerREST)(nil)

type customerCollection struct {
	Embedded *struct {
		Customers []customerResource `json:"customers"`
	} `json:"_embedded"`
}

type customerResource struct {
	model.CustomerFields
	Links struct {
		Self struct {
			Href string `json:"href"`
		} `json:"self"`
	} `json:"_links"`
}

// List fetches the whole collection and derives each id from its self link.
func (r *CustomerREST) List(ctx context.Context) ([]model.Customer, error) {
	var body customerCollection
	if err := r.client.do(ctx, "customers.list", http.MethodGet, customersPath, nil, &body); err != nil {
		return nil, err
	}
	if body.Embedded == nil {
		return nil, fmt.Errorf("GET %s: %w: missing _embedded", customersPath, repository.ErrMalformedResponse)
	}

	items := make([]model.Customer, 0, len(body.Embedded.Customers))
	for _, res := range body.Embedded.Customers {
		href := res.Links.Self.Href
		id, err := IDFromHref(href)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", customersPath, err)
		}
		c := model.Customer{ID: id, SelfHref: href}.WithFields(res.CustomerFields)
		items = append(items, c)
	}
	return items, nil
}

func (r *CustomerREST) Create(ctx context.Context, f model.CustomerFields) error {
	return r.client.do(ctx, "customers.create", http.MethodPost, customersPath, f, nil)
}

func (r *CustomerREST) Replace(ctx context.Context, id int64, f model.CustomerFields) error {
	return r.client.do(ctx, "customers.replace", http.MethodPut, customerPath(id), f, nil)
}

func (r *CustomerREST) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, "customers.delete", http.MethodDelete, customerPath(id), nil, nil)
}

func customerPath(id int64) string {
	return customersPath + "/" + strconv.FormatInt(id, 10)
}

// IDFromHref returns the numeric trailing path segment of a self link.
func IDFromHref(href string) (int64, error) {
	u, err := url.Parse(href)
	if err != nil {
		return 0, fmt.Errorf("%w: self link %q: %v", repository.ErrMalformedResponse, href, err)
	}
	seg := u.Path[strings.LastIndex(u.Path, "/")+1:]
	id, err := strconv.ParseInt(seg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: self link %q has no numeric id", repository.ErrMalformedResponse, href)
	}
	return id, nil
}
