package service

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"trainerweb/internal/model"
)

// ListQuery is a per-request sort and filter over a list snapshot. It is
// never stored: the next page load without it shows the list as fetched.
type ListQuery struct {
	Sort   string
	Desc   bool
	Filter string
}

// ParseListQuery reads sort, dir and q. An unknown sort key is kept but
// sorts nothing.
func ParseListQuery(sort, dir, q string) ListQuery {
	return ListQuery{
		Sort:   strings.ToLower(strings.TrimSpace(sort)),
		Desc:   strings.EqualFold(dir, "desc"),
		Filter: strings.TrimSpace(q),
	}
}

// SortLink is the href of a column header: it sorts by key, flipping the
// direction when key is already the sort column, and keeps the filter.
func (q ListQuery) SortLink(base, key string) string {
	v := url.Values{}
	v.Set("sort", key)
	if q.Sort == key && !q.Desc {
		v.Set("dir", "desc")
	} else {
		v.Set("dir", "asc")
	}
	if q.Filter != "" {
		v.Set("q", q.Filter)
	}
	return base + "?" + v.Encode()
}

// SortMark is the arrow shown next to the active column header.
func (q ListQuery) SortMark(key string) string {
	switch {
	case q.Sort != key:
		return ""
	case q.Desc:
		return "▼"
	default:
		return "▲"
	}
}

var customerColumns = map[string]func(model.Customer) string{
	"firstname":     func(c model.Customer) string { return c.FirstName },
	"lastname":      func(c model.Customer) string { return c.LastName },
	"streetaddress": func(c model.Customer) string { return c.StreetAddress },
	"postcode":      func(c model.Customer) string { return c.Postcode },
	"city":          func(c model.Customer) string { return c.City },
	"email":         func(c model.Customer) string { return c.Email },
	"phone":         func(c model.Customer) string { return c.Phone },
}

var trainingColumns = map[string]func(model.Training) string{
	"activity":      func(t model.Training) string { return t.Activity },
	"date":          func(t model.Training) string { return t.Date },
	"duration":      func(t model.Training) string { return strconv.Itoa(t.Duration) },
	"customername":  func(t model.Training) string { return t.CustomerName },
	"customeremail": func(t model.Training) string { return t.CustomerEmail },
}

// Customers filters rows on every data column, then sorts them. rows itself
// is left as is.
func (q ListQuery) Customers(rows []model.Customer) []model.Customer {
	rows = filterRows(rows, q.Filter, customerColumns)
	if col, ok := customerColumns[q.Sort]; ok {
		slices.SortStableFunc(rows, func(a, b model.Customer) int {
			return q.order(compareText(col(a), col(b)))
		})
	}
	return rows
}

// Trainings filters rows on every data column, then sorts them. Duration
// sorts numerically.
func (q ListQuery) Trainings(rows []model.Training) []model.Training {
	rows = filterRows(rows, q.Filter, trainingColumns)
	if q.Sort == "duration" {
		slices.SortStableFunc(rows, func(a, b model.Training) int {
			return q.order(cmp.Compare(a.Duration, b.Duration))
		})
	} else if col, ok := trainingColumns[q.Sort]; ok {
		slices.SortStableFunc(rows, func(a, b model.Training) int {
			return q.order(compareText(col(a), col(b)))
		})
	}
	return rows
}

func (q ListQuery) order(c int) int {
	if q.Desc {
		return -c
	}
	return c
}

func compareText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func filterRows[T any](rows []T, filter string, cols map[string]func(T) string) []T {
	if filter == "" {
		return slices.Clone(rows)
	}
	needle := strings.ToLower(filter)
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		for _, col := range cols {
			if strings.Contains(strings.ToLower(col(r)), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
