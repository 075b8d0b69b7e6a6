package model

// Customer is a row of the customer list. ID is derived from SelfHref and
// always equals its trailing path segment.
type Customer struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstname"`
	LastName      string `json:"lastname"`
	StreetAddress string `json:"streetaddress"`
	Postcode      string `json:"postcode"`
	City          string `json:"city"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	SelfHref      string `json:"-"`
}

// CustomerFields are the editable customer fields. It is both the add/edit
// form shape and the create/replace request body.
type CustomerFields struct {
	FirstName     string `json:"firstname" form:"firstname"`
	LastName      string `json:"lastname" form:"lastname"`
	StreetAddress string `json:"streetaddress" form:"streetaddress"`
	Postcode      string `json:"postcode" form:"postcode"`
	City          string `json:"city" form:"city"`
	Email         string `json:"email" form:"email"`
	Phone         string `json:"phone" form:"phone"`
}

// Fields returns the editable part of c.
func (c Customer) Fields() CustomerFields {
	return CustomerFields{
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		StreetAddress: c.StreetAddress,
		Postcode:      c.Postcode,
		City:          c.City,
		Email:         c.Email,
		Phone:         c.Phone,
	}
}

// WithFields returns a copy of c with its editable fields replaced by f.
func (c Customer) WithFields(f CustomerFields) Customer {
	c.FirstName = f.FirstName
	c.LastName = f.LastName
	c.StreetAddress = f.StreetAddress
	c.Postcode = f.Postcode
	c.City = f.City
	c.Email = f.Email
	c.Phone = f.Phone
	return c
}

// CustomerRef references an existing customer by its link, as handed out by
// the backend. It is forwarded verbatim and never dereferenced here.
type CustomerRef string
