package model

// Training is a row of the training list with the owning customer's name and
// email denormalized for display.
type Training struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"`
	Duration      int    `json:"duration"`
	Activity      string `json:"activity"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// TrainingDraft is the add-training form as typed by the user: Date is a
// datetime-local value and Duration is free text.
type TrainingDraft struct {
	Date         string `form:"date"`
	Activity     string `form:"activity"`
	Duration     string `form:"duration"`
	CustomerLink string `form:"customer"`
}

// TrainingEdit is the edit-training dialog. The owning customer is not part
// of it: the association cannot change after creation.
type TrainingEdit struct {
	ID       int64  `form:"-"`
	Date     string `form:"date"`
	Activity string `form:"activity"`
	Duration string `form:"duration"`
}

// NewTraining is the create request body.
type NewTraining struct {
	Date     string      `json:"date"`
	Activity string      `json:"activity"`
	Duration int         `json:"duration"`
	Customer CustomerRef `json:"customer"`
}

// TrainingUpdate is the replace request body.
type TrainingUpdate struct {
	Date     string `json:"date"`
	Activity string `json:"activity"`
	Duration int    `json:"duration"`
}
