package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"trainerweb/internal/model"
	"trainerweb/internal/repository"
)

const (
	trainingsPath     = "/trainings"
	trainingsListPath = "/gettrainings"
)

// TrainingREST is the backend implementation of repository.TrainingRepository.
type TrainingREST struct {
	client *Client
}

// NewTrainingREST creates a new TrainingREST repository.
func NewTrainingREST(c *Client) *TrainingREST {
	return &TrainingREST{client: c}
}

var _ repository.TrainingRepository = (*TrainingREST)(nil)

type trainingResource struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Activity string `json:"activity"`
	Customer *struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Email     string `json:"email"`
	} `json:"customer"`
}

// List fetches every training with its customer embedded. A training without
// a customer gets empty customer columns.
func (r *TrainingREST) List(ctx context.Context) ([]model.Training, error) {
	var body []trainingResource
	if err := r.client.do(ctx, "trainings.list", http.MethodGet, trainingsListPath, nil, &body); err != nil {
		return nil, err
	}

	items := make([]model.Training, 0, len(body))
	for _, res := range body {
		t := model.Training{
			ID:       res.ID,
			Date:     res.Date,
			Duration: res.Duration,
			Activity: res.Activity,
		}
		if res.Customer != nil {
			t.CustomerName = strings.TrimSpace(res.Customer.FirstName + " " + res.Customer.LastName)
			t.CustomerEmail = res.Customer.Email
		}
		items = append(items, t)
	}
	return items, nil
}

func (r *TrainingREST) Create(ctx context.Context, t model.NewTraining) error {
	return r.client.do(ctx, "trainings.create", http.MethodPost, trainingsPath, t, nil)
}

func (r *TrainingREST) Replace(ctx context.Context, id int64, t model.TrainingUpdate) error {
	return r.client.do(ctx, "trainings.replace", http.MethodPut, trainingPath(id), t, nil)
}

func (r *TrainingREST) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, "trainings.delete", http.MethodDelete, trainingPath(id), nil, nil)
}

func trainingPath(id int64) string {
	return trainingsPath + "/" + strconv.FormatInt(id, 10)
}
