package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/studyflow/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type TaskListFilter struct {
	Important *bool
	Limit     int
	Offset    int
}

type CommitmentListFilter struct {
	Type   model.CommitmentType
	Limit  int
	Offset int
}

type Repository interface {
	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)

	CreateCommitment(ctx context.Context, in model.FixedCommitment) error
	GetCommitment(ctx context.Context, id string) (model.FixedCommitment, error)
	UpdateCommitment(ctx context.Context, in model.FixedCommitment) error
	DeleteCommitment(ctx context.Context, id string) error
	ListCommitments(ctx context.Context, filter CommitmentListFilter) ([]model.FixedCommitment, error)

	ListEdits(ctx context.Context) ([]model.SessionTimeEdit, error)
	ReplaceEdits(ctx context.Context, edits []model.SessionTimeEdit) error
}
