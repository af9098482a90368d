package storage

import (
	"context"

	"github.com/sandeepkv93/studyflow/internal/model"
)

// EditLog adapts the repository to the editor's load-all/save-all store
// contract.
type EditLog struct {
	repo Repository
}

func NewEditLog(repo Repository) *EditLog {
	return &EditLog{repo: repo}
}

func (l *EditLog) Load() ([]model.SessionTimeEdit, error) {
	return l.repo.ListEdits(context.Background())
}

func (l *EditLog) Save(edits []model.SessionTimeEdit) error {
	return l.repo.ReplaceEdits(context.Background(), edits)
}
