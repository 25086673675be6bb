package storages

import (
	"github.com/protheus-tools/revisor/lib/model"
)

type Storage interface {
	LoadRules() ([]*model.Rule, error)
	WriteRules(rules []*model.Rule) error

	LoadRuns() ([]*model.ReviewRun, error)
	LoadRun(id model.UUID) (*model.ReviewRun, error)
	WriteRun(run *model.ReviewRun) error

	LoadConfig() (*map[string]string, error)
	WriteConfig(*map[string]string) error

	Close() error
}
