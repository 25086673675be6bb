package orm

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/protheus-tools/revisor/lib/consoles"
	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/storages"
)

type gormStorage struct {
	mutex   sync.RWMutex
	db      *gorm.DB
	console consoles.Console
}

func NewGormStorage(d gorm.Dialector, console consoles.Console) (storages.Storage, error) {
	l := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		Logger: l,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&sqlConfig{},
		&sqlRule{},
		&sqlReviewRun{},
		&sqlViolation{},
		&sqlOccurrence{},
	)
	if err != nil {
		return nil, err
	}

	return &gormStorage{
		db:      db,
		console: console,
	}, nil
}

func (s *gormStorage) LoadRules() ([]*model.Rule, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var rows []*sqlRule
	err := s.db.Order("position").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(r *sqlRule, _ int) *model.Rule {
		return toModelRule(r)
	}), nil
}

func (s *gormStorage) WriteRules(rules []*model.Rule) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("1 = 1").Delete(&sqlRule{}).Error
		if err != nil {
			return err
		}

		for _, rule := range rules {
			err = tx.Create(toSqlRule(rule)).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *gormStorage) LoadRuns() ([]*model.ReviewRun, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var rows []*sqlReviewRun
	err := s.db.Order("date desc").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(r *sqlReviewRun, _ int) *model.ReviewRun {
		return toModelRun(r)
	}), nil
}

func (s *gormStorage) LoadRun(id model.UUID) (*model.ReviewRun, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var row sqlReviewRun
	err := s.db.First(&row, "id = ?", string(id)).Error
	if err != nil {
		return nil, errors.Wrapf(err, "error loading review run %v", id)
	}

	result := toModelRun(&row)

	var violations []*sqlViolation
	err = s.db.Order("position").Find(&violations, "run_id = ?", row.ID).Error
	if err != nil {
		return nil, err
	}

	for _, sv := range violations {
		v := toModelViolation(sv)

		var occurrences []*sqlOccurrence
		err = s.db.Order("position").Find(&occurrences, "violation_id = ?", sv.ID).Error
		if err != nil {
			return nil, err
		}

		v.Occurrences = lo.Map(occurrences, func(o *sqlOccurrence, _ int) *model.Occurrence {
			return toModelOccurrence(o)
		})

		result.Violations = append(result.Violations, v)
	}

	return result, nil
}

func (s *gormStorage) WriteRun(run *model.ReviewRun) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(toSqlRun(run)).Error
		if err != nil {
			return err
		}

		for vi, v := range run.Violations {
			sv := toSqlViolation(run.ID, vi, v)

			err = tx.Create(sv).Error
			if err != nil {
				return err
			}

			for oi, o := range v.Occurrences {
				err = tx.Create(toSqlOccurrence(sv.ID, oi, o)).Error
				if err != nil {
					return err
				}
			}
		}

		return nil
	})
}

func (s *gormStorage) LoadConfig() (*map[string]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var rows []*sqlConfig
	err := s.db.Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := map[string]string{}
	for _, row := range rows {
		result[row.Key] = row.Value
	}

	return &result, nil
}

func (s *gormStorage) WriteConfig(config *map[string]string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range *config {
			err := tx.Save(&sqlConfig{Key: key, Value: value}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *gormStorage) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
