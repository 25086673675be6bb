package orm

import (
	"encoding/json"
	"time"

	"github.com/protheus-tools/revisor/lib/model"
)

type sqlConfig struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

type sqlRule struct {
	ID          string `gorm:"primaryKey"`
	Position    int
	Description string
	Severity    string
	Language    string
	Target      string
	Match       string
	Pattern     string
	IgnoreCase  bool
}

type sqlReviewRun struct {
	ID            string `gorm:"primaryKey"`
	Date          time.Time
	Branch        string
	CompareBranch string
	Ahead         int
	Behind        int
	Status        string
	ChangedFiles  string
	ConflictFiles string
}

type sqlViolation struct {
	ID          string `gorm:"primaryKey"`
	RunID       string `gorm:"index"`
	Position    int
	RuleID      string
	Description string
	Severity    string
	FilePath    string
	LegacyCount int
}

type sqlOccurrence struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ViolationID string `gorm:"index"`
	Position    int
	LineNumber  *int
	Text        string
	Annotation  string
	IsLegacy    bool
	LegacyNote  string
	Context     string
}

func toSqlRule(r *model.Rule) *sqlRule {
	return &sqlRule{
		ID:          r.ID,
		Position:    r.Position,
		Description: r.Description,
		Severity:    string(r.Severity),
		Language:    r.Language,
		Target:      string(r.Target),
		Match:       string(r.Match),
		Pattern:     r.Pattern,
		IgnoreCase:  r.IgnoreCase,
	}
}

func toModelRule(r *sqlRule) *model.Rule {
	return &model.Rule{
		ID:          r.ID,
		Position:    r.Position,
		Description: r.Description,
		Severity:    model.Severity(r.Severity),
		Language:    r.Language,
		Target:      model.RuleTarget(r.Target),
		Match:       model.MatchKind(r.Match),
		Pattern:     r.Pattern,
		IgnoreCase:  r.IgnoreCase,
	}
}

func toSqlRun(r *model.ReviewRun) *sqlReviewRun {
	return &sqlReviewRun{
		ID:            string(r.ID),
		Date:          r.Date,
		Branch:        r.Branch,
		CompareBranch: r.CompareBranch,
		Ahead:         r.Ahead,
		Behind:        r.Behind,
		Status:        string(r.Status),
		ChangedFiles:  encodeJson(r.ChangedFiles),
		ConflictFiles: encodeJson(r.ConflictFiles),
	}
}

func toModelRun(r *sqlReviewRun) *model.ReviewRun {
	return &model.ReviewRun{
		ID:            model.UUID(r.ID),
		Date:          r.Date,
		Branch:        r.Branch,
		CompareBranch: r.CompareBranch,
		Ahead:         r.Ahead,
		Behind:        r.Behind,
		Status:        model.ReviewStatus(r.Status),
		ChangedFiles:  decodeJson[[]string](r.ChangedFiles),
		ConflictFiles: decodeJson[[]string](r.ConflictFiles),
	}
}

func toSqlViolation(runID model.UUID, position int, v *model.Violation) *sqlViolation {
	return &sqlViolation{
		ID:          string(model.NewUUID("v")),
		RunID:       string(runID),
		Position:    position,
		RuleID:      v.RuleID,
		Description: v.Description,
		Severity:    string(v.Severity),
		FilePath:    v.FilePath,
		LegacyCount: v.LegacyCount,
	}
}

func toModelViolation(v *sqlViolation) *model.Violation {
	return &model.Violation{
		RuleID:      v.RuleID,
		Description: v.Description,
		Severity:    model.Severity(v.Severity),
		FilePath:    v.FilePath,
		LegacyCount: v.LegacyCount,
	}
}

func toSqlOccurrence(violationID string, position int, o *model.Occurrence) *sqlOccurrence {
	return &sqlOccurrence{
		ViolationID: violationID,
		Position:    position,
		LineNumber:  o.LineNumber,
		Text:        o.Text,
		Annotation:  o.Annotation,
		IsLegacy:    o.IsLegacy,
		LegacyNote:  o.LegacyNote,
		Context:     encodeJson(o.Context),
	}
}

func toModelOccurrence(o *sqlOccurrence) *model.Occurrence {
	return &model.Occurrence{
		LineNumber: o.LineNumber,
		Text:       o.Text,
		Annotation: o.Annotation,
		IsLegacy:   o.IsLegacy,
		LegacyNote: o.LegacyNote,
		Context:    decodeJson[[]model.DiffLine](o.Context),
	}
}

func encodeJson[T any](v T) string {
	result, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(result)
}

func decodeJson[T any](s string) T {
	var result T
	if s == "" {
		return result
	}
	err := json.Unmarshal([]byte(s), &result)
	if err != nil {
		panic(err)
	}
	return result
}
