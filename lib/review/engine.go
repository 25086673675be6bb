// Package review evaluates the rule list against parsed diff data,
// suppressing matches on legacy code, and annotates the resulting
// violations with nearby diff context.
package review

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/protheus-tools/revisor/lib/advpl"
	"github.com/protheus-tools/revisor/lib/consoles"
	"github.com/protheus-tools/revisor/lib/legacy"
	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/utils"
)

// Rule IDs carrying bespoke evaluation logic. Everything else goes through
// the generic matcher.
const (
	RuleDocRequirement  = "Normativa 3.1"
	RuleDummyEntryPoint = "Normativa 3.19"
	RuleRestrictedScope = "Normativa 3.21-2"
	RuleLongIdentifier  = "Normativa 3.23"
)

// BaselineFunc returns the file content at the comparison revision, or ""
// if the file does not exist there.
type BaselineFunc func(path string) (string, error)

type Options struct {
	DocLookback      int
	MinIdentifierLen int
	ShowProgress     bool
}

type Engine struct {
	console     consoles.Console
	rules       []*model.Rule
	baseline    BaselineFunc
	opts        Options
	identifiers *advpl.IdentifierScanner
}

func NewEngine(console consoles.Console, rules []*model.Rule, baseline BaselineFunc, opts *Options) *Engine {
	if opts == nil {
		opts = &Options{}
	}
	if opts.DocLookback == 0 {
		opts.DocLookback = 40
	}
	if opts.MinIdentifierLen == 0 {
		opts.MinIdentifierLen = 11
	}

	return &Engine{
		console:     console,
		rules:       rules,
		baseline:    baseline,
		opts:        *opts,
		identifiers: advpl.NewIdentifierScanner(opts.MinIdentifierLen),
	}
}

type ruleBehavior int

const (
	behaviorGeneric ruleBehavior = iota
	behaviorDocRequirement
	behaviorDummyEntryPoint
	behaviorRestrictedScope
	behaviorLongIdentifier
)

func behaviorFor(id string) ruleBehavior {
	switch id {
	case RuleDocRequirement:
		return behaviorDocRequirement
	case RuleDummyEntryPoint:
		return behaviorDummyEntryPoint
	case RuleRestrictedScope:
		return behaviorRestrictedScope
	case RuleLongIdentifier:
		return behaviorLongIdentifier
	default:
		return behaviorGeneric
	}
}

// Evaluate applies every applicable rule to every changed file, in path
// order, and returns the violations with at least one non-legacy
// occurrence.
func (e *Engine) Evaluate(files map[string]*model.FileChangeSet) []*model.Violation {
	var result []*model.Violation

	paths := maps.Keys(files)
	slices.Sort(paths)

	var bar *progressbar.ProgressBar
	if e.opts.ShowProgress {
		bar = utils.NewProgressBar(len(paths))
	}

	for _, path := range paths {
		if bar != nil {
			bar.Describe(path)
			_ = bar.Add(1)
		}

		e.console.PushPrefix("%v: ", path)

		fs := &fileState{engine: e, changes: files[path]}
		isAdvpl := advpl.IsSource(path)

		for _, rule := range e.rules {
			if rule.Disabled {
				continue
			}
			if rule.Language == "advpl" && !isAdvpl {
				continue
			}

			var v *model.Violation
			switch behaviorFor(rule.ID) {
			case behaviorDocRequirement:
				v = e.evalDocRequirement(rule, fs)
			case behaviorDummyEntryPoint:
				v = e.evalDummyEntryPoint(rule, fs)
			case behaviorRestrictedScope:
				v = e.evalRestrictedScope(rule, fs)
			case behaviorLongIdentifier:
				v = e.evalLongIdentifier(rule, fs)
			case behaviorGeneric:
				v = e.evalGeneric(rule, fs)
			}

			if v != nil {
				result = append(result, v)
			}
		}

		e.console.PopPrefix()
	}

	return result
}

// fileState carries the per-file data shared by all rules, including the
// lazily built legacy classifier. The baseline is only fetched the first
// time a rule actually needs legacy classification for this file.
type fileState struct {
	engine     *Engine
	changes    *model.FileChangeSet
	classifier *legacy.Classifier
}

func (f *fileState) legacyClassifier() *legacy.Classifier {
	if f.classifier == nil {
		content := ""
		if f.engine.baseline != nil {
			var err error
			content, err = f.engine.baseline(f.changes.Path)
			if err != nil {
				f.engine.console.Warnf("baseline content unavailable, matches will not be suppressed as legacy: %v\n", err)
				content = ""
			}
		}

		f.classifier = legacy.NewClassifier(legacy.RemovedSet(f.changes), legacy.NewBaselineIndex(content))
	}

	return f.classifier
}

// Every added routine or type declaration must have a protheus.doc block
// within the lookback window. The scan covers the full per-file line
// sequence, so an existing unchanged doc block nearby satisfies the rule.
// No legacy exception: a new declaration without docs is always flagged.
func (e *Engine) evalDocRequirement(rule *model.Rule, fs *fileState) *model.Violation {
	var occurrences []*model.Occurrence

	for _, line := range fs.changes.Added {
		routine := advpl.ExtractRoutine(line.Text)
		if routine == nil {
			continue
		}

		if e.hasDocNear(fs.changes.All, line.Number) {
			continue
		}

		occ := model.NewLineOccurrence(line.Number, line.Text)
		occ.Annotation = fmt.Sprintf("%v '%v' has no protheus.doc block", routine.Kind, routine.Name)
		occurrences = append(occurrences, occ)
	}

	return buildViolation(rule, fs.changes.Path, occurrences)
}

func (e *Engine) hasDocNear(all []model.DiffLine, lineNumber int) bool {
	for _, l := range all {
		if lineNumber-e.opts.DocLookback <= l.Number && l.Number <= lineNumber && advpl.HasDocMarker(l.Text) {
			return true
		}
	}
	return false
}

// File-scoped: a file that gains a class declaration must also declare a
// User Function entry point somewhere in its added lines.
func (e *Engine) evalDummyEntryPoint(rule *model.Rule, fs *fileState) *model.Violation {
	hasClass := lo.SomeBy(fs.changes.Added, func(l model.DiffLine) bool {
		return advpl.DeclaresClass(l.Text)
	})
	if !hasClass {
		return nil
	}

	hasEntryPoint := lo.SomeBy(fs.changes.Added, func(l model.DiffLine) bool {
		return advpl.DeclaresUserFunction(l.Text)
	})
	if hasEntryPoint {
		return nil
	}

	occ := model.NewFileOccurrence("(entire file)")
	occ.Annotation = "File declares a Class but no User Function entry point"

	return buildViolation(rule, fs.changes.Path, []*model.Occurrence{occ})
}

// Static variable declarations at file scope, distinguished from Static
// Function declarations, which are always exempt.
func (e *Engine) evalRestrictedScope(rule *model.Rule, fs *fileState) *model.Violation {
	var occurrences []*model.Occurrence

	for _, line := range fs.changes.Added {
		if !advpl.IsStaticVariableDecl(line.Text) {
			continue
		}

		occ := model.NewLineOccurrence(line.Number, line.Text)
		occ.IsLegacy = fs.legacyClassifier().IsLegacyLine(line.Text)
		occurrences = append(occurrences, occ)
	}

	return buildViolation(rule, fs.changes.Path, occurrences)
}

// Declared identifiers over the length threshold. A match is legacy if the
// whole line predates the change set or if the bare name already appears
// in the baseline file, even under different surrounding text.
func (e *Engine) evalLongIdentifier(rule *model.Rule, fs *fileState) *model.Violation {
	var occurrences []*model.Occurrence

	for _, line := range fs.changes.Added {
		for _, name := range e.identifiers.Find(line.Text) {
			occ := model.NewLineOccurrence(line.Number, line.Text)
			occ.Annotation = fmt.Sprintf("Identifier '%v' has %v characters", name, len(name))

			classifier := fs.legacyClassifier()
			occ.IsLegacy = classifier.IsLegacyLine(line.Text) || classifier.IsLegacyIdentifier(name)

			occurrences = append(occurrences, occ)
		}
	}

	return buildViolation(rule, fs.changes.Path, occurrences)
}

func (e *Engine) evalGeneric(rule *model.Rule, fs *fileState) *model.Violation {
	target := fs.changes.Added
	if rule.Target == model.TargetRemoved {
		target = fs.changes.Removed
	}

	var occurrences []*model.Occurrence

	for _, line := range target {
		if rule.Language != "advpl" && advpl.DetectLanguage(line.Text) != rule.Language {
			continue
		}

		if !rule.Matches(line.Text) {
			continue
		}

		occ := model.NewLineOccurrence(line.Number, line.Text)
		if rule.Target != model.TargetRemoved {
			occ.IsLegacy = fs.legacyClassifier().IsLegacyLine(line.Text)
		}
		occurrences = append(occurrences, occ)
	}

	return buildViolation(rule, fs.changes.Path, occurrences)
}

// buildViolation reports only the non-legacy occurrences; rule/file pairs
// where every match is legacy produce no violation. The suppressed count
// stays on the violation for informational display.
func buildViolation(rule *model.Rule, path string, occurrences []*model.Occurrence) *model.Violation {
	active := lo.Filter(occurrences, func(o *model.Occurrence, _ int) bool {
		return !o.IsLegacy
	})

	if len(active) == 0 {
		return nil
	}

	return &model.Violation{
		RuleID:      rule.ID,
		Description: rule.Description,
		Severity:    rule.Severity,
		FilePath:    path,
		Occurrences: active,
		LegacyCount: len(occurrences) - len(active),
	}
}
