// Package server exposes persisted review runs as JSON, for whatever
// renders the report. It owns no presentation: only the violation data.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/protheus-tools/revisor/lib/consoles"
	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/storages"
)

type Options struct {
	Port uint
}

func Run(console consoles.Console, storage storages.Storage, opts *Options) error {
	s := newServer(storage, opts)

	console.Printf("Starting results server on port %v...\n", s.opts.Port)

	return s.run()
}

type server struct {
	opts    *Options
	storage storages.Storage
}

func newServer(storage storages.Storage, opts *Options) *server {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Port == 0 {
		opts.Port = 2431
	}

	return &server{
		opts:    opts,
		storage: storage,
	}
}

func (s *server) run() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/api/rules", s.getRules)
	r.GET("/api/runs", s.getRuns)
	r.GET("/api/runs/:id", s.getRun)
	r.GET("/api/runs/:id/summary", s.getRunSummary)

	return r.Run(fmt.Sprintf(":%v", s.opts.Port))
}

func sendError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *server) getRules(c *gin.Context) {
	rules, err := s.storage.LoadRules()
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(rules, func(r *model.Rule, _ int) gin.H {
		return gin.H{
			"id":          r.ID,
			"description": r.Description,
			"severity":    r.Severity,
			"language":    r.Language,
			"target":      r.Target,
			"match":       r.Match,
			"pattern":     r.Pattern,
		}
	}))
}

func (s *server) getRuns(c *gin.Context) {
	runs, err := s.storage.LoadRuns()
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(runs, func(r *model.ReviewRun, _ int) gin.H {
		return toRunHeader(r)
	}))
}

func (s *server) getRun(c *gin.Context) {
	run, err := s.storage.LoadRun(model.UUID(c.Param("id")))
	if err != nil {
		sendError(c, err)
		return
	}

	result := toRunHeader(run)
	result["violations"] = run.Violations

	c.JSON(http.StatusOK, result)
}

func (s *server) getRunSummary(c *gin.Context) {
	run, err := s.storage.LoadRun(model.UUID(c.Param("id")))
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, run.Summary())
}

func toRunHeader(r *model.ReviewRun) gin.H {
	return gin.H{
		"id":             r.ID,
		"date":           r.Date,
		"branch":         r.Branch,
		"compare_branch": r.CompareBranch,
		"ahead":          r.Ahead,
		"behind":         r.Behind,
		"status":         r.Status,
		"changed_files":  r.ChangedFiles,
		"conflict_files": r.ConflictFiles,
	}
}
