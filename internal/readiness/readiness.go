// Package readiness implements the organizational readiness score: a weighted
// 0-100 composite across classification, controls, evidence, tasks, and training.
//
// Score is a pure function of the organization's current records and an explicit
// instant. It is the single scoring implementation shared by the HTTP API and the
// batch export path.
package readiness

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/internal/records"
	"github.com/JaimeStill/posture/pkg/formatting"
)

// Category maxima. They sum to 100.
const (
	MaxClassification = 25
	MaxControls       = 30
	MaxEvidence       = 25
	MaxTasks          = 10
	MaxTraining       = 10
)

const (
	reassessmentPenalty = 0.10
	inProgressCredit    = 0.30
	expiredPenalty      = 0.15
)

// Status is the readiness tier derived from the overall score.
type Status string

const (
	StatusExcellent      Status = "excellent"
	StatusGood           Status = "good"
	StatusNeedsAttention Status = "needs_attention"
	StatusAtRisk         Status = "at_risk"
)

// StatusFor maps an overall score to its tier. Thresholds are evaluated top-down.
func StatusFor(score int) Status {
	switch {
	case score >= 85:
		return StatusExcellent
	case score >= 65:
		return StatusGood
	case score >= 40:
		return StatusNeedsAttention
	default:
		return StatusAtRisk
	}
}

// CategoryScore is one category's contribution to the overall score.
type CategoryScore struct {
	Score int    `json:"score"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}

// Breakdown holds the per-category scores.
type Breakdown struct {
	Classification CategoryScore `json:"classification"`
	Controls       CategoryScore `json:"controls"`
	Evidence       CategoryScore `json:"evidence"`
	Tasks          CategoryScore `json:"tasks"`
	Training       CategoryScore `json:"training"`
}

// Result is the computed readiness for one organization.
type Result struct {
	OverallScore int       `json:"overall_score"`
	Breakdown    Breakdown `json:"breakdown"`
	Status       Status    `json:"status"`
}

// Inputs are the record sets the score is computed from.
type Inputs struct {
	TotalSystems    int
	Classifications []records.Classification
	Controls        []records.Control
	Evidence        []records.Evidence
	Tasks           []records.Task
	Training        []records.Training
}

// Counts are the aggregates the category formulas operate on.
type Counts struct {
	TotalSystems       int `json:"total_systems"`
	Classified         int `json:"classified"`
	NeedsReassessment  int `json:"needs_reassessment"`
	ApplicableControls int `json:"applicable_controls"`
	Implemented        int `json:"implemented"`
	InProgress         int `json:"in_progress"`
	TotalEvidence      int `json:"total_evidence"`
	ApprovedEvidence   int `json:"approved_evidence"`
	ExpiredEvidence    int `json:"expired_evidence"`
	TotalTasks         int `json:"total_tasks"`
	PendingTasks       int `json:"pending_tasks"`
	OverdueTasks       int `json:"overdue_tasks"`
	TotalTraining      int `json:"total_training"`
	CompletedTraining  int `json:"completed_training"`
}

// Score computes the readiness result for in as of now.
func Score(in Inputs, now time.Time) Result {
	return Compute(Tally(in, now))
}

// Empty returns the zero result used when no organization is in context.
func Empty() Result {
	return Result{
		OverallScore: 0,
		Breakdown: Breakdown{
			Classification: CategoryScore{Max: MaxClassification, Label: "Not available"},
			Controls:       CategoryScore{Max: MaxControls, Label: "Not available"},
			Evidence:       CategoryScore{Max: MaxEvidence, Label: "Not available"},
			Tasks:          CategoryScore{Max: MaxTasks, Label: "Not available"},
			Training:       CategoryScore{Max: MaxTraining, Label: "Not available"},
		},
		Status: StatusAtRisk,
	}
}

// Tally reduces the input records to the counts used by Compute.
// Records with unknown enum values land in the least-privileged bucket:
// they are never classified, applicable, approved, done, or completed.
// Classifications are counted once per AI system.
func Tally(in Inputs, now time.Time) Counts {
	c := Counts{TotalSystems: in.TotalSystems}

	classified := make(map[uuid.UUID]bool)
	reassess := make(map[uuid.UUID]bool)
	for _, rc := range in.Classifications {
		if rc.RiskLevel.Classified() {
			classified[rc.AISystemID] = true
		}
		if rc.ReassessmentNeeded {
			reassess[rc.AISystemID] = true
		}
	}
	c.Classified = len(classified)
	c.NeedsReassessment = len(reassess)

	for _, ctl := range in.Controls {
		if !ctl.Status.Applicable() {
			continue
		}
		c.ApplicableControls++
		switch ctl.Status {
		case records.ControlImplemented:
			c.Implemented++
		case records.ControlInProgress:
			c.InProgress++
		}
	}

	c.TotalEvidence = len(in.Evidence)
	for _, e := range in.Evidence {
		if e.Status == records.EvidenceApproved {
			c.ApprovedEvidence++
		}
		if e.ExpiresAt != nil && e.ExpiresAt.Before(now) {
			c.ExpiredEvidence++
		}
	}

	c.TotalTasks = len(in.Tasks)
	for _, t := range in.Tasks {
		if !t.Status.Open() {
			continue
		}
		c.PendingTasks++
		if t.DueDate != nil && t.DueDate.Before(now) {
			c.OverdueTasks++
		}
	}

	c.TotalTraining = len(in.Training)
	for _, t := range in.Training {
		if t.Status == records.TrainingCompleted {
			c.CompletedTraining++
		}
	}

	return c
}

// Compute applies the category formulas to c.
func Compute(c Counts) Result {
	b := Breakdown{
		Classification: classificationScore(c),
		Controls:       controlsScore(c),
		Evidence:       evidenceScore(c),
		Tasks:          tasksScore(c),
		Training:       trainingScore(c),
	}

	overall := b.Classification.Score +
		b.Controls.Score +
		b.Evidence.Score +
		b.Tasks.Score +
		b.Training.Score

	return Result{
		OverallScore: overall,
		Breakdown:    b,
		Status:       StatusFor(overall),
	}
}

func classificationScore(c Counts) CategoryScore {
	if c.TotalSystems == 0 {
		return CategoryScore{Score: 0, Max: MaxClassification, Label: "No AI systems"}
	}

	total := float64(c.TotalSystems)
	classified := float64(c.Classified) / total
	penalty := 0.0
	if c.NeedsReassessment > 0 {
		penalty = reassessmentPenalty * (float64(c.NeedsReassessment) / total)
	}

	return CategoryScore{
		Score: scale(classified-penalty, MaxClassification),
		Max:   MaxClassification,
		Label: formatting.Ratio(c.Classified, c.TotalSystems, "classified"),
	}
}

// The in-progress credit is added before scaling and is not jointly capped with
// the implemented fraction; only the rounded result is clamped.
func controlsScore(c Counts) CategoryScore {
	if c.ApplicableControls == 0 {
		return CategoryScore{Score: 0, Max: MaxControls, Label: "No applicable controls"}
	}

	applicable := float64(c.ApplicableControls)
	implemented := float64(c.Implemented) / applicable
	inProgress := float64(c.InProgress) / applicable

	return CategoryScore{
		Score: scale(implemented+inProgressCredit*inProgress, MaxControls),
		Max:   MaxControls,
		Label: formatting.Ratio(c.Implemented, c.ApplicableControls, "implemented"),
	}
}

func evidenceScore(c Counts) CategoryScore {
	if c.TotalEvidence == 0 {
		return CategoryScore{Score: 0, Max: MaxEvidence, Label: "No evidence uploaded"}
	}

	total := float64(c.TotalEvidence)
	approved := float64(c.ApprovedEvidence) / total
	expired := float64(c.ExpiredEvidence) / total

	return CategoryScore{
		Score: scale(approved-expiredPenalty*expired, MaxEvidence),
		Max:   MaxEvidence,
		Label: formatting.Ratio(c.ApprovedEvidence, c.TotalEvidence, "approved"),
	}
}

// An organization with no task records has nothing to credit and scores 0.
// Once tasks exist, full credit applies until something open is overdue.
func tasksScore(c Counts) CategoryScore {
	if c.TotalTasks == 0 {
		return CategoryScore{Score: 0, Max: MaxTasks, Label: "No tasks tracked"}
	}
	if c.PendingTasks == 0 || c.OverdueTasks == 0 {
		return CategoryScore{Score: MaxTasks, Max: MaxTasks, Label: "All on track"}
	}

	overdue := float64(c.OverdueTasks) / float64(c.PendingTasks)

	return CategoryScore{
		Score: scale(1-overdue, MaxTasks),
		Max:   MaxTasks,
		Label: formatting.Ratio(c.OverdueTasks, c.PendingTasks, "overdue"),
	}
}

func trainingScore(c Counts) CategoryScore {
	if c.TotalTraining == 0 {
		if c.TotalSystems == 0 {
			return CategoryScore{Score: MaxTraining, Max: MaxTraining, Label: "Not required yet"}
		}
		return CategoryScore{Score: 0, Max: MaxTraining, Label: "No training records"}
	}

	completed := float64(c.CompletedTraining) / float64(c.TotalTraining)

	return CategoryScore{
		Score: scale(completed, MaxTraining),
		Max:   MaxTraining,
		Label: formatting.Ratio(c.CompletedTraining, c.TotalTraining, "completed"),
	}
}

// scale rounds fraction*limit to the nearest integer and clamps it to [0, limit].
func scale(fraction float64, limit int) int {
	n := int(math.Round(fraction * float64(limit)))
	return min(max(n, 0), limit)
}
