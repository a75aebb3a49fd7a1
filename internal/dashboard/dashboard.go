// Package dashboard derives daily productivity metrics from repository
// snapshots. Everything here is a pure function of its inputs.
package dashboard

import (
	"fmt"
	"math"

	"github.com/tgienger/focusdash/internal/models"
)

// Slot identifies one of the three insight positions
type Slot int

const (
	SlotStudy Slot = iota
	SlotCompletion
	SlotProductivity
)

// Insight is a fixed encouragement message for one slot
type Insight struct {
	Slot     Slot
	Achieved bool
	Text     string
}

// Metrics summarizes the day
type Metrics struct {
	StudySeconds      int
	Completed         int
	Total             int
	CompletionRate    int
	ProductivityScore int
	Insights          [3]Insight
}

const (
	studyGoalSeconds      = 3600
	completionRateGoal    = 70
	productivityScoreGoal = 80
	maxCreditedStudyHours = 4
)

var insightText = [3][2]string{
	SlotStudy: {
		"💪 Keep going! Try to reach at least 1 hour of focused study time.",
		"🎉 Great job! You've studied for over an hour today!",
	},
	SlotCompletion: {
		"📝 Complete more tasks to boost your productivity score.",
		"⭐ Excellent task completion rate! You're on fire!",
	},
	SlotProductivity: {
		"🎯 You're making progress! Stay consistent to improve your score.",
		"🏆 Outstanding productivity! Keep up the amazing work!",
	},
}

// ComputeMetrics derives the dashboard from today's study seconds and the
// full task list
func ComputeMetrics(studySeconds int, tasks []models.Task) Metrics {
	m := Metrics{StudySeconds: studySeconds, Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			m.Completed++
		}
	}
	if m.Total > 0 {
		m.CompletionRate = round(float64(m.Completed) / float64(m.Total) * 100)
	}

	hours := math.Min(float64(studySeconds)/3600, maxCreditedStudyHours)
	m.ProductivityScore = min(100, round(float64(m.CompletionRate)*0.5+hours*12.5))

	m.Insights = [3]Insight{
		insight(SlotStudy, studySeconds >= studyGoalSeconds),
		insight(SlotCompletion, m.CompletionRate >= completionRateGoal),
		insight(SlotProductivity, m.ProductivityScore >= productivityScoreGoal),
	}
	return m
}

func insight(slot Slot, achieved bool) Insight {
	i := 0
	if achieved {
		i = 1
	}
	return Insight{Slot: slot, Achieved: achieved, Text: insightText[slot][i]}
}

// round rounds half up, so 62.5 becomes 63
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// FormatStudyTime renders seconds as "1h 5m", or "5m" under an hour
func FormatStudyTime(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatClock renders a countdown as MM:SS
func FormatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
