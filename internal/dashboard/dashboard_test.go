package dashboard

import (
	"testing"

	"github.com/tgienger/focusdash/internal/models"
)

func tasksWith(completed, total int) []models.Task {
	tasks := make([]models.Task, total)
	for i := range tasks {
		tasks[i] = models.Task{ID: int64(i + 1), Completed: i < completed}
	}
	return tasks
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name      string
		study     int
		completed int
		total     int
		rate      int
		score     int
	}{
		{"empty day", 0, 0, 0, 0, 0},
		{"hour and all done", 3600, 4, 4, 100, 63},
		{"two thirds", 0, 2, 3, 67, 34},
		{"one third", 0, 1, 3, 33, 17},
		{"study capped at four hours", 10 * 3600, 0, 2, 0, 50},
		{"score capped at 100", 4 * 3600, 5, 5, 100, 100},
		{"half hour", 1800, 1, 2, 50, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(tt.study, tasksWith(tt.completed, tt.total))
			if m.CompletionRate != tt.rate {
				t.Errorf("CompletionRate = %d, want %d", m.CompletionRate, tt.rate)
			}
			if m.ProductivityScore != tt.score {
				t.Errorf("ProductivityScore = %d, want %d", m.ProductivityScore, tt.score)
			}
			if m.Completed != tt.completed || m.Total != tt.total {
				t.Errorf("Completed/Total = %d/%d", m.Completed, m.Total)
			}
		})
	}
}

func TestInsightsFollowThresholds(t *testing.T) {
	low := ComputeMetrics(3599, tasksWith(69, 100))
	for i, in := range low.Insights {
		if in.Achieved || in.Slot != Slot(i) {
			t.Errorf("low insight %d = %+v", i, in)
		}
	}
	if low.Insights[SlotStudy].Text != insightText[SlotStudy][0] {
		t.Errorf("study text = %q", low.Insights[SlotStudy].Text)
	}

	high := ComputeMetrics(4*3600, tasksWith(70, 100))
	// 70*0.5 + 4*12.5 = 85
	if high.ProductivityScore != 85 {
		t.Fatalf("score = %d", high.ProductivityScore)
	}
	for i, in := range high.Insights {
		if !in.Achieved || in.Text != insightText[i][1] {
			t.Errorf("high insight %d = %+v", i, in)
		}
	}
}

func TestComputeMetricsIsDeterministic(t *testing.T) {
	a := ComputeMetrics(1234, tasksWith(3, 7))
	b := ComputeMetrics(1234, tasksWith(3, 7))
	if a != b {
		t.Fatalf("metrics differ: %+v vs %+v", a, b)
	}
}

func TestFormatStudyTime(t *testing.T) {
	tests := map[int]string{
		0:    "0m",
		59:   "0m",
		600:  "10m",
		3600: "1h 0m",
		5430: "1h 30m",
	}
	for in, want := range tests {
		if got := FormatStudyTime(in); got != want {
			t.Errorf("FormatStudyTime(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(1500); got != "25:00" {
		t.Errorf("FormatClock(1500) = %q", got)
	}
	if got := FormatClock(65); got != "01:05" {
		t.Errorf("FormatClock(65) = %q", got)
	}
}
