package insight

import (
	"context"
	"math/rand"

	"pulsevo/internal/service/analytics"
)

// Panel payloads. The closure and compliance panels mix real tallies with
// figures no instrumentation exists for yet; the rest are placeholders until
// real sources land. Everything goes through PanelSource so swapping a
// placeholder for a genuine computation never touches the handlers.

type ClosurePanel struct {
	CurrentAvg        float64 `json:"current_avg"`
	PreviousAvg       float64 `json:"previous_avg"`
	BlockedTasks      int     `json:"blocked_tasks"`
	BlockedPercentage float64 `json:"blocked_percentage"`
}

type CompliancePanel struct {
	Overdue       int     `json:"overdue"`
	OnTime        int     `json:"on_time"`
	ActiveTasks   int     `json:"active_tasks"`
	AvgActiveTime float64 `json:"avg_active_time"`
}

type PredictionsPanel struct {
	SprintCompletion int    `json:"sprint_completion"`
	NextWeekWorkload string `json:"next_week_workload"`
	ExpectedTasks    int    `json:"expected_tasks"`
	RiskLevel        string `json:"risk_level"`
	RiskDescription  string `json:"risk_description"`
}

type BenchmarkTeam struct {
	Name       string  `json:"name"`
	TotalTasks int     `json:"total_tasks"`
	Velocity   int     `json:"velocity"`
	Efficiency int     `json:"efficiency"`
	Rank       int     `json:"rank"`
	Badge      *string `json:"badge"`
}

type ProductivityWeek struct {
	Week      string `json:"week"`
	YourTeam  int    `json:"your_team"`
	AlphaTeam int    `json:"alpha_team"`
	BetaTeam  int    `json:"beta_team"`
	GammaTeam int    `json:"gamma_team"`
}

type SentimentPanel struct {
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
	Insight  string `json:"insight"`
}

// PanelSource produces the non-narrated dashboard panels.
type PanelSource interface {
	ClosurePerformance(ctx context.Context, tasks analytics.StatusCounts) ClosurePanel
	DueCompliance(ctx context.Context, overdue, onTime, active int) CompliancePanel
	Predictions(ctx context.Context) PredictionsPanel
	TeamBenchmarking(ctx context.Context) []BenchmarkTeam
	ProductivityTrends(ctx context.Context) []ProductivityWeek
	Sentiment(ctx context.Context) SentimentPanel
	VelocityChange(ctx context.Context) float64
}

// PlaceholderPanels serves representative panel data where the real
// computation has no data source yet. Real tallies passed in are kept.
type PlaceholderPanels struct{}

func NewPlaceholderPanels() *PlaceholderPanels {
	return &PlaceholderPanels{}
}

func (p *PlaceholderPanels) ClosurePerformance(_ context.Context, tasks analytics.StatusCounts) ClosurePanel {
	return ClosurePanel{
		CurrentAvg:        30.1,
		PreviousAvg:       25.6,
		BlockedTasks:      tasks.Blocked,
		BlockedPercentage: 30.0,
	}
}

func (p *PlaceholderPanels) DueCompliance(_ context.Context, overdue, onTime, active int) CompliancePanel {
	return CompliancePanel{
		Overdue:       overdue,
		OnTime:        onTime,
		ActiveTasks:   active,
		AvgActiveTime: 159.2,
	}
}

func (p *PlaceholderPanels) Predictions(_ context.Context) PredictionsPanel {
	return PredictionsPanel{
		SprintCompletion: 94,
		NextWeekWorkload: "Medium",
		ExpectedTasks:    48,
		RiskLevel:        "Low",
		RiskDescription:  "No major bottlenecks",
	}
}

func (p *PlaceholderPanels) TeamBenchmarking(_ context.Context) []BenchmarkTeam {
	trophy := "\U0001F3C6"
	return []BenchmarkTeam{
		{Name: "Your Team", TotalTasks: 178, Velocity: 49, Efficiency: 92, Rank: 2},
		{Name: "Alpha Team", TotalTasks: 186, Velocity: 51, Efficiency: 94, Rank: 1, Badge: &trophy},
		{Name: "Beta Team", TotalTasks: 162, Velocity: 44, Efficiency: 88, Rank: 3},
		{Name: "Gamma Team", TotalTasks: 160, Velocity: 45, Efficiency: 85, Rank: 4},
	}
}

func (p *PlaceholderPanels) ProductivityTrends(_ context.Context) []ProductivityWeek {
	weeks := []string{"Week 1", "Week 2", "Week 3", "Week 4"}
	data := make([]ProductivityWeek, 0, len(weeks))
	for _, week := range weeks {
		data = append(data, ProductivityWeek{
			Week:      week,
			YourTeam:  35 + rand.Intn(14),
			AlphaTeam: 40 + rand.Intn(12),
			BetaTeam:  30 + rand.Intn(15),
			GammaTeam: 28 + rand.Intn(18),
		})
	}
	return data
}

// VelocityChange has no week-over-week instrumentation behind it yet; the
// figure keeps the UI gauge alive.
func (p *PlaceholderPanels) VelocityChange(_ context.Context) float64 {
	return analytics.Round1(rand.Float64()*40 - 20)
}

func (p *PlaceholderPanels) Sentiment(_ context.Context) SentimentPanel {
	return SentimentPanel{
		Positive: 75,
		Neutral:  20,
		Negative: 5,
		Insight:  "Team morale appears positive. Keep up the good work and maintain open communication.",
	}
}
