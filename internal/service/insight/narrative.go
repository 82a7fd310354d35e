package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pulsevo/internal/model"
	"pulsevo/pkg/metrics"
)

// Narrator turns computed metrics into natural-language text. Every method
// returns usable text: when the generative service is unconfigured, slow, or
// broken, a deterministic template built from the same metrics is served
// instead.
type Narrator struct {
	client *GeminiClient
	logger *zap.Logger
}

func NewNarrator(client *GeminiClient, logger *zap.Logger) *Narrator {
	return &Narrator{client: client, logger: logger}
}

// Enabled reports whether a generative backend is configured at all.
func (n *Narrator) Enabled() bool {
	return n.client != nil
}

// narrate runs one generation attempt and falls back on any failure.
func (n *Narrator) narrate(ctx context.Context, panel, prompt, fallback string) string {
	if n.client == nil {
		metrics.IncrementNarrativeFallback(panel)
		return fallback
	}
	text, err := n.client.Generate(ctx, prompt)
	if err != nil || text == "" {
		n.logger.Warn("narrative generation failed, using fallback",
			zap.String("panel", panel),
			zap.Error(err),
		)
		metrics.IncrementNarrativeFallback(panel)
		return fallback
	}
	return text
}

// SummaryMetrics are the inputs to the productivity summary panel.
type SummaryMetrics struct {
	Completed24h   int
	AvgClosureTime float64
	Blocked        int
	Open           int
	InProgress     int
}

// Summarize produces the /api/ai/summary narrative.
func (n *Narrator) Summarize(ctx context.Context, tasks []model.Task, m SummaryMetrics) string {
	var lines []string
	for i := range tasks {
		if i >= 20 { // top 20 carry enough context for a 3-sentence summary
			break
		}
		t := &tasks[i]
		lines = append(lines, fmt.Sprintf("- %s (Status: %s, Priority: %s, Project: %s)",
			t.TaskName, t.Status, t.Priority, t.Project))
	}

	prompt := fmt.Sprintf(`Analyze the following team productivity data and provide a concise 2-3 sentence summary with actionable insights:

Recent Tasks:
%s

Metrics:
- Completed in last 24h: %d
- Average closure time: %.1f hours
- Blocked tasks: %d
- Open tasks: %d
- In Progress: %d

Provide a professional summary highlighting key trends, potential bottlenecks, and recommendations.`,
		strings.Join(lines, "\n"), m.Completed24h, m.AvgClosureTime, m.Blocked, m.Open, m.InProgress)

	fallback := fmt.Sprintf(
		"Over the last 24 hours, your team completed %d tasks with an average closure time of %.1f hours. "+
			"There are %d blocked tasks and %d open tasks requiring attention. "+
			"Focus on clearing blockers to improve velocity.",
		m.Completed24h, m.AvgClosureTime, m.Blocked, m.Open)

	return n.narrate(ctx, "summary", prompt, fallback)
}

// ChatSnapshot is the grounded context for a conversational query: the most
// recent tasks plus the whole roster, with derived breakdowns.
type ChatSnapshot struct {
	SummaryStats       StatusTally                `json:"summary_stats"`
	AllTasks           []model.Task               `json:"all_tasks"`
	TeamMembers        []model.User               `json:"team_members"`
	ProjectsBreakdown  map[string]StatusTally     `json:"projects_breakdown"`
	AssigneesBreakdown map[string]StatusTally     `json:"assignees_breakdown"`
}

type StatusTally struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Open       int `json:"open"`
	Blocked    int `json:"blocked"`
}

func (s *StatusTally) add(status string) {
	s.Total++
	switch status {
	case model.StatusCompleted:
		s.Completed++
	case model.StatusInProgress:
		s.InProgress++
	case model.StatusOpen:
		s.Open++
	case model.StatusBlocked:
		s.Blocked++
	}
}

// BuildChatSnapshot derives the breakdown maps from the raw records.
func BuildChatSnapshot(tasks []model.Task, users []model.User) ChatSnapshot {
	snap := ChatSnapshot{
		AllTasks:           tasks,
		TeamMembers:        users,
		ProjectsBreakdown:  map[string]StatusTally{},
		AssigneesBreakdown: map[string]StatusTally{},
	}
	for i := range tasks {
		t := &tasks[i]
		snap.SummaryStats.add(t.Status)

		project := t.Project
		if project == "" {
			project = "Unknown"
		}
		p := snap.ProjectsBreakdown[project]
		p.add(t.Status)
		snap.ProjectsBreakdown[project] = p

		if t.AssignedTo != nil {
			a := snap.AssigneesBreakdown[*t.AssignedTo]
			a.add(t.Status)
			snap.AssigneesBreakdown[*t.AssignedTo] = a
		}
	}
	return snap
}

// Answer responds to a conversational query grounded in the snapshot.
func (n *Narrator) Answer(ctx context.Context, query string, snap ChatSnapshot) string {
	contextJSON, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		contextJSON = []byte("{}")
	}

	prompt := fmt.Sprintf(`You are PulseVo AI, an advanced analytics assistant for a software development team.

CONTEXT: You have access to the COMPLETE database of tasks, team members, and project information below.

LIVE DATABASE DATA:
%s

YOUR TASK: Analyze the data above and answer the user's question with precision and insight.

INSTRUCTIONS:
1. ANALYZE the data thoroughly to find the exact answer
2. For "how many" questions, count from the actual data and give exact numbers
3. For project questions, look at the "projects_breakdown" section
4. For team questions, look at "team_members" and "assignees_breakdown"
5. Be specific - mention task names, assignees, or projects when relevant
6. Keep responses concise (2-3 sentences) but informative

IMPORTANT: Only use the data provided. If the answer isn't in the data, say so clearly.

User Question: %s

Your Answer (be specific and accurate):`, contextJSON, query)

	s := snap.SummaryStats
	fallback := fmt.Sprintf(
		"Based on the data, there are %d total tasks: %d completed, %d in progress, %d open, and %d blocked.",
		s.Total, s.Completed, s.InProgress, s.Open, s.Blocked)

	return n.narrate(ctx, "chat", prompt, fallback)
}
