// Seeds the dashboard database with a realistic roster and task history so
// the panels have something to show in a fresh environment.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"pulsevo/internal/config"
	"pulsevo/internal/model"
	"pulsevo/pkg/db"
	"pulsevo/pkg/logger"
)

const taskCount = 2000

type seedUser struct {
	name, role, team string
}

var seedUsers = []seedUser{
	{"Alice Johnson", "Frontend Developer", "Your Team"},
	{"Bob Smith", "Backend Developer", "Your Team"},
	{"Carol Davis", "UX Designer", "Your Team"},
	{"David Lee", "Full Stack Developer", "Your Team"},
	{"Emma Wilson", "DevOps Engineer", "Your Team"},
	{"Frank Martinez", "QA Engineer", "Your Team"},
	{"Sarah Mitchell", "Frontend Developer", "Your Team"},
	{"Michael Brown", "Backend Developer", "Your Team"},
	{"Jennifer White", "Product Manager", "Your Team"},
	{"Robert Garcia", "Data Analyst", "Your Team"},
	{"Grace Chen", "Product Manager", "Alpha Team"},
	{"Henry Taylor", "Backend Developer", "Alpha Team"},
	{"Olivia Martinez", "Frontend Developer", "Alpha Team"},
	{"James Wilson", "Full Stack Developer", "Alpha Team"},
	{"Sophia Anderson", "UX Designer", "Alpha Team"},
	{"William Thomas", "DevOps Engineer", "Alpha Team"},
	{"Isabella Moore", "QA Engineer", "Alpha Team"},
	{"Daniel Jackson", "Backend Developer", "Alpha Team"},
	{"Iris Anderson", "Frontend Developer", "Beta Team"},
	{"Shane Williams", "Full Stack Developer", "Beta Team"},
	{"Emily Harris", "Backend Developer", "Beta Team"},
	{"Matthew Clark", "UX Designer", "Beta Team"},
	{"Ava Lewis", "QA Engineer", "Beta Team"},
	{"Ryan Robinson", "DevOps Engineer", "Beta Team"},
	{"Georgia Lopez", "DevOps Engineer", "Gamma Team"},
	{"Ethan Walker", "Backend Developer", "Gamma Team"},
	{"Mia Hall", "Frontend Developer", "Gamma Team"},
	{"Alexander Young", "Full Stack Developer", "Gamma Team"},
	{"Charlotte King", "Product Manager", "Gamma Team"},
	{"Benjamin Wright", "QA Engineer", "Gamma Team"},
}

type taskTemplate struct {
	name, project, priority, tags string
}

var taskTemplates = []taskTemplate{
	{"Implement user authentication flow", "Web Platform", "High", "authentication,security"},
	{"Fix responsive design on mobile", "Web Platform", "High", "bug,ui,mobile"},
	{"Add dark mode support", "Web Platform", "Medium", "feature,ui"},
	{"Optimize image loading performance", "Web Platform", "Medium", "performance,optimization"},
	{"Update homepage hero section", "Web Platform", "Low", "ui,content"},
	{"Integrate analytics tracking", "Web Platform", "Medium", "analytics,feature"},
	{"Fix navigation menu bug", "Web Platform", "High", "bug,navigation"},
	{"Add email notifications", "Web Platform", "Medium", "feature,notifications"},
	{"Implement search functionality", "Web Platform", "High", "feature,search"},
	{"Create user profile page", "Web Platform", "High", "feature,ui"},
	{"Fix crash on iOS 16", "Mobile App", "High", "bug,ios,crash"},
	{"Implement push notifications", "Mobile App", "High", "feature,notifications"},
	{"Add biometric authentication", "Mobile App", "Medium", "feature,security"},
	{"Optimize battery usage", "Mobile App", "Medium", "performance,optimization"},
	{"Fix camera permission issue", "Mobile App", "High", "bug,permissions"},
	{"Add offline mode support", "Mobile App", "High", "feature,offline"},
	{"Update to latest React Native", "Mobile App", "Medium", "maintenance,upgrade"},
	{"Fix Android memory leak", "Mobile App", "High", "bug,android,performance"},
	{"Add multi-language support", "Mobile App", "Medium", "feature,i18n"},
	{"Fix memory leak in user service", "API Services", "High", "bug,performance"},
	{"Implement rate limiting", "API Services", "High", "feature,security"},
	{"Add API versioning", "API Services", "Medium", "feature,api"},
	{"Update database indexes", "API Services", "Medium", "performance,database"},
	{"Write API documentation", "API Services", "Medium", "documentation"},
	{"Implement caching layer", "API Services", "High", "feature,performance"},
	{"Optimize SQL queries", "API Services", "Medium", "performance,database"},
	{"Set up CI/CD pipeline", "API Services", "High", "devops,automation"},
	{"Fix database connection pool", "API Services", "High", "bug,database"},
	{"Implement webhook system", "API Services", "Medium", "feature,integration"},
	{"Upgrade PostgreSQL version", "API Services", "Medium", "maintenance,database"},
}

var blockedReasons = []string{
	"Waiting for API access from external team",
	"Waiting for client approval",
	"Technical blocker - need architecture decision",
	"Waiting for design assets",
	"Blocked by infrastructure issues",
	"Pending security review",
	"Missing requirements clarification",
	"Third-party service integration pending",
}

// ~35% Open, ~28% In Progress, ~30% Completed, ~7% Blocked
func randomStatus() string {
	switch n := rand.Intn(100); {
	case n < 35:
		return model.StatusOpen
	case n < 63:
		return model.StatusInProgress
	case n < 93:
		return model.StatusCompleted
	default:
		return model.StatusBlocked
	}
}

func pick(choices []int) float64 {
	return float64(choices[rand.Intn(len(choices))])
}

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	pool, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer pool.Close()

	ctx := context.Background()

	// Tasks reference users, so they go first.
	if _, err := pool.Exec(ctx, "DELETE FROM tasks"); err != nil {
		log.Fatal("failed to clear tasks", zap.Error(err))
	}
	if _, err := pool.Exec(ctx, "DELETE FROM users"); err != nil {
		log.Fatal("failed to clear users", zap.Error(err))
	}

	userIDs := seedUserRows(ctx, pool, log)
	seedTaskRows(ctx, pool, log, userIDs)

	log.Info("Database seeding completed",
		zap.Int("users", len(userIDs)),
		zap.Int("tasks", taskCount),
	)
}

func seedUserRows(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) []string {
	userIDs := make([]string, 0, len(seedUsers))
	now := time.Now().UTC()

	batch := &pgx.Batch{}
	for idx, u := range seedUsers {
		userID := fmt.Sprintf("USER-%03d", idx+1)
		userIDs = append(userIDs, userID)

		parts := strings.Fields(u.name)
		var initials strings.Builder
		for _, p := range parts {
			initials.WriteByte(p[0])
		}
		email := strings.ToLower(strings.ReplaceAll(u.name, " ", ".")) + "@company.com"

		batch.Queue(`
			INSERT INTO users (user_id, name, initials, email, role, team, avatar_url, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, '', TRUE, $7, $7)`,
			userID, u.name, initials.String(), email, u.role, u.team, now,
		)
	}

	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		log.Fatal("failed to insert users", zap.Error(err))
	}

	log.Info("Created users", zap.Int("count", len(userIDs)))
	return userIDs
}

func seedTaskRows(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger, userIDs []string) {
	now := time.Now().UTC()
	batch := &pgx.Batch{}

	for idx := 1; idx <= taskCount; idx++ {
		tpl := taskTemplates[(idx-1)%len(taskTemplates)]
		status := randomStatus()

		created := now.AddDate(0, 0, -(1 + rand.Intn(90)))
		created = time.Date(created.Year(), created.Month(), created.Day(),
			8+rand.Intn(11), rand.Intn(60), rand.Intn(60), 0, time.UTC)

		var startDate, completedDate *time.Time
		if status == model.StatusInProgress || status == model.StatusCompleted {
			s := created.Add(time.Duration(rand.Intn(6))*24*time.Hour +
				time.Duration(rand.Intn(24))*time.Hour)
			startDate = &s
		}
		if status == model.StatusCompleted {
			workHours := pick([]int{4, 8, 12, 16, 24, 40, 80, 120, 160, 240})
			c := startDate.Add(time.Duration(workHours) * time.Hour)
			completedDate = &c
		}

		blockedReason := ""
		if status == model.StatusBlocked {
			blockedReason = blockedReasons[rand.Intn(len(blockedReasons))]
		}

		dueDate := created.AddDate(0, 0, 7+rand.Intn(24))

		var estimated float64
		switch tpl.priority {
		case model.PriorityHigh:
			estimated = pick([]int{8, 16, 24, 40})
		case model.PriorityMedium:
			estimated = pick([]int{4, 8, 16, 24})
		default:
			estimated = pick([]int{2, 4, 8})
		}

		name := tpl.name
		switch rand.Intn(5) {
		case 0:
			name = fmt.Sprintf("%s - Phase %d", tpl.name, 1+rand.Intn(3))
		case 1:
			name = fmt.Sprintf("%s v%d", tpl.name, 1+rand.Intn(5))
		}

		batch.Queue(`
			INSERT INTO tasks (task_id, task_name, description, status, priority, project, assigned_to,
				created_date, start_date, completed_date, due_date,
				estimated_hours, tags, blocked_reason, comments, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			fmt.Sprintf("TASK-%04d", idx),
			name,
			fmt.Sprintf("Detailed description for %s. This task requires proper planning and implementation.", tpl.name),
			status,
			tpl.priority,
			tpl.project,
			userIDs[rand.Intn(len(userIDs))],
			created,
			startDate,
			completedDate,
			dueDate,
			estimated,
			tpl.tags,
			blockedReason,
			fmt.Sprintf("Task created on %s. Assigned to team member.", created.Format("2006-01-02")),
			now,
		)

		// Flush every few hundred rows to keep batches bounded.
		if batch.Len() >= 250 {
			if err := pool.SendBatch(ctx, batch).Close(); err != nil {
				log.Fatal("failed to insert tasks", zap.Error(err))
			}
			batch = &pgx.Batch{}
		}
	}

	if batch.Len() > 0 {
		if err := pool.SendBatch(ctx, batch).Close(); err != nil {
			log.Fatal("failed to insert tasks", zap.Error(err))
		}
	}

	log.Info("Created tasks", zap.Int("count", taskCount))
}
