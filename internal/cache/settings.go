package cache

import (
	"context"
	"time"
)

const settingsKey = "pulsevo:settings"

// Settings is the user-facing integration configuration. It lives in Redis;
// without Redis the defaults are echoed back and writes are accepted but not
// durable.
type Settings struct {
	GithubToken   string               `json:"github_token"`
	TrelloKey     string               `json:"trello_key"`
	TrelloToken   string               `json:"trello_token"`
	Notifications NotificationSettings `json:"notifications"`
}

type NotificationSettings struct {
	TaskUpdates bool `json:"task_updates"`
	AIInsights  bool `json:"ai_insights"`
	DailyDigest bool `json:"daily_digest"`
}

func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			TaskUpdates: true,
			AIInsights:  true,
			DailyDigest: false,
		},
	}
}

// LoadSettings returns stored settings, or the defaults when nothing is
// stored or Redis is unavailable.
func (c *Cache) LoadSettings(ctx context.Context) Settings {
	var s Settings
	if c.GetJSON(ctx, settingsKey, &s) {
		return s
	}
	return DefaultSettings()
}

// SaveSettings persists settings without expiry.
func (c *Cache) SaveSettings(ctx context.Context, s Settings) {
	c.SetJSON(ctx, settingsKey, s, 0*time.Second)
}
