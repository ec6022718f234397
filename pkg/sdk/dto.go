package sdk

import "time"

// Status mirrors the GET /api/status response
type Status struct {
	IsOnline    bool   `json:"isOnline"`
	MemberCount int    `json:"memberCount"`
	GuildName   string `json:"guildName"`
	Activity    string `json:"activity"`
}

// BotSettings mirrors the settings singleton wire format
type BotSettings struct {
	ID             int    `json:"id"`
	ActivityPrefix string `json:"activityPrefix"`
	ActivitySuffix string `json:"activitySuffix"`
	IsOnline       bool   `json:"isOnline"`
}

// UpdateSettingsRequest carries a partial settings update
type UpdateSettingsRequest struct {
	ActivityPrefix *string `json:"activityPrefix,omitempty"`
	ActivitySuffix *string `json:"activitySuffix,omitempty"`
}

// Reaction mirrors the reaction rule wire format
type Reaction struct {
	ID            int        `json:"id"`
	Keyword       string     `json:"keyword"`
	Response      string     `json:"response"`
	Type          string     `json:"type"`
	LastTriggered *time.Time `json:"lastTriggered"`
}

// CreateReactionRequest carries a new reaction rule
type CreateReactionRequest struct {
	Keyword  string `json:"keyword"`
	Response string `json:"response"`
	Type     string `json:"type"`
}

// UpdateReactionRequest carries a partial reaction update
type UpdateReactionRequest struct {
	Keyword  *string `json:"keyword,omitempty"`
	Response *string `json:"response,omitempty"`
	Type     *string `json:"type,omitempty"`
}

// Event mirrors the event log wire format
type Event struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
