package store

import (
	"time"
)

// ReactionModel represents the database model for keyword reactions
type ReactionModel struct {
	ID            uint       `gorm:"primaryKey;autoIncrement"`
	Keyword       string     `gorm:"column:keyword;not null;size:255"`
	Response      string     `gorm:"column:response;not null;size:2000"`
	Type          string     `gorm:"column:type;not null;size:32"`
	LastTriggered *time.Time `gorm:"column:last_triggered"`
}

// TableName sets the table name for GORM
func (ReactionModel) TableName() string {
	return "reactions"
}

// EventModel represents the database model for operational events
type EventModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Type      string    `gorm:"column:type;not null;size:64"`
	Message   string    `gorm:"column:message;not null;size:2000"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
}

// TableName sets the table name for GORM
func (EventModel) TableName() string {
	return "events"
}

// SettingsModel represents the database model for the settings singleton
type SettingsModel struct {
	ID             uint   `gorm:"primaryKey"`
	ActivityPrefix string `gorm:"column:activity_prefix;not null;size:255"`
	ActivitySuffix string `gorm:"column:activity_suffix;not null;size:255"`
	IsOnline       bool   `gorm:"column:is_online;not null"`
}

// TableName sets the table name for GORM
func (SettingsModel) TableName() string {
	return "bot_settings"
}

// toReaction converts a database model to the domain record
func (m *ReactionModel) toReaction() *Reaction {
	return &Reaction{
		ID:            int(m.ID),
		Keyword:       m.Keyword,
		Response:      m.Response,
		Type:          ReactionType(m.Type),
		LastTriggered: m.LastTriggered,
	}
}

// toEvent converts a database model to the domain record
func (m *EventModel) toEvent() *Event {
	return &Event{
		ID:        int(m.ID),
		Type:      m.Type,
		Message:   m.Message,
		Timestamp: m.Timestamp,
	}
}

// toSettings converts a database model to the domain record
func (m *SettingsModel) toSettings() *BotSettings {
	return &BotSettings{
		ID:             int(m.ID),
		ActivityPrefix: m.ActivityPrefix,
		ActivitySuffix: m.ActivitySuffix,
		IsOnline:       m.IsOnline,
	}
}
