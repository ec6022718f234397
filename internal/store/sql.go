package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// SQLStore handles storage and retrieval of reactions, events, and settings
// using MySQL. It is selected over the in-memory store when a database URL
// is configured, giving the dashboard state that survives restarts
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore creates a new store with a MySQL connection
func NewSQLStore(databaseURL string) (*SQLStore, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLStore{db: db}

	// Auto-migrate tables
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// migrate creates or updates the required database tables and makes sure
// the settings singleton row exists
func (s *SQLStore) migrate() error {
	if err := s.db.AutoMigrate(&ReactionModel{}, &EventModel{}, &SettingsModel{}); err != nil {
		return err
	}

	// Seed the settings singleton on first run
	var count int64
	if err := s.db.Model(&SettingsModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		settings := &SettingsModel{
			ID:             1,
			ActivityPrefix: "Regarde",
			ActivitySuffix: "sur",
			IsOnline:       true,
		}
		if err := s.db.Create(settings).Error; err != nil {
			return err
		}
	}

	return nil
}

// Reactions returns all reactions in insertion order
func (s *SQLStore) Reactions() ([]Reaction, error) {
	var models []ReactionModel
	if err := s.db.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}

	reactions := make([]Reaction, len(models))
	for i := range models {
		reactions[i] = *models[i].toReaction()
	}
	return reactions, nil
}

// Reaction returns a single reaction by id
func (s *SQLStore) Reaction(id int) (*Reaction, error) {
	var model ReactionModel
	result := s.db.First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reaction: %w", result.Error)
	}

	return model.toReaction(), nil
}

// CreateReaction validates the input and stores a new rule
func (s *SQLStore) CreateReaction(keyword, response string, typ ReactionType) (*Reaction, error) {
	if err := validateReaction(keyword, response, typ); err != nil {
		return nil, err
	}

	now := time.Now()
	model := &ReactionModel{
		Keyword:       keyword,
		Response:      response,
		Type:          string(typ),
		LastTriggered: &now,
	}
	if err := s.db.Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create reaction: %w", err)
	}

	return model.toReaction(), nil
}

// UpdateReaction merges the provided fields into an existing reaction
func (s *SQLStore) UpdateReaction(id int, patch ReactionPatch) (*Reaction, error) {
	var model ReactionModel
	result := s.db.First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reaction: %w", result.Error)
	}

	updates := map[string]any{}
	if patch.Keyword != nil {
		updates["keyword"] = *patch.Keyword
	}
	if patch.Response != nil {
		updates["response"] = *patch.Response
	}
	if patch.Type != nil {
		updates["type"] = string(*patch.Type)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&model).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update reaction: %w", err)
		}
	}

	return model.toReaction(), nil
}

// TouchReaction sets LastTriggered to the current time
func (s *SQLStore) TouchReaction(id int) (*Reaction, error) {
	var model ReactionModel
	result := s.db.First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reaction: %w", result.Error)
	}

	now := time.Now()
	if err := s.db.Model(&model).Update("last_triggered", now).Error; err != nil {
		return nil, fmt.Errorf("failed to touch reaction: %w", err)
	}

	return model.toReaction(), nil
}

// DeleteReaction removes a reaction and reports whether one was removed
func (s *SQLStore) DeleteReaction(id int) (bool, error) {
	result := s.db.Delete(&ReactionModel{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete reaction: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// Settings returns the settings singleton
func (s *SQLStore) Settings() (*BotSettings, error) {
	var model SettingsModel
	if err := s.db.First(&model, 1).Error; err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return model.toSettings(), nil
}

// UpdateSettings merges the provided fields into the settings singleton
func (s *SQLStore) UpdateSettings(patch SettingsPatch) (*BotSettings, error) {
	var model SettingsModel
	if err := s.db.First(&model, 1).Error; err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	updates := map[string]any{}
	if patch.ActivityPrefix != nil {
		updates["activity_prefix"] = *patch.ActivityPrefix
	}
	if patch.ActivitySuffix != nil {
		updates["activity_suffix"] = *patch.ActivitySuffix
	}
	if patch.IsOnline != nil {
		updates["is_online"] = *patch.IsOnline
	}

	if len(updates) > 0 {
		if err := s.db.Model(&model).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}

	return model.toSettings(), nil
}

// AddEvent appends a new event
func (s *SQLStore) AddEvent(typ, message string) (*Event, error) {
	model := &EventModel{
		Type:      typ,
		Message:   message,
		Timestamp: time.Now(),
	}
	if err := s.db.Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to add event: %w", err)
	}

	return model.toEvent(), nil
}

// Events returns the most recent events, newest first
func (s *SQLStore) Events(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}

	var models []EventModel
	if err := s.db.Order("id desc").Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]Event, len(models))
	for i := range models {
		events[i] = *models[i].toEvent()
	}
	return events, nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
