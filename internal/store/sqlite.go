package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/sweeney/ups-trap-monitor/internal/alarm"
	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// muteSetting is the single-row table holding the mute flag.
type muteSetting struct {
	ID        uint `gorm:"primaryKey"`
	Muted     bool
	UpdatedAt time.Time
}

// activeAlarm is one persisted active-alarm entry.
type activeAlarm struct {
	Identifier string `gorm:"primaryKey"`
	Severity   string
	FirstSeen  time.Time
	LastSeen   time.Time
}

// sqliteStore implements Store on a local sqlite file via GORM.
type sqliteStore struct {
	db *gorm.DB
}

// Open opens (and migrates) the sqlite database at path.
func Open(path string) (Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open state db %s: %w", path, err)
	}

	if err := db.AutoMigrate(&muteSetting{}, &activeAlarm{}); err != nil {
		return nil, fmt.Errorf("migrate state db: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) LoadMuted() (bool, error) {
	var row muteSetting
	err := s.db.First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load mute flag: %w", err)
	}
	return row.Muted, nil
}

func (s *sqliteStore) SaveMuted(muted bool) error {
	row := muteSetting{ID: 1, Muted: muted, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save mute flag: %w", err)
	}
	return nil
}

func (s *sqliteStore) LoadActiveAlarms() ([]alarm.Active, error) {
	var rows []activeAlarm
	if err := s.db.Order("identifier").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load active alarms: %w", err)
	}

	actives := make([]alarm.Active, 0, len(rows))
	for _, r := range rows {
		actives = append(actives, alarm.Active{
			Identifier: r.Identifier,
			Severity:   catalog.Severity(r.Severity),
			FirstSeen:  r.FirstSeen,
			LastSeen:   r.LastSeen,
		})
	}
	return actives, nil
}

func (s *sqliteStore) SaveActiveAlarm(a alarm.Active) error {
	row := activeAlarm{
		Identifier: a.Identifier,
		Severity:   string(a.Severity),
		FirstSeen:  a.FirstSeen,
		LastSeen:   a.LastSeen,
	}
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save active alarm %s: %w", a.Identifier, err)
	}
	return nil
}

func (s *sqliteStore) DeleteActiveAlarms(identifiers []string) error {
	if len(identifiers) == 0 {
		return nil
	}
	err := s.db.Where("identifier IN ?", identifiers).Delete(&activeAlarm{}).Error
	if err != nil {
		return fmt.Errorf("delete active alarms: %w", err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
