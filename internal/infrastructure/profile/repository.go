package profile

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
)

// Repository 사용자 프로필 저장소 인터페이스
type Repository interface {
	Find(userID string) (*chat.UserProfile, error)
	Save(profile *chat.UserProfile) error
	Delete(userID string) error
	Close() error
}

// sqliteRepository SQLite 프로필 저장소 구현
type sqliteRepository struct {
	db *sql.DB
}

// resolveDBPath 데이터베이스 파일 경로 결정
// 설정이 비어 있으면 ~/.recipe-chat/profiles.db 사용
func resolveDBPath(cfg *config.DatabaseConfig) (string, error) {
	if cfg.Path != "" {
		return cfg.Path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".recipe-chat", "profiles.db"), nil
}

// OpenDB 데이터베이스 연결 생성
func OpenDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewRepository 프로필 저장소 생성
func NewRepository(db *sql.DB) (Repository, error) {
	if err := initProfileTable(db); err != nil {
		return nil, err
	}
	return &sqliteRepository{db: db}, nil
}

// initProfileTable 프로필 테이블 초기화
func initProfileTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS user_profiles (
		user_id TEXT PRIMARY KEY,
		allergies TEXT NOT NULL,
		cooking_level TEXT NOT NULL,
		preferences TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create user_profiles table: %w", err)
	}
	return nil
}

// Find 사용자 프로필 조회. 레코드가 없으면 기본 프로필 반환.
func (r *sqliteRepository) Find(userID string) (*chat.UserProfile, error) {
	query := `
		SELECT user_id, allergies, cooking_level, preferences
		FROM user_profiles
		WHERE user_id = ?`

	var profile chat.UserProfile
	var allergiesJSON, preferencesJSON string

	err := r.db.QueryRow(query, userID).Scan(
		&profile.UserID,
		&allergiesJSON,
		&profile.CookingLevel,
		&preferencesJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.DefaultProfile(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	if err := json.Unmarshal([]byte(allergiesJSON), &profile.Allergies); err != nil {
		profile.Allergies = []string{}
	}
	if err := json.Unmarshal([]byte(preferencesJSON), &profile.Preferences); err != nil {
		profile.Preferences = []string{}
	}

	return &profile, nil
}

// Save 사용자 프로필 저장 (upsert)
func (r *sqliteRepository) Save(profile *chat.UserProfile) error {
	allergiesJSON, err := json.Marshal(profile.Allergies)
	if err != nil {
		return fmt.Errorf("failed to marshal allergies: %w", err)
	}
	preferencesJSON, err := json.Marshal(profile.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO user_profiles
		(user_id, allergies, cooking_level, preferences, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query,
		profile.UserID,
		string(allergiesJSON),
		profile.CookingLevel,
		string(preferencesJSON),
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// Delete 사용자 프로필 삭제
func (r *sqliteRepository) Delete(userID string) error {
	if _, err := r.db.Exec(`DELETE FROM user_profiles WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// Close 데이터베이스 연결 종료
func (r *sqliteRepository) Close() error {
	return r.db.Close()
}
