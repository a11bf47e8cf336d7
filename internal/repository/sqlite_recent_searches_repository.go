package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ServiceFinder-App/internal/domain/model"
	"ServiceFinder-App/internal/infrastructure/database"
)

// recentSearchesKey は最近の検索リストを保持する単一キー
const recentSearchesKey = "recent_location_searches"

// SQLiteRecentSearchesRepository はSQLiteを使用した最近の検索リストリポジトリ
// リスト全体をJSONとして1行に保存する
type SQLiteRecentSearchesRepository struct {
	client *database.SQLiteClient
	logger *zap.SugaredLogger
}

// NewSQLiteRecentSearchesRepository は新しいインスタンスを作成し、テーブルを初期化する
func NewSQLiteRecentSearchesRepository(client *database.SQLiteClient, logger *zap.SugaredLogger) (*SQLiteRecentSearchesRepository, error) {
	repo := &SQLiteRecentSearchesRepository{
		client: client,
		logger: logger,
	}
	if err := repo.ensureSchema(); err != nil {
		return nil, fmt.Errorf("スキーマの初期化に失敗: %w", err)
	}
	return repo, nil
}

func (r *SQLiteRecentSearchesRepository) ensureSchema() error {
	_, err := r.client.DB.Exec(`CREATE TABLE IF NOT EXISTS local_storage (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// Load は保存済みリストを読み込む
// キーが存在しない・JSONが壊れている場合はエラーにせず空リストを返す
func (r *SQLiteRecentSearchesRepository) Load(ctx context.Context) ([]model.LocationCandidate, error) {
	var value string
	err := r.client.DB.QueryRowContext(ctx,
		"SELECT value FROM local_storage WHERE key = ?", recentSearchesKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.LocationCandidate{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("最近の検索リストの読み込みに失敗: %w", err)
	}

	var candidates []model.LocationCandidate
	if err := json.Unmarshal([]byte(value), &candidates); err != nil {
		// 破損したデータは空として扱う（クラッシュさせない）
		r.logger.Warnw("保存済みリストのJSONが壊れているため空として扱う", "error", err)
		return []model.LocationCandidate{}, nil
	}
	return candidates, nil
}

// Store はリスト全体をJSONとして上書き保存する
func (r *SQLiteRecentSearchesRepository) Store(ctx context.Context, candidates []model.LocationCandidate) error {
	value, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("最近の検索リストのシリアライズに失敗: %w", err)
	}

	_, err = r.client.DB.ExecContext(ctx,
		`INSERT INTO local_storage (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		recentSearchesKey, string(value))
	if err != nil {
		return fmt.Errorf("最近の検索リストの保存に失敗: %w", err)
	}
	return nil
}

// Clear は保存済みリストを削除する
func (r *SQLiteRecentSearchesRepository) Clear(ctx context.Context) error {
	_, err := r.client.DB.ExecContext(ctx,
		"DELETE FROM local_storage WHERE key = ?", recentSearchesKey)
	if err != nil {
		return fmt.Errorf("最近の検索リストの削除に失敗: %w", err)
	}
	return nil
}
