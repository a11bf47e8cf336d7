package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteClient はローカルストレージ用のSQLite接続クライアント
// 最近の検索リストのような、プロセス再起動をまたぐ小さな状態の保存に使う
type SQLiteClient struct {
	DB *sql.DB
}

// NewSQLiteClient は新しいSQLiteクライアントを作成
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	if path == "" {
		return nil, fmt.Errorf("SQLiteのパスが指定されていません")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("SQLite接続の初期化に失敗: %w", err)
	}

	// 接続テスト
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("SQLiteへの接続に失敗: %w", err)
	}

	return &SQLiteClient{
		DB: db,
	}, nil
}

// Close はデータベース接続を閉じる
func (sc *SQLiteClient) Close() error {
	if sc.DB != nil {
		return sc.DB.Close()
	}
	return nil
}

// HealthCheck はデータベース接続のヘルスチェック
func (sc *SQLiteClient) HealthCheck() error {
	if sc.DB == nil {
		return fmt.Errorf("SQLiteクライアントが初期化されていません")
	}
	return sc.DB.Ping()
}
