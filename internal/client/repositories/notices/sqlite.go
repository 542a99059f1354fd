// Package notices persists cached institutional notices in the Local Store.
package notices

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"noticeease/internal/client/models"
	"noticeease/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Put upserts a notice by id. Notice times are stored as unix milliseconds.
func (r *SQLiteRepository) Put(ctx context.Context, n *models.Notice) error {
	query := `INSERT INTO notices (id, custom_sno, type, subject, company, notice, html_content, notice_time, file_mime, file_bytes, is_read)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET custom_sno = excluded.custom_sno,
				type = excluded.type,
				subject = excluded.subject,
				company = excluded.company,
				notice = excluded.notice,
				html_content = excluded.html_content,
				notice_time = excluded.notice_time,
				file_mime = excluded.file_mime,
				file_bytes = excluded.file_bytes,
				is_read = excluded.is_read
	`
	var fileMime sql.NullString
	var fileBytes []byte
	if n.FileBuffer != nil {
		fileMime = sql.NullString{String: n.FileBuffer.MimeType, Valid: true}
		fileBytes = n.FileBuffer.Bytes
	}

	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.CustomSno, string(n.Type), n.Subject, n.Company, n.Notice, n.HTMLContent,
		n.NoticeTime.UnixMilli(), fileMime, fileBytes, n.IsRead)
	if err != nil {
		return fmt.Errorf("failed to upsert notice: %w", err)
	}
	return nil
}

// Get returns a notice by id, or (nil, nil) on a miss.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Notice, error) {
	query := `SELECT id, custom_sno, type, subject, company, notice, html_content, notice_time, file_mime, file_bytes, is_read
			FROM notices WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	n, err := scanNotice(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}
	return n, nil
}

// GetAll lists every cached notice in unspecified physical order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Notice, error) {
	query := `SELECT id, custom_sno, type, subject, company, notice, html_content, notice_time, file_mime, file_bytes, is_read
			FROM notices`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select notices: %w", err)
	}
	defer rows.Close()

	var result []models.Notice
	for rows.Next() {
		n, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of cached notices.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count notices: %w", err)
	}
	return n, nil
}

// Clear removes all cached notices.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notices`)
	if err != nil {
		return fmt.Errorf("failed to clear notices: %w", err)
	}
	return nil
}

func scanNotice(scan func(dest ...any) error) (*models.Notice, error) {
	n := &models.Notice{}
	var (
		noticeType string
		noticeTime int64
		fileMime   sql.NullString
		fileBytes  []byte
		isRead     int
	)
	err := scan(&n.ID, &n.CustomSno, &noticeType, &n.Subject, &n.Company, &n.Notice,
		&n.HTMLContent, &noticeTime, &fileMime, &fileBytes, &isRead)
	if err != nil {
		return nil, err
	}
	n.Type = models.NoticeType(noticeType)
	n.NoticeTime = time.UnixMilli(noticeTime).UTC()
	n.IsRead = isRead != 0
	if fileMime.Valid {
		n.FileBuffer = &models.Attachment{MimeType: fileMime.String, Bytes: fileBytes}
	}
	return n, nil
}
