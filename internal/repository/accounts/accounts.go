package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	telegram_id INTEGER NOT NULL UNIQUE,
	full_name TEXT NOT NULL,
	gmail TEXT NOT NULL UNIQUE,
	phone_number TEXT NOT NULL,
	age INTEGER NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	registered_at INTEGER NOT NULL,
	last_login_at INTEGER NOT NULL,
	presentations_created INTEGER NOT NULL DEFAULT 0,
	total_slides_generated INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS presentations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	topic TEXT NOT NULL,
	language TEXT NOT NULL,
	slide_count INTEGER NOT NULL,
	theme TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_presentations_user_created ON presentations(user_id, created_at);
CREATE TABLE IF NOT EXISTS activity_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	action_type TEXT NOT NULL,
	description TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_logs_user_created ON activity_logs(user_id, created_at);
`

// Repo is the sqlite-backed account store. Counter updates run as single
// UPDATE statements, so per-user increments never lose writes.
type Repo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewRepo(config *configs.Config, log *slog.Logger) (*Repo, error) {
	const op = "accounts.NewRepo"

	db, err := sql.Open("sqlite", config.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: open %s: %w", op, config.DB.Path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: init schema: %w", op, err)
	}
	return &Repo{db: db, log: log}, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) FindByTelegramID(ctx context.Context, telegramID int64) (domain.Account, error) {
	const op = "accounts.FindByTelegramID"

	row := r.db.QueryRowContext(ctx, `
		SELECT id, telegram_id, full_name, gmail, phone_number, age, is_active,
		       registered_at, last_login_at, presentations_created, total_slides_generated
		FROM users WHERE telegram_id = ?`, telegramID)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("%s: %w", op, domain.ErrRecordNotFound)
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

func (r *Repo) Create(ctx context.Context, telegramID int64, profile domain.Profile) (domain.Account, error) {
	const op = "accounts.Create"

	now := time.Now().Unix()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (telegram_id, full_name, gmail, phone_number, age, registered_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		telegramID, profile.FullName, profile.Gmail, profile.PhoneNumber, profile.Age, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, fmt.Errorf("%s: %w", op, domain.ErrDuplicateAccount)
		}
		return domain.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	account := domain.Account{
		ID:           id,
		TelegramID:   telegramID,
		FullName:     profile.FullName,
		Gmail:        profile.Gmail,
		PhoneNumber:  profile.PhoneNumber,
		Age:          profile.Age,
		IsActive:     true,
		RegisteredAt: time.Unix(now, 0),
		LastLoginAt:  time.Unix(now, 0),
	}

	if err := r.RecordActivity(ctx, id, domain.ActivityRegistration,
		fmt.Sprintf("new user registered: %s", profile.FullName)); err != nil {
		r.log.WarnContext(ctx, "activity log write failed", "accountID", id, "error", err)
	}
	return account, nil
}

// IncrementPresentations bumps the per-user counters and refreshes the last
// login time in one atomic statement.
func (r *Repo) IncrementPresentations(ctx context.Context, accountID int64, slideCount int) error {
	const op = "accounts.IncrementPresentations"

	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			presentations_created = presentations_created + 1,
			total_slides_generated = total_slides_generated + ?,
			last_login_at = ?
		WHERE id = ?`, slideCount, time.Now().Unix(), accountID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Repo) RecordPresentation(ctx context.Context, accountID int64, req domain.DeckRequest) error {
	const op = "accounts.RecordPresentation"

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO presentations (user_id, topic, language, slide_count, theme, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		accountID, req.Topic, string(req.Language), req.SlideCount, req.ThemeID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Repo) RecordActivity(ctx context.Context, accountID int64, kind, description string) error {
	const op = "accounts.RecordActivity"

	var userID any
	if accountID != 0 {
		userID = accountID
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_logs (user_id, action_type, description, created_at)
		VALUES (?, ?, ?, ?)`, userID, kind, description, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Repo) Statistics(ctx context.Context, accountID int64) (domain.Statistics, error) {
	const op = "accounts.Statistics"

	var stats domain.Statistics
	var registeredAt, lastLoginAt int64
	err := r.db.QueryRowContext(ctx, `
		SELECT presentations_created, total_slides_generated, registered_at, last_login_at
		FROM users WHERE id = ?`, accountID).
		Scan(&stats.Presentations, &stats.TotalSlides, &registeredAt, &lastLoginAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Statistics{}, fmt.Errorf("%s: %w", op, domain.ErrRecordNotFound)
	}
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("%s: %w", op, err)
	}
	stats.RegisteredAt = time.Unix(registeredAt, 0)
	stats.LastLoginAt = time.Unix(lastLoginAt, 0)

	rows, err := r.db.QueryContext(ctx, `
		SELECT topic, slide_count FROM presentations
		WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 5`, accountID)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var record domain.TopicRecord
		if err := rows.Scan(&record.Topic, &record.SlideCount); err != nil {
			return domain.Statistics{}, fmt.Errorf("%s: %w", op, err)
		}
		stats.RecentTopics = append(stats.RecentTopics, record)
	}
	if err := rows.Err(); err != nil {
		return domain.Statistics{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var account domain.Account
	var isActive int
	var registeredAt, lastLoginAt int64
	err := row.Scan(&account.ID, &account.TelegramID, &account.FullName, &account.Gmail,
		&account.PhoneNumber, &account.Age, &isActive,
		&registeredAt, &lastLoginAt, &account.Presentations, &account.TotalSlides)
	if err != nil {
		return domain.Account{}, err
	}
	account.IsActive = isActive != 0
	account.RegisteredAt = time.Unix(registeredAt, 0)
	account.LastLoginAt = time.Unix(lastLoginAt, 0)
	return account, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
