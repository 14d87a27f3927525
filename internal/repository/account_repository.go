package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// AccountRepository persists the Telegram ↔ platform session links. This is
// the only thing the bot stores itself; all business data stays behind the
// platform API.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Upsert stores or refreshes the link for a Telegram user.
func (r *AccountRepository) Upsert(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (telegram_id, platform_user_id, display_name, role, session_cookie, compact_durations)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (telegram_id) DO UPDATE SET
			platform_user_id = EXCLUDED.platform_user_id,
			display_name = EXCLUDED.display_name,
			role = EXCLUDED.role,
			session_cookie = EXCLUDED.session_cookie
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		account.TelegramID,
		account.PlatformUserID,
		account.DisplayName,
		account.Role,
		account.SessionCookie,
		account.CompactDurations,
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}

// GetByTelegramID returns the linked account, or nil when none exists.
func (r *AccountRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Account, error) {
	query := `
		SELECT id, telegram_id, platform_user_id, display_name, role, session_cookie, compact_durations, created_at
		FROM accounts
		WHERE telegram_id = $1
	`

	var account model.Account
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&account.ID,
		&account.TelegramID,
		&account.PlatformUserID,
		&account.DisplayName,
		&account.Role,
		&account.SessionCookie,
		&account.CompactDurations,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by telegram id: %w", err)
	}

	return &account, nil
}

// SetCompactDurations flips the duration display preference.
func (r *AccountRepository) SetCompactDurations(ctx context.Context, telegramID int64, compact bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET compact_durations = $2 WHERE telegram_id = $1`,
		telegramID, compact,
	)
	if err != nil {
		return fmt.Errorf("set compact durations: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found for telegram id %d", telegramID)
	}
	return nil
}

// ListByRole returns all linked accounts with the given platform role.
// The refetch loop uses it to find admin sessions worth keeping warm.
func (r *AccountRepository) ListByRole(ctx context.Context, role string) ([]model.Account, error) {
	query := `
		SELECT id, telegram_id, platform_user_id, display_name, role, session_cookie, compact_durations, created_at
		FROM accounts
		WHERE role = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list accounts by role: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var account model.Account
		err := rows.Scan(
			&account.ID,
			&account.TelegramID,
			&account.PlatformUserID,
			&account.DisplayName,
			&account.Role,
			&account.SessionCookie,
			&account.CompactDurations,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Delete unlinks a Telegram user from the platform.
func (r *AccountRepository) Delete(ctx context.Context, telegramID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
