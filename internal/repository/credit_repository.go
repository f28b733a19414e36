package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentpilot/internal/models"
)

// ErrInsufficientCredits is returned by Debit when the conditional decrement
// matches no row because the balance is lower than the requested amount.
var ErrInsufficientCredits = errors.New("insufficient credits")

type CreditRepository interface {
	// Debit atomically decrements the user's balance and appends the ledger
	// row in one transaction. Returns the balance after the debit, or the
	// current balance together with ErrInsufficientCredits.
	Debit(ctx context.Context, userID int64, amount int, txType, description, reference string) (int, error)
	Credit(ctx context.Context, userID int64, amount int, txType, description, reference string) (int, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.CreditTransaction, error)
}

type creditRepository struct {
	db *sql.DB
}

func NewCreditRepository(db *sql.DB) CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) Debit(ctx context.Context, userID int64, amount int, txType, description, reference string) (int, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	defer tx.Rollback()

	// Conditional decrement closes the read-check-then-write window: two
	// concurrent debits serialize on the row lock and the second one only
	// succeeds if enough balance is left.
	query := `
		UPDATE users
		SET credits = credits - $1,
			total_credits_used = total_credits_used + $1,
			updated_at = $2
		WHERE id = $3 AND credits >= $1
		RETURNING credits
	`

	var balance int
	err = tx.QueryRowContext(ctx, query, amount, time.Now(), userID).Scan(&balance)
	if err == sql.ErrNoRows {
		var current int
		if err := tx.QueryRowContext(ctx, "SELECT credits FROM users WHERE id = $1", userID).Scan(&current); err != nil {
			if err == sql.ErrNoRows {
				return 0, errors.New("user does not exist")
			}
			slog.Info(err.Error())
			return 0, err
		}
		return current, ErrInsufficientCredits
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	if err := insertTransaction(ctx, tx, userID, -amount, balance, txType, description, reference); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return balance, nil
}

func (r *creditRepository) Credit(ctx context.Context, userID int64, amount int, txType, description, reference string) (int, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	defer tx.Rollback()

	query := `
		UPDATE users
		SET credits = credits + $1,
			updated_at = $2
		WHERE id = $3
		RETURNING credits
	`

	var balance int
	err = tx.QueryRowContext(ctx, query, amount, time.Now(), userID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, errors.New("user does not exist")
		}
		slog.Info(err.Error())
		return 0, err
	}

	if err := insertTransaction(ctx, tx, userID, amount, balance, txType, description, reference); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return balance, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, userID int64, amount, balance int, txType, description, reference string) error {
	query := `
		INSERT INTO credit_transactions (user_id, amount, balance, type, description, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, userID, amount, balance, txType, description, reference)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *creditRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.CreditTransaction, error) {
	query := `
		SELECT id, user_id, amount, balance, type, description, reference, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.CreditTransaction
	for rows.Next() {
		var t models.CreditTransaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Balance, &t.Type, &t.Description, &t.Reference, &t.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	return transactions, nil
}
