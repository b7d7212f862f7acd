package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/tuuze-market/internal/domain/models"
)

var ErrMerchantNotFound = errors.New("merchant not found")

type MerchantStorage interface {
	GetMerchantByEmail(ctx context.Context, email string) (*models.Merchant, error)
	CreateMerchant(ctx context.Context, merchant *models.Merchant) (*models.Merchant, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetUnwelcomed(ctx context.Context) ([]*models.Merchant, error)
	MarkWelcomed(ctx context.Context, id string) error
}

type merchantRepository struct {
	db *sql.DB
}

func NewMerchantRepository(db *sql.DB) *merchantRepository {
	return &merchantRepository{db: db}
}

// получение уже существующего продавца по email
func (r *merchantRepository) GetMerchantByEmail(ctx context.Context, email string) (*models.Merchant, error) {
	merchant := &models.Merchant{}
	row := r.db.QueryRowContext(ctx,
		"SELECT merchant_id, merchantUserName, merchantEmail, password FROM merchants WHERE merchantEmail = $1", email)
	if err := row.Scan(&merchant.ID, &merchant.Username, &merchant.Email, &merchant.PassHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return merchant, nil
}

func (r *merchantRepository) CreateMerchant(ctx context.Context, merchant *models.Merchant) (*models.Merchant, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO merchants (merchant_id, merchantUserName, merchantEmail, password) VALUES ($1, $2, $3, $4)",
		merchant.ID, merchant.Username, merchant.Email, merchant.PassHash,
	)
	if err != nil {
		return nil, err
	}
	return merchant, nil
}

// EmailExists проверяет занятость email перед вставкой (read-then-write,
// гонка между проверкой и вставкой закрывается уникальным индексом)
func (r *merchantRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	row := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM merchants WHERE merchantEmail = $1", email)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUnwelcomed возвращает продавцов, которым ещё не отправлено приветственное письмо
func (r *merchantRepository) GetUnwelcomed(ctx context.Context) ([]*models.Merchant, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT merchant_id, merchantUserName, merchantEmail FROM merchants WHERE is_welcomed = false")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var merchants []*models.Merchant
	for rows.Next() {
		m := &models.Merchant{}
		if err := rows.Scan(&m.ID, &m.Username, &m.Email); err != nil {
			return nil, err
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return merchants, nil
}

func (r *merchantRepository) MarkWelcomed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE merchants SET is_welcomed = true WHERE merchant_id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMerchantNotFound
	}
	return nil
}
