package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout/internal/domain"
)

type PostgresCustomerRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCustomerRepository(db *pgxpool.Pool) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		db: db,
	}
}

func (p *PostgresCustomerRepository) Create(ctx context.Context, customer *domain.StripeCustomer) error {
	query := `INSERT INTO stripe_customers (user_id, customer_id, idempotency_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := p.db.QueryRow(ctx,
		query,
		customer.UserID,
		customer.CustomerID,
		customer.IdempotencyKey).Scan(&customer.ID, &customer.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCustomerAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresCustomerRepository) GetByUserId(ctx context.Context, userId int) (*domain.StripeCustomer, error) {
	query := `SELECT id, user_id, customer_id, idempotency_key, created_at
		FROM stripe_customers
		WHERE user_id = $1`

	return p.getCustomer(ctx, query, userId)
}

func (p *PostgresCustomerRepository) GetByCustomerId(
	ctx context.Context,
	customerId string) (*domain.StripeCustomer, error) {

	query := `SELECT id, user_id, customer_id, idempotency_key, created_at
		FROM stripe_customers
		WHERE customer_id = $1`

	return p.getCustomer(ctx, query, customerId)
}

func (p *PostgresCustomerRepository) getCustomer(
	ctx context.Context,
	query string,
	arg any) (*domain.StripeCustomer, error) {

	var customer domain.StripeCustomer

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&customer.ID,
		&customer.UserID,
		&customer.CustomerID,
		&customer.IdempotencyKey,
		&customer.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &customer, nil
}

func (p *PostgresCustomerRepository) DeleteByUserId(ctx context.Context, userId int) error {
	return p.delete(ctx, `DELETE FROM stripe_customers WHERE user_id = $1`, userId)
}

func (p *PostgresCustomerRepository) DeleteByCustomerId(ctx context.Context, customerId string) error {
	return p.delete(ctx, `DELETE FROM stripe_customers WHERE customer_id = $1`, customerId)
}

func (p *PostgresCustomerRepository) delete(ctx context.Context, query string, arg any) error {
	result, err := p.db.Exec(ctx, query, arg)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
