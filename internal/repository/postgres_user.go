package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout/internal/domain"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (p *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var addressId *int

		if user.Address != nil {
			query := `INSERT INTO addresses (country, state, city, postal_code, line1, line2)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id`

			err := tx.QueryRow(ctx,
				query,
				user.Address.Country,
				user.Address.State,
				user.Address.City,
				user.Address.PostalCode,
				user.Address.Line1,
				user.Address.Line2).Scan(&user.Address.ID)
			if err != nil {
				return err
			}

			addressId = &user.Address.ID
		}

		query := `INSERT INTO users (username, first_name, last_name, email, phone, password_hash, address_id)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
			RETURNING id, created_at`

		err := tx.QueryRow(ctx,
			query,
			user.Username,
			user.FirstName,
			user.LastName,
			user.Email,
			user.Phone,
			user.Password.Hash,
			addressId).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUserAlreadyExists
			}

			return err
		}

		return nil
	})
}

const selectUser = `SELECT u.id, u.username, u.first_name, u.last_name, u.email, COALESCE(u.phone, ''),
		u.password_hash, u.created_at,
		a.id, a.country, a.state, a.city, a.postal_code, a.line1, a.line2
	FROM users u
	LEFT JOIN addresses a ON a.id = u.address_id`

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	return p.getUser(ctx, selectUser+` WHERE u.id = $1`, id)
}

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return p.getUser(ctx, selectUser+` WHERE u.email = $1`, email)
}

func (p *PostgresUserRepository) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var (
		addressId                                      *int
		country, state, city, postalCode, line1, line2 *string
	)

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Password.Hash,
		&user.CreatedAt,
		&addressId,
		&country,
		&state,
		&city,
		&postalCode,
		&line1,
		&line2,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	if addressId != nil {
		user.Address = &domain.Address{
			ID:         *addressId,
			Country:    deref(country),
			State:      deref(state),
			City:       deref(city),
			PostalCode: deref(postalCode),
			Line1:      deref(line1),
			Line2:      deref(line2),
		}
	}

	return &user, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
