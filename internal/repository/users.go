package repository

import (
	"context"
	"time"

	"github.com/jobhub-dev/jobhub/backend/internal/domain"
)

func (r *Repository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (role, email, password_hash, name, phone, avatar, company, bio, skills, portfolio_link, location)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	skills, err := marshalSkills(user.Skills)
	if err != nil {
		return err
	}
	location, err := marshalLocation(user.Location)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{user.Role, user.Email, user.PasswordHash, user.Name, user.Phone, user.Avatar, user.Company, user.Bio, skills, user.PortfolioLink, location}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *Repository) scanUserRow(row interface{ Scan(dest ...any) error }, user *domain.User) error {
	var skills, location []byte

	dst := []any{&user.ID, &user.Role, &user.Email, &user.PasswordHash, &user.Name, &user.Phone, &user.Avatar, &user.Company, &user.Bio, &skills, &user.PortfolioLink, &location, &user.CreatedAt, &user.UpdatedAt}
	if err := row.Scan(dst...); err != nil {
		return err
	}

	var err error
	if user.Skills, err = unmarshalSkills(skills); err != nil {
		return err
	}
	if user.Location, err = unmarshalLocation(location); err != nil {
		return err
	}

	return nil
}

const userColumns = `id, role, email, password_hash, name, phone, avatar, company, bio, skills, portfolio_link, location, created_at, updated_at`

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{}
	if err := r.scanUserRow(r.dbpool.QueryRowContext(ctx, query, id), user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{}
	if err := r.scanUserRow(r.dbpool.QueryRowContext(ctx, query, email), user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		if err := r.scanUserRow(rows, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			name = $2,
			phone = $3,
			avatar = $4,
			company = $5,
			bio = $6,
			skills = $7,
			portfolio_link = $8,
			location = $9,
			updated_at = now()
		WHERE id = $10
		RETURNING updated_at
	`

	skills, err := marshalSkills(user.Skills)
	if err != nil {
		return err
	}
	location, err := marshalLocation(user.Location)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{user.PasswordHash, user.Name, user.Phone, user.Avatar, user.Company, user.Bio, skills, user.PortfolioLink, location, user.ID}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.UpdatedAt)
}
