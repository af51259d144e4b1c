package postgres

import (
	"context"
	"database/sql"
	"errors"

	"kittyfit/internal/domain"
)

// Create inserts a new account.
func (d *DB) Create(ctx context.Context, a *domain.Account) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO accounts(id, email, password_hash, created_at) VALUES($1, $2, $3, $4);",
		a.ID, a.Email, a.PasswordHash, a.CreatedAt.UTC(),
	)
	return err
}

// GetByEmail returns the account with the given email, or nil.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM accounts WHERE email=$1;", email)

	var a domain.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Get resolves the profile for userID. Rows can match by primary id or by
// the legacy owner_id column; precedence lives in domain.ResolveProfile, not
// in SQL, so the rule stays explicit and testable.
func (d *DB) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, COALESCE(owner_id, ''), kitty_name, avatar, experience, level, coins FROM profiles WHERE id=$1 OR owner_id=$1;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var candidates []domain.StoredProfile
	for rows.Next() {
		var p domain.StoredProfile
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.KittyName, &p.Avatar, &p.Experience, &p.Level, &p.Coins); err != nil {
			return nil, err
		}
		candidates = append(candidates, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	p, _ := domain.ResolveProfile(candidates, userID)
	return p, nil
}

// Save writes the profile wholesale, replacing any previous snapshot.
func (d *DB) Save(ctx context.Context, p *domain.UserProfile) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles(id, kitty_name, avatar, experience, level, coins)
		 VALUES($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
			kitty_name=EXCLUDED.kitty_name, avatar=EXCLUDED.avatar,
			experience=EXCLUDED.experience, level=EXCLUDED.level, coins=EXCLUDED.coins;`,
		p.ID, p.KittyName, p.Avatar, p.Experience, p.Level, p.Coins,
	)
	return err
}
