package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kittyfit/internal/domain"
)

// Identity resolves this installation's remembered sign-in to a profile.
// The lookup is keyed by device, not by account: it answers "who was signed
// in here last", independently of the local cache.
type Identity struct {
	db       *DB
	deviceID string
}

// Identity returns the identity provider view for the given device.
func (d *DB) Identity(deviceID string) *Identity {
	return &Identity{db: d, deviceID: deviceID}
}

var _ domain.IdentityProvider = (*Identity)(nil)

// CurrentUser returns the remembered profile, or nil when this device has
// no remembered sign-in.
func (i *Identity) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	row := i.db.sql.QueryRowContext(ctx,
		"SELECT user_id FROM remembered_signins WHERE device_id=$1;", i.deviceID)

	var userID string
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return i.db.Get(ctx, userID)
}

// Remember records the signed-in user for this device.
func (i *Identity) Remember(ctx context.Context, userID string) error {
	_, err := i.db.sql.ExecContext(ctx,
		`INSERT INTO remembered_signins(device_id, user_id, created_at) VALUES($1, $2, $3)
		 ON CONFLICT (device_id) DO UPDATE SET user_id=EXCLUDED.user_id, created_at=EXCLUDED.created_at;`,
		i.deviceID, userID, time.Now().UTC(),
	)
	return err
}

// Forget clears the remembered sign-in for this device.
func (i *Identity) Forget(ctx context.Context) error {
	_, err := i.db.sql.ExecContext(ctx,
		"DELETE FROM remembered_signins WHERE device_id=$1;", i.deviceID)
	return err
}
