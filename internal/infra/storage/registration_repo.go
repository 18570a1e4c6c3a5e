package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	pq "github.com/lib/pq"
)

var ErrNotFound = errors.New("not found")

type RegistrationRepo struct{ db *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// Latest devuelve la última registración del scope (app, guild).
func (r *RegistrationRepo) Latest(ctx context.Context, appID, guildID string) (CommandRegistration, error) {
	var c CommandRegistration
	err := r.db.QueryRowContext(ctx, `
SELECT id, application_id, guild_id, schema_hash, command_names, registered_at
  FROM command_registrations
 WHERE application_id = $1 AND guild_id = $2
 ORDER BY registered_at DESC, id DESC
 LIMIT 1
`, appID, guildID).Scan(&c.ID, &c.ApplicationID, &c.GuildID, &c.SchemaHash, pq.Array(&c.CommandNames), &c.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return CommandRegistration{}, ErrNotFound
	}
	return c, err
}

func (r *RegistrationRepo) Insert(ctx context.Context, c CommandRegistration) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO command_registrations (application_id, guild_id, schema_hash, command_names)
VALUES ($1,$2,$3,$4)
RETURNING id
`, c.ApplicationID, c.GuildID, c.SchemaHash, pq.Array(c.CommandNames)).Scan(&id)
	return id, err
}

// Prune borra las registraciones anteriores a before, pero nunca la última
// de cada scope (mismo orden que Latest).
func (r *RegistrationRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM command_registrations c
 WHERE c.registered_at < $1
   AND EXISTS (
     SELECT 1 FROM command_registrations n
      WHERE n.application_id = c.application_id
        AND n.guild_id = c.guild_id
        AND (n.registered_at, n.id) > (c.registered_at, c.id)
   )
`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
