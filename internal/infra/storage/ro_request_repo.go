package storage

import (
	"context"
	"database/sql"
	"time"
)

type RoRequestRepo struct{ db *sql.DB }

func NewRoRequestRepo(db *sql.DB) *RoRequestRepo { return &RoRequestRepo{db: db} }

func (r *RoRequestRepo) Create(ctx context.Context, req RoRequest) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO ro_requests
  (guild_id, user_id, channel_id, message_id, org_pm, fac, motivo, clip_url, status)
VALUES
  ($1,$2,$3,$4,$5,$6,$7,$8,'pending')
RETURNING id
`, req.GuildID, req.UserID, req.ChannelID, req.MessageID,
		req.OrgPM, req.Fac, req.Motivo, req.ClipURL).Scan(&id)
	return id, err
}

func (r *RoRequestRepo) FindByMessage(ctx context.Context, guildID, messageID string) (RoRequest, error) {
	var req RoRequest
	err := r.db.QueryRowContext(ctx, `
SELECT id, guild_id, user_id, channel_id, message_id,
       org_pm, fac, motivo, clip_url, status,
       COALESCE(reviewed_by, ''), reviewed_at, created_at, updated_at
  FROM ro_requests
 WHERE guild_id = $1 AND message_id = $2
`, guildID, messageID).Scan(
		&req.ID, &req.GuildID, &req.UserID, &req.ChannelID, &req.MessageID,
		&req.OrgPM, &req.Fac, &req.Motivo, &req.ClipURL, &req.Status,
		&req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return RoRequest{}, ErrNotFound
	}
	return req, err
}

// Decide pasa pending -> status solo si sigue pendiente. false = otro
// revisor llego primero.
func (r *RoRequestRepo) Decide(ctx context.Context, id int64, status, reviewerID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE ro_requests
   SET status      = $1,
       reviewed_by = $2,
       reviewed_at = $3,
       updated_at  = NOW()
 WHERE id = $4
   AND status = 'pending'
`, status, reviewerID, at, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *RoRequestRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ro_requests WHERE id = $1`, id)
	return err
}

// DeleteOlderThan es el barrido de retencion (15 dias en produccion).
func (r *RoRequestRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM ro_requests WHERE created_at < $1
`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
