package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

type StreamerRequestRepo struct{ db *sql.DB }

func NewStreamerRequestRepo(db *sql.DB) *StreamerRequestRepo {
	return &StreamerRequestRepo{db: db}
}

func (r *StreamerRequestRepo) Create(ctx context.Context, req StreamerRequest) (int64, error) {
	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.db.QueryRowContext(ctx, `
INSERT INTO streamer_requests
  (guild_id, user_id, channel_id, message_id, answers, attachments, status)
VALUES
  ($1,$2,$3,$4,$5,$6,'pending')
RETURNING id
`, req.GuildID, req.UserID, req.ChannelID, req.MessageID,
		answers, pq.Array(req.Attachments)).Scan(&id)
	return id, err
}

// SetMessage amarra la fila al mensaje de revision ya publicado.
func (r *StreamerRequestRepo) SetMessage(ctx context.Context, id int64, channelID, messageID string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE streamer_requests
   SET channel_id = $1, message_id = $2, updated_at = NOW()
 WHERE id = $3
`, channelID, messageID, id)
	return err
}

func (r *StreamerRequestRepo) FindByID(ctx context.Context, id int64) (StreamerRequest, error) {
	var (
		req     StreamerRequest
		answers []byte
	)
	err := r.db.QueryRowContext(ctx, `
SELECT id, guild_id, user_id, COALESCE(channel_id, ''), COALESCE(message_id, ''),
       answers, attachments, status, COALESCE(selected_role_key, ''),
       COALESCE(reviewed_by, ''), reviewed_at, created_at, updated_at
  FROM streamer_requests
 WHERE id = $1
`, id).Scan(
		&req.ID, &req.GuildID, &req.UserID, &req.ChannelID, &req.MessageID,
		&answers, pq.Array(&req.Attachments), &req.Status, &req.SelectedRoleKey,
		&req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return StreamerRequest{}, ErrNotFound
	}
	if err != nil {
		return StreamerRequest{}, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &req.Answers); err != nil {
			return StreamerRequest{}, err
		}
	}
	return req, nil
}

func (r *StreamerRequestRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM streamer_requests WHERE id = $1`, id)
	return err
}

// Decide: misma semantica condicional que RoRequestRepo.Decide.
func (r *StreamerRequestRepo) Decide(ctx context.Context, id int64, status, roleKey, reviewerID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE streamer_requests
   SET status            = $1,
       selected_role_key = NULLIF($2, ''),
       reviewed_by       = $3,
       reviewed_at       = $4,
       updated_at        = NOW()
 WHERE id = $5
   AND status = 'pending'
`, status, roleKey, reviewerID, at, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
