package storage

import (
	"context"
	"database/sql"
)

type StreamerConfigRepo struct{ db *sql.DB }

func NewStreamerConfigRepo(db *sql.DB) *StreamerConfigRepo {
	return &StreamerConfigRepo{db: db}
}

// Get con get-or-create, igual que GuildRepo.
func (r *StreamerConfigRepo) Get(ctx context.Context, guildID string) (StreamerConfig, error) {
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO streamer_configs (guild_id) VALUES ($1)
ON CONFLICT (guild_id) DO NOTHING
`, guildID); err != nil {
		return StreamerConfig{}, err
	}

	var c StreamerConfig
	err := r.db.QueryRowContext(ctx, `
SELECT guild_id,
       COALESCE(applications_channel, ''), COALESCE(requirements_channel, ''),
       COALESCE(benefits_channel, ''), COALESCE(approved_logs_channel, ''),
       COALESCE(influencer_role, ''), COALESCE(creator_role, ''),
       COALESCE(tier1_role, ''), COALESCE(tier2_role, ''),
       COALESCE(panel_image, ''), footer,
       created_at, updated_at
  FROM streamer_configs
 WHERE guild_id = $1
`, guildID).Scan(
		&c.GuildID,
		&c.ApplicationsChannelID, &c.RequirementsChannelID,
		&c.BenefitsChannelID, &c.ApprovedLogsChannelID,
		&c.InfluencerRoleID, &c.CreatorRoleID,
		&c.Tier1RoleID, &c.Tier2RoleID,
		&c.PanelImage, &c.Footer,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return StreamerConfig{}, ErrNotFound
	}
	return c, err
}

// SetPanelImage guarda la imagen del panel; url vacia la limpia.
func (r *StreamerConfigRepo) SetPanelImage(ctx context.Context, guildID, url string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO streamer_configs (guild_id, panel_image)
VALUES ($1, NULLIF($2, ''))
ON CONFLICT (guild_id) DO UPDATE SET
  panel_image = NULLIF($2, ''),
  updated_at  = NOW()
`, guildID, url)
	return err
}
