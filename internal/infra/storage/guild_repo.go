package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var ErrNotFound = errors.New("not found")

type GuildRepo struct{ db *sql.DB }

func NewGuildRepo(db *sql.DB) *GuildRepo { return &GuildRepo{db: db} }

// Get con get-or-create: la primera interaccion de una guild crea su fila
// con defaults.
func (r *GuildRepo) Get(ctx context.Context, guildID string) (GuildConfig, error) {
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO guilds (guild_id) VALUES ($1)
ON CONFLICT (guild_id) DO NOTHING
`, guildID); err != nil {
		return GuildConfig{}, err
	}

	var g GuildConfig
	err := r.db.QueryRowContext(ctx, `
SELECT guild_id, prefix,
       COALESCE(ro_panel_channel, ''), COALESCE(ro_analysis_channel, ''),
       COALESCE(ro_decision_logs_channel, ''), COALESCE(logs_channel, ''),
       COALESCE(general_channel, ''), COALESCE(economy_channel, ''),
       COALESCE(counter_channel, ''), COALESCE(economy_role, ''),
       COALESCE(blacklist_manager_role, ''), ro_notify_roles,
       module_economy, module_blacklist, module_counter,
       COALESCE(presence_watching, ''), blacklist,
       created_at, updated_at
  FROM guilds
 WHERE guild_id = $1
`, guildID).Scan(
		&g.GuildID, &g.Prefix,
		&g.ROPanelChannelID, &g.ROAnalysisChannelID,
		&g.RODecisionLogsChannelID, &g.LogsChannelID,
		&g.GeneralChannelID, &g.EconomyChannelID,
		&g.CounterChannelID, &g.EconomyRoleID,
		&g.BlacklistManagerRoleID, pq.Array(&g.RONotifyRoleIDs),
		&g.ModuleEconomy, &g.ModuleBlacklist, &g.ModuleCounter,
		&g.PresenceWatching, pq.Array(&g.Blacklist),
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return GuildConfig{}, ErrNotFound
	}
	return g, err
}
