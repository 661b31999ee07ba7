package storage

import "time"

// GuildConfig es la fila de `guilds`: canales, modulos y blacklist por
// servidor. Campos vacios = no configurado.
type GuildConfig struct {
	GuildID                 string
	Prefix                  string
	ROPanelChannelID        string
	ROAnalysisChannelID     string
	RODecisionLogsChannelID string
	LogsChannelID           string
	GeneralChannelID        string
	EconomyChannelID        string
	CounterChannelID        string
	EconomyRoleID           string
	BlacklistManagerRoleID  string
	RONotifyRoleIDs         []string
	ModuleEconomy           bool
	ModuleBlacklist         bool
	ModuleCounter           bool
	PresenceWatching        string
	Blacklist               []string
	CreatedAt, UpdatedAt    time.Time
}

// IsBlacklisted aplica la lista solo si el modulo esta prendido.
func (g GuildConfig) IsBlacklisted(userID string) bool {
	if !g.ModuleBlacklist {
		return false
	}
	for _, id := range g.Blacklist {
		if id == userID {
			return true
		}
	}
	return false
}

// StreamerConfig es la fila de `streamer_configs`.
type StreamerConfig struct {
	GuildID               string
	ApplicationsChannelID string
	RequirementsChannelID string
	BenefitsChannelID     string
	ApprovedLogsChannelID string
	InfluencerRoleID      string
	CreatorRoleID         string
	Tier1RoleID           string
	Tier2RoleID           string
	PanelImage            string
	Footer                string
	CreatedAt, UpdatedAt  time.Time
}

// RoleID mapea clave de tier -> rol configurado ("" si falta).
func (c StreamerConfig) RoleID(key string) string {
	switch key {
	case "influencer":
		return c.InfluencerRoleID
	case "creator":
		return c.CreatorRoleID
	case "tier1":
		return c.Tier1RoleID
	case "tier2":
		return c.Tier2RoleID
	}
	return ""
}

// RoRequest es una solicitud de R.O. durable, viva mientras este en analisis.
type RoRequest struct {
	ID                   int64
	GuildID              string
	UserID               string
	ChannelID            string
	MessageID            string
	OrgPM                string
	Fac                  string
	Motivo               string
	ClipURL              string
	Status               string
	ReviewedBy           string
	ReviewedAt           *time.Time
	CreatedAt, UpdatedAt time.Time
}

// StreamerRequest es una candidatura de streamer con el formulario completo.
type StreamerRequest struct {
	ID                   int64
	GuildID              string
	UserID               string
	ChannelID            string
	MessageID            string
	Answers              map[string]string
	Attachments          []string
	Status               string
	SelectedRoleKey      string
	ReviewedBy           string
	ReviewedAt           *time.Time
	CreatedAt, UpdatedAt time.Time
}
