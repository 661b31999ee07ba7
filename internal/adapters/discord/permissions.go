package discord

import "github.com/bwmarrin/discordgo"

// hasManageGuild: gate de revisor/staff. En DM no hay Member, asi que nunca
// pasa.
func hasManageGuild(ic *discordgo.InteractionCreate) bool {
	return ic.Member != nil && ic.Member.Permissions&discordgo.PermissionManageServer != 0
}

// botCanPostIn verifica que el bot pueda publicar el embed de revision en el
// canal antes de intentarlo.
func (r *Router) botCanPostIn(channelID string) bool {
	perms, err := r.s.UserChannelPermissions(r.s.State.User.ID, channelID)
	if err != nil {
		return false
	}
	need := int64(discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionEmbedLinks |
		discordgo.PermissionAttachFiles)
	return perms&need == need
}

// guildHasRole consulta el state primero y cae a la API si no esta.
func (r *Router) guildHasRole(guildID, roleID string) bool {
	if role, err := r.s.State.Role(guildID, roleID); err == nil && role != nil {
		return true
	}
	roles, err := r.s.GuildRoles(guildID)
	if err != nil {
		return false
	}
	for _, role := range roles {
		if role.ID == roleID {
			return true
		}
	}
	return false
}
