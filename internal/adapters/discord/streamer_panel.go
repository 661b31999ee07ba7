package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/infra/storage"
)

func buildStreamerPanelMessage(guildID, guildName string, scfg storage.StreamerConfig) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title: "Sistema de Streamers - " + guildName,
		Description: "Quer divulgar a cidade e ganhar beneficios?\n" +
			"Clica em **Quero ser Streamer** e responde o formulario na DM.\n" +
			"Da uma olhada nos requisitos e beneficios antes de aplicar.",
		Color:  toneInfo.color(),
		Footer: &discordgo.MessageEmbedFooter{Text: scfg.Footer},
	}
	if scfg.PanelImage != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: scfg.PanelImage}
	}
	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Quero ser Streamer", Style: discordgo.SuccessButton, CustomID: streamerStartID(guildID)},
			discordgo.Button{Label: "Requisitos", Style: discordgo.SecondaryButton, CustomID: streamerInfoID("requirements", guildID)},
			discordgo.Button{Label: "Beneficios", Style: discordgo.SecondaryButton, CustomID: streamerInfoID("benefits", guildID)},
		},
	}
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	}
}

// publishStreamerPanel publica el panel en el canal donde corrio el
// comando, borrando paneles viejos del mismo canal.
func (r *Router) publishStreamerPanel(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if !r.commandGate(ctx, s, ic) {
		return
	}
	scfg, err := r.streamerCfg.Get(ctx, ic.GuildID)
	if err != nil {
		log.Printf("[streamers] config guild=%s: %v", ic.GuildID, err)
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui carregar a configuracao de streamers."))
		return
	}

	guildName := ic.GuildID
	if g, err := s.State.Guild(ic.GuildID); err == nil && g != nil {
		guildName = g.Name
	}

	// un panel por canal: limpia los anteriores antes de publicar
	if found, err := r.findPanelMessages(ic.ChannelID, streamerStartID(ic.GuildID)); err == nil {
		for _, old := range found {
			if err := s.ChannelMessageDelete(ic.ChannelID, old.ID); err != nil {
				log.Printf("[streamers] borrar panel viejo %s: %v", old.ID, err)
			}
		}
	}

	if _, err := s.ChannelMessageSendComplex(ic.ChannelID, buildStreamerPanelMessage(ic.GuildID, guildName, scfg)); err != nil {
		log.Printf("[streamers] publicar panel: %v", err)
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui publicar o painel neste canal."))
		return
	}
	ReplyEphemeral(s, ic, "", noticeEmbed(toneSuccess, "Painel publicado", "Painel de streamers ativo neste canal."))
}
