package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
)

// beginPanelImagePrompt: /streamers imagem. Deja al bot esperando la
// proxima imagen del autor en ESTE canal por 2 minutos.
func (r *Router) beginPanelImagePrompt(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if !r.commandGate(ctx, s, ic) {
		return
	}
	r.uploads.Begin(interactionUserID(ic), ic.GuildID, ic.ChannelID)
	ReplyEphemeral(s, ic, "", noticeEmbed(toneInfo, "Manda a imagem",
		"Envia a imagem do painel **neste canal** nos proximos **2 minutos**.\n"+
			"Para desistir, manda `cancelar`."))
}

// handlePanelImageMessage consume el proximo mensaje del autor con imagen.
func (r *Router) handlePanelImageMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	p, ok := r.uploads.Get(m.Author.ID)
	if !ok {
		return
	}
	if p.GuildID != m.GuildID || p.ChannelID != m.ChannelID {
		return
	}

	reply := func(e *discordgo.MessageEmbed) {
		_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
			Embeds:    []*discordgo.MessageEmbed{e},
			Reference: m.Reference(),
		})
		if err != nil {
			log.Printf("[streamers] responder upload: %v", err)
		}
	}

	if session.IsCancelKeyword(m.Content) {
		r.uploads.Clear(m.Author.ID)
		reply(noticeEmbed(toneWarning, "Envio cancelado", "A imagem do painel ficou como estava."))
		return
	}

	var imageURL string
	for _, a := range m.Attachments {
		if domain.IsImageAttachment(a.ContentType, a.Filename) {
			imageURL = a.URL
			break
		}
	}
	if imageURL == "" {
		// sigue esperando hasta que expire el prompt
		reply(noticeEmbed(toneError, "Preciso de uma imagem", "Manda um arquivo png, jpg, gif, webp ou bmp."))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.streamerCfg.SetPanelImage(ctx, m.GuildID, imageURL); err != nil {
		log.Printf("[streamers] guardar panel image: %v", err)
		reply(noticeEmbed(toneError, "Erro", "Nao consegui salvar a imagem, tenta de novo."))
		return
	}
	r.uploads.Clear(m.Author.ID)
	reply(noticeEmbed(toneSuccess, "Imagem atualizada",
		"Pronto! Na proxima publicacao do painel ela ja aparece."))
}
