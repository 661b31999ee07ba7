package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/app/service"
	"github.com/lotus-group/lotus-bot/internal/domain"
	"github.com/lotus-group/lotus-bot/internal/infra/storage"
)

// handleRoDecision: Aceitar/Recusar sobre el mensaje de revision. Terminal:
// una vez decidida, los botones quedan muertos y el embed cuenta quien fue.
func (r *Router) handleRoDecision(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, d domain.Decision) {
	defer step("provasro.decision")()
	uid := interactionUserID(ic)

	if !hasManageGuild(ic) {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Sem permissao", "Voce precisa da permissao **Gerenciar Servidor** para revisar."))
		return
	}
	msg := ic.Message
	if msg == nil || len(msg.Embeds) == 0 {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao encontrei o embed da solicitacao."))
		return
	}
	// guard por contenido: si el embed ya es terminal ni tocamos la db
	if hasFinalStatus(msg) {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, "Ja decidida", "Essa solicitacao ja foi revisada."))
		return
	}

	req, err := r.ro.Decide(ctx, ic.GuildID, msg.ID, d, uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyDecided):
			_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, "Ja decidida", "Outro revisor chegou primeiro."))
		case errors.Is(err, storage.ErrNotFound):
			// fila purgada por retencion: el embed sigue pendiente, asi
			// que decidimos desde el propio mensaje
			r.decideRoFromEmbed(s, ic, d, uid)
		default:
			log.Printf("[provasro] decide: %v", err)
			_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui registrar a decisao, tenta de novo."))
		}
		return
	}

	edited := cloneEmbed(msg.Embeds[0])
	setStatusField(edited, decisionStatusValue(d, uid))
	if d.Approved() {
		edited.Color = toneSuccess.color()
	} else {
		edited.Color = toneError.color()
	}
	_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{edited}, []discordgo.MessageComponent{
		decisionRowDisabled(),
	})

	r.dmRoRequester(req, d)
	r.postRoDecisionLog(ctx, req, d, uid)

	// el embed editado es el registro visible; la fila ya cumplio
	if err := r.ro.Cleanup(ctx, req.ID); err != nil {
		log.Printf("[provasro] cleanup fila %d: %v", req.ID, err)
	}
}

// decideRoFromEmbed cierra una revision cuya fila ya no existe en la db.
// El solicitante sale del propio embed; sin fila no hay log ni cleanup.
func (r *Router) decideRoFromEmbed(s *discordgo.Session, ic *discordgo.InteractionCreate, d domain.Decision, reviewerID string) {
	msg := ic.Message
	edited := cloneEmbed(msg.Embeds[0])
	setStatusField(edited, decisionStatusValue(d, reviewerID))
	if d.Approved() {
		edited.Color = toneSuccess.color()
	} else {
		edited.Color = toneError.color()
	}
	_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{edited}, []discordgo.MessageComponent{
		decisionRowDisabled(),
	})

	if requesterID := requesterIDFromEmbed(msg.Embeds[0]); requesterID != "" {
		err := sendDM(r.s, requesterID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{noticeEmbed(toneInfo, "R.O revisado",
				fmt.Sprintf("Sua solicitacao de R.O foi **%s**.", d.Label()))},
		})
		if err != nil {
			log.Printf("[provasro] dm solicitante %s: %v", requesterID, err)
		}
	}
}

func decisionRowDisabled() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Aceitar", Style: discordgo.SuccessButton, CustomID: roApproveID, Disabled: true},
			discordgo.Button{Label: "Recusar", Style: discordgo.DangerButton, CustomID: roRejectID, Disabled: true},
		},
	}
}

// dmRoRequester avisa al solicitante. Embed rico primero, si el payload
// falla cae a un aviso pelado. DM cerrada no es error del flujo.
func (r *Router) dmRoRequester(req storage.RoRequest, d domain.Decision) {
	var embed *discordgo.MessageEmbed
	if d.Approved() {
		embed = &discordgo.MessageEmbed{
			Title:       "Seu R.O foi APROVADO",
			Description: "A staff aceitou sua solicitacao de R.O contra a acao da PM.",
			Color:       toneSuccess.color(),
		}
	} else {
		embed = &discordgo.MessageEmbed{
			Title:       "Seu R.O foi RECUSADO",
			Description: "A staff analisou e recusou sua solicitacao de R.O.",
			Color:       toneError.color(),
		}
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "FAC", Value: req.Fac, Inline: true},
		{Name: "ORG da PM", Value: req.OrgPM, Inline: true},
		{Name: "Motivo", Value: truncateText(req.Motivo, 1024)},
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: formatDate(time.Now())}

	err := sendDM(r.s, req.UserID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
	if err != nil {
		// fallback plano, a veces el embed grande rebota
		err = sendDM(r.s, req.UserID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{noticeEmbed(toneInfo, "R.O revisado",
				fmt.Sprintf("Sua solicitacao de R.O foi **%s**.", d.Label()))},
		})
	}
	if err != nil {
		log.Printf("[provasro] dm solicitante %s: %v", req.UserID, err)
	}
}

func (r *Router) postRoDecisionLog(ctx context.Context, req storage.RoRequest, d domain.Decision, reviewerID string) {
	gcfg, err := r.guilds.Get(ctx, req.GuildID)
	if err != nil || gcfg.RODecisionLogsChannelID == "" {
		return
	}
	embed := &discordgo.MessageEmbed{
		Title: "Decisao de R.O",
		Color: toneInfo.color(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Solicitante", Value: fmt.Sprintf("<@%s>", req.UserID), Inline: true},
			{Name: "Revisor", Value: fmt.Sprintf("<@%s>", reviewerID), Inline: true},
			{Name: "Resultado", Value: d.Label(), Inline: true},
			{Name: "FAC", Value: req.Fac, Inline: true},
			{Name: "ORG da PM", Value: req.OrgPM, Inline: true},
			{Name: "Prova", Value: req.ClipURL},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: formatDate(time.Now())},
	}
	if _, err := r.s.ChannelMessageSendEmbed(gcfg.RODecisionLogsChannelID, embed); err != nil {
		log.Printf("[provasro] log decision: %v", err)
	}
}
