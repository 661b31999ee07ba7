package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/app/service"
	"github.com/lotus-group/lotus-bot/internal/app/session"
)

// handleRoPanelOpen: boton del panel -> modal con org/fac/motivo. El modal
// tiene que ser la primera respuesta, asi que los gates van antes.
func (r *Router) handleRoPanelOpen(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	uid := interactionUserID(ic)
	gcfg, err := r.guilds.Get(ctx, ic.GuildID)
	if err != nil {
		log.Printf("[provasro] guild config %s: %v", ic.GuildID, err)
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui carregar a configuracao do servidor."))
		return
	}
	if gcfg.IsBlacklisted(uid) {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Bloqueado", "Voce esta na blacklist deste servidor."))
		return
	}

	_ = RespondModal(s, ic, &discordgo.InteractionResponseData{
		CustomID: roInfoModalID,
		Title:    "Solicitar R.O em FAC",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  "org_pm",
					Label:     "Qual ORG da PM aplicou a acao?",
					Style:     discordgo.TextInputShort,
					Required:  true,
					MaxLength: service.MaxOrgPMLen,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  "fac",
					Label:     "Qual a sua FAC?",
					Style:     discordgo.TextInputShort,
					Required:  true,
					MaxLength: service.MaxFacLen,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "motivo",
					Label:       "Motivo do R.O",
					Style:       discordgo.TextInputParagraph,
					Required:    true,
					MaxLength:   service.MaxMotivoLen,
					Placeholder: "Conta o que aconteceu, com horario se tiver",
				},
			}},
		},
	})
}

// handleRoInfoModal: valida, guarda el borrador y ofrece el boton para
// mandar el link de la prueba.
func (r *Router) handleRoInfoModal(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.ModalSubmitData()
	uid := interactionUserID(ic)

	_, err := r.ro.SubmitInfo(ic.GuildID, uid,
		modalValue(data, "org_pm"),
		modalValue(data, "fac"),
		modalValue(data, "motivo"),
	)
	if err != nil {
		if errors.Is(err, service.ErrEmptyField) {
			_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Formulario incompleto", "Preenche todos os campos e tenta de novo."))
			return
		}
		log.Printf("[provasro] submit info: %v", err)
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui registrar, tenta de novo."))
		return
	}

	embed := noticeEmbed(toneInfo, "Quase la!",
		"Agora falta a prova: clica no botao e cola o **link do clip** (YouTube, Twitch, Medal...).\n"+
			"Voce tem **10 minutos** antes do formulario expirar.")
	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Enviar link da prova",
				Style:    discordgo.SuccessButton,
				CustomID: roUploadOpenID(ic.GuildID, uid),
			},
		},
	}
	_ = SendEphemeralComplex(s, ic, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	})
}

// handleRoUploadOpen: boton "enviar prova". Gate de actor + borrador vivo,
// despues abre el modal del link.
func (r *Router) handleRoUploadOpen(s *discordgo.Session, ic *discordgo.InteractionCreate, guildID, userID string) {
	uid := interactionUserID(ic)
	if uid != userID || ic.GuildID != guildID {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Botao alheio", "Esse botao nao e para voce."))
		return
	}
	if _, ok := r.ro.Draft(guildID, uid); !ok {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, "Formulario expirado", "Passaram os 10 minutos. Comeca de novo pelo painel."))
		return
	}

	_ = RespondModal(s, ic, &discordgo.InteractionResponseData{
		CustomID: roUploadModalID,
		Title:    "Link da prova",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "clip_url",
					Label:       "URL do clip (http/https)",
					Style:       discordgo.TextInputShort,
					Required:    true,
					Placeholder: "https://clips.twitch.tv/...",
				},
			}},
		},
	})
}

// handleRoUploadModal cierra el flujo: publica el embed de revision en el
// canal de analisis y persiste la solicitud. Si la db falla, el mensaje
// publicado se borra y el borrador queda para reintentar.
func (r *Router) handleRoUploadModal(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	defer step("provasro.upload")()
	_ = DeferEphemeral(s, ic)
	uid := interactionUserID(ic)

	draft, ok := r.ro.Draft(ic.GuildID, uid)
	if !ok {
		ReplyEphemeral(s, ic, "", noticeEmbed(toneWarning, "Formulario expirado", "Passaram os 10 minutos. Comeca de novo pelo painel."))
		return
	}

	clipURL, ok := service.NormalizeClipURL(modalValue(ic.ModalSubmitData(), "clip_url"))
	if !ok {
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Link invalido", "Manda uma URL completa, comecando com http:// ou https://."))
		return
	}

	gcfg, err := r.guilds.Get(ctx, ic.GuildID)
	if err != nil {
		log.Printf("[provasro] guild config: %v", err)
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui carregar a configuracao do servidor."))
		return
	}
	// canal ausente o sin permisos: aborto que consume el borrador, el
	// usuario arranca de cero cuando la staff arregle la config
	if gcfg.ROAnalysisChannelID == "" {
		r.ro.DiscardDraft(ic.GuildID, uid)
		ReplyEphemeral(s, ic, "", noticeEmbed(toneWarning, "Canal nao configurado", "O canal de analise de R.O nao esta configurado. Avisa a staff."))
		return
	}
	if !r.botCanPostIn(gcfg.ROAnalysisChannelID) {
		r.ro.DiscardDraft(ic.GuildID, uid)
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Sem permissao", "Nao tenho permissao para publicar no canal de analise. Avisa a staff."))
		return
	}

	msg, err := s.ChannelMessageSendComplex(gcfg.ROAnalysisChannelID, buildRoReviewMessage(draft, clipURL))
	if err != nil {
		log.Printf("[provasro] post revision: %v", err)
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui publicar a solicitacao, tenta de novo."))
		return
	}

	if _, err := r.ro.Register(ctx, draft, gcfg.ROAnalysisChannelID, msg.ID, clipURL); err != nil {
		// sin fila en la db el mensaje de revision es un huerfano
		log.Printf("[provasro] register: %v", err)
		if derr := s.ChannelMessageDelete(gcfg.ROAnalysisChannelID, msg.ID); derr != nil {
			log.Printf("[provasro] rollback mensaje %s: %v", msg.ID, derr)
		}
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui salvar a solicitacao, tenta de novo."))
		return
	}

	go r.notifyRoSubmission(gcfg.GuildID, gcfg.RONotifyRoleIDs, draft, gcfg.ROAnalysisChannelID, msg.ID)

	ReplyEphemeral(s, ic, "", noticeEmbed(toneSuccess, "Solicitacao enviada",
		"Sua solicitacao de R.O foi para analise. A staff te responde na DM."))
}

func buildRoReviewMessage(draft session.RoDraft, clipURL string) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title: "Nova solicitacao de R.O",
		Color: toneInfo.color(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Solicitante", Value: fmt.Sprintf("<@%s> (`%s`)", draft.UserID, draft.UserID), Inline: true},
			{Name: statusFieldName, Value: statusPendingValue(), Inline: true},
			{Name: "ORG da PM", Value: draft.OrgPM, Inline: true},
			{Name: "FAC", Value: draft.Fac, Inline: true},
			{Name: "Motivo", Value: draft.Motivo},
			{Name: "Prova", Value: clipURL},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: formatDate(draft.CreatedAt)},
	}
	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Aceitar", Style: discordgo.SuccessButton, CustomID: roApproveID},
			discordgo.Button{Label: "Recusar", Style: discordgo.DangerButton, CustomID: roRejectID},
		},
	}
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	}
}
