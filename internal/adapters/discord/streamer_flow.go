package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
)

// handleStreamerStart: boton del panel -> sesion de formulario + primera
// pregunta por DM.
func (r *Router) handleStreamerStart(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, guildID string) {
	uid := interactionUserID(ic)

	gcfg, err := r.guilds.Get(ctx, guildID)
	if err == nil && gcfg.IsBlacklisted(uid) {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Bloqueado", "Voce esta na blacklist deste servidor."))
		return
	}

	if _, err := r.streamers.StartForm(uid, guildID); err != nil {
		if errors.Is(err, session.ErrFormInProgress) {
			_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, "Formulario em andamento",
				"Voce ja tem um formulario aberto. Responde na DM ou manda `cancelar` la."))
			return
		}
		log.Printf("[streamers] start form: %v", err)
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui abrir o formulario, tenta de novo."))
		return
	}

	q, _ := r.streamers.Forms().Question(0)
	intro := noticeEmbed(toneInfo, "Formulario de Streamer",
		"Bora la! Responde uma pergunta por mensagem.\n"+
			"Para desistir, manda `cancelar` a qualquer momento.")
	first := questionEmbed(0, r.streamers.Forms().Total(), q)

	if err := sendDM(s, uid, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{intro, first}}); err != nil {
		// DM trancada: sin canal de formulario no hay sesion
		r.streamers.AbortForm(uid)
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "DM fechada",
			"Nao consegui te chamar na DM. Libera as mensagens diretas do servidor e clica de novo."))
		return
	}
	_ = SendEphemeral(s, ic, "", noticeEmbed(toneSuccess, "Te chamei na DM", "Responde o formulario por la."))
}

// handleStreamerInfo responde los botones Requisitos/Beneficios apuntando
// al canal configurado.
func (r *Router) handleStreamerInfo(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, kind, guildID string) {
	scfg, err := r.streamerCfg.Get(ctx, guildID)
	if err != nil {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui carregar a configuracao."))
		return
	}
	var (
		title     string
		channelID string
	)
	if kind == "requirements" {
		title, channelID = "Requisitos", scfg.RequirementsChannelID
	} else {
		title, channelID = "Beneficios", scfg.BenefitsChannelID
	}
	if channelID == "" {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, title, "Canal ainda nao configurado. Pergunta para a staff."))
		return
	}
	_ = SendEphemeral(s, ic, "", noticeEmbed(toneInfo, title, fmt.Sprintf("Confere tudo em <#%s>.", channelID)))
}

func questionEmbed(step, total int, q domain.StreamerQuestion) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Pergunta %d/%d", step+1, total),
		Description: q.Label,
		Color:       toneInfo.color(),
	}
	if q.RequireImage {
		e.Footer = &discordgo.MessageEmbedFooter{Text: "Essa resposta precisa de uma imagem anexada"}
	}
	return e
}

// handleFormMessage procesa cada DM contra la sesion del autor.
func (r *Router) handleFormMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	uid := m.Author.ID
	if _, ok := r.streamers.State(uid); !ok {
		return
	}

	if session.IsCancelKeyword(m.Content) {
		r.streamers.AbortForm(uid)
		_, _ = s.ChannelMessageSendEmbed(m.ChannelID, noticeEmbed(toneWarning, "Formulario cancelado",
			"Tranquilo, nada foi enviado. Se quiser recomecar e so clicar no painel de novo."))
		return
	}

	outcome, st, ok := r.streamers.HandleMessage(uid, inboundFromMessage(m.Message))
	if !ok {
		return
	}

	switch outcome {
	case session.AdvanceDuplicate:
		// re-entrega del gateway, nada que hacer

	case session.AdvanceInvalid:
		q, _ := r.streamers.Forms().Question(st.Step)
		_, _ = s.ChannelMessageSendEmbed(m.ChannelID, noticeEmbed(toneError, "Preciso de uma imagem",
			"Essa pergunta so aceita imagem (png, jpg, gif...). Manda de novo com o anexo.\n\n**"+q.Label+"**"))

	case session.AdvanceNext:
		q, _ := r.streamers.Forms().Question(st.Step)
		_, _ = s.ChannelMessageSendEmbed(m.ChannelID, questionEmbed(st.Step, r.streamers.Forms().Total(), q))

	case session.AdvanceCompleted:
		// solo el mensaje que cerro el formulario dispara el resumen;
		// mensajes tardios caen aca con otro LastMessageID
		if st.LastMessageID != m.ID {
			return
		}
		_, err := s.ChannelMessageSendComplex(m.ChannelID, buildFormSummaryMessage(uid, st))
		if err != nil {
			log.Printf("[streamers] resumen dm user=%s: %v", uid, err)
		}
	}
}

func buildFormSummaryMessage(userID string, st session.FormState) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title: "Confere suas respostas",
		Description: "Revisa tudo antes de enviar. Se algo estiver errado, cancela e " +
			"comeca de novo pelo painel.",
		Color: toneInfo.color(),
	}
	for _, q := range domain.StreamerQuestions {
		a := st.Answers[q.Key]
		if a == "" {
			a = session.AnswerEmpty
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  q.Label,
			Value: truncateText(a, 1024),
		})
	}
	if n := len(st.Attachments); n > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Anexos",
			Value: fmt.Sprintf("%d arquivo(s) anexado(s)", n),
		})
	}
	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Enviar", Style: discordgo.SuccessButton, CustomID: streamerConfirmID(userID)},
			discordgo.Button{Label: "Cancelar", Style: discordgo.DangerButton, CustomID: streamerCancelID(userID)},
		},
	}
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	}
}

// handleStreamerConfirm manda la candidatura al canal de revision. Si el
// envio falla la sesion y el resumen quedan vivos para reintentar.
func (r *Router) handleStreamerConfirm(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, ownerID string) {
	uid := interactionUserID(ic)
	if uid != ownerID {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Botao alheio", "Esse formulario nao e seu."))
		return
	}

	st, ok := r.streamers.State(uid)
	if !ok {
		_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{
			noticeEmbed(toneWarning, "Formulario encerrado", "Esse formulario ja foi enviado ou cancelado."),
		}, nil)
		return
	}

	scfg, err := r.streamerCfg.Get(ctx, st.GuildID)
	if err != nil {
		log.Printf("[streamers] config: %v", err)
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui carregar a configuracao. Tenta de novo."))
		return
	}
	if scfg.ApplicationsChannelID == "" {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, "Canal nao configurado",
			"O canal de candidaturas nao esta configurado. Avisa a staff e tenta depois."))
		return
	}

	reqID, err := r.streamers.Register(ctx, uid, st)
	if err != nil {
		log.Printf("[streamers] register: %v", err)
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui salvar a candidatura, tenta de novo."))
		return
	}

	msg, err := s.ChannelMessageSendComplex(scfg.ApplicationsChannelID, buildStreamerReviewMessage(reqID, uid, st))
	if err != nil {
		log.Printf("[streamers] post revision: %v", err)
		// sin mensaje de revision la fila no sirve, afuera
		if derr := r.streamers.Discard(ctx, reqID); derr != nil {
			log.Printf("[streamers] discard req=%d: %v", reqID, derr)
		}
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro",
			"Nao consegui mandar para a staff. Seu formulario continua salvo aqui, tenta o Enviar de novo."))
		return
	}
	if err := r.streamers.AttachMessage(ctx, reqID, scfg.ApplicationsChannelID, msg.ID); err != nil {
		log.Printf("[streamers] attach message req=%d: %v", reqID, err)
	}

	r.streamers.Finish(uid)
	_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{
		noticeEmbed(toneSuccess, "Candidatura enviada",
			"Sua candidatura foi para a staff. Resultado sai aqui na DM."),
	}, nil)
}

func (r *Router) handleStreamerCancel(s *discordgo.Session, ic *discordgo.InteractionCreate, ownerID string) {
	uid := interactionUserID(ic)
	if uid != ownerID {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Botao alheio", "Esse formulario nao e seu."))
		return
	}
	r.streamers.AbortForm(uid)
	_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{
		noticeEmbed(toneWarning, "Formulario cancelado", "Nada foi enviado. O painel fica la se mudar de ideia."),
	}, nil)
}
