package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/app/service"
	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
	"github.com/lotus-group/lotus-bot/internal/infra/storage"
)

func buildStreamerReviewMessage(requestID int64, userID string, st session.FormState) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title: "Nova candidatura de Streamer",
		Color: toneInfo.color(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Candidato", Value: fmt.Sprintf("<@%s> (`%s`)", userID, userID), Inline: true},
			{Name: statusFieldName, Value: statusPendingValue(), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Candidatura #%d - %s", requestID, formatDate(time.Now()))},
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
	if len(st.Attachments) > 0 {
		embed.Image = &discordgo.MessageEmbedImage{URL: st.Attachments[0]}
		if len(st.Attachments) > 1 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Outros anexos",
				Value: truncateText(strings.Join(st.Attachments[1:], "\n"), 1024),
			})
		}
	}
	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Aprovar", Style: discordgo.SuccessButton, CustomID: streamerReviewID("approve", requestID)},
			discordgo.Button{Label: "Negar", Style: discordgo.DangerButton, CustomID: streamerReviewID("deny", requestID)},
		},
	}
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	}
}

// handleStreamerApprove abre el select de tier. Todavia no toca la db: la
// decision recien se escribe cuando los cargos ya fueron entregados.
func (r *Router) handleStreamerApprove(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, requestID int64) {
	if !hasManageGuild(ic) {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Sem permissao", "Voce precisa da permissao **Gerenciar Servidor** para revisar."))
		return
	}
	req, err := r.streamers.Request(ctx, requestID)
	if err != nil {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Nao encontrada", "Nao achei essa candidatura no banco."))
		return
	}
	if req.Status != domain.StatusPending {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, "Ja decidida", "Essa candidatura ja foi revisada."))
		return
	}

	scfg, err := r.streamerCfg.Get(ctx, req.GuildID)
	if err != nil {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui carregar a configuracao."))
		return
	}
	opts := make([]discordgo.SelectMenuOption, 0, len(domain.StreamerRoleKeys))
	for _, key := range domain.StreamerRoleKeys {
		if scfg.RoleID(key) == "" {
			continue
		}
		opts = append(opts, discordgo.SelectMenuOption{
			Label: domain.StreamerRoleLabels[key],
			Value: key,
		})
	}
	if len(opts) == 0 {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Sem cargos", "Nenhum cargo de tier configurado para este servidor."))
		return
	}

	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    streamerReviewID("role", requestID),
				Placeholder: "Escolhe o tier do streamer",
				Options:     opts,
			},
		},
	}
	_ = SendEphemeralComplex(s, ic, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{noticeEmbed(toneInfo, "Aprovar candidatura",
			fmt.Sprintf("Escolhe o tier para <@%s>.", req.UserID))},
		Components: []discordgo.MessageComponent{row},
	})
}

// handleStreamerDeny es terminal de una: escribe la decision y edita el
// mensaje de revision (que es el mismo del boton).
func (r *Router) handleStreamerDeny(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, requestID int64) {
	defer step("streamers.deny")()
	uid := interactionUserID(ic)
	if !hasManageGuild(ic) {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Sem permissao", "Voce precisa da permissao **Gerenciar Servidor** para revisar."))
		return
	}
	if hasFinalStatus(ic.Message) {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, "Ja decidida", "Essa candidatura ja foi revisada."))
		return
	}

	req, err := r.streamers.Decide(ctx, requestID, domain.DecisionRejected, "", uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyDecided):
			_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, "Ja decidida", "Outro revisor chegou primeiro."))
		case errors.Is(err, storage.ErrNotFound):
			_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Nao encontrada", "Nao achei essa candidatura no banco."))
		default:
			log.Printf("[streamers] deny: %v", err)
			_ = SendEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui registrar a decisao."))
		}
		return
	}

	if ic.Message != nil && len(ic.Message.Embeds) > 0 {
		edited := cloneEmbed(ic.Message.Embeds[0])
		setStatusField(edited, decisionStatusValue(domain.DecisionRejected, uid))
		edited.Color = toneError.color()
		_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{edited}, []discordgo.MessageComponent{
			streamerReviewRowDisabled(requestID),
		})
	}

	r.dmStreamerResult(req, domain.DecisionRejected, "")
}

// handleStreamerRoleSelect: tier elegido. Si hay funciones configuradas
// encadena el segundo select, si no cierra la aprobacion directo.
func (r *Router) handleStreamerRoleSelect(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, requestID int64) {
	if !hasManageGuild(ic) {
		_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{
			noticeEmbed(toneError, "Sem permissao", "Voce precisa da permissao **Gerenciar Servidor**."),
		}, nil)
		return
	}
	values := ic.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	roleKey := values[0]

	if len(r.cfg.StreamerFunctionRoles) > 0 {
		opts := make([]discordgo.SelectMenuOption, 0, len(r.cfg.StreamerFunctionRoles))
		for _, key := range r.cfg.FunctionKeys() {
			opts = append(opts, discordgo.SelectMenuOption{Label: key, Value: key})
		}
		row := discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    streamerFunctionID(requestID, roleKey),
					Placeholder: "Escolhe a funcao do streamer",
					Options:     opts,
				},
			},
		}
		_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{
			noticeEmbed(toneInfo, "Falta a funcao",
				fmt.Sprintf("Tier **%s** escolhido. Agora a funcao.", domain.StreamerRoleLabels[roleKey])),
		}, []discordgo.MessageComponent{row})
		return
	}

	r.finishStreamerApproval(ctx, s, ic, requestID, roleKey, "")
}

func (r *Router) handleStreamerFunctionSelect(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, requestID int64, roleKey string) {
	if !hasManageGuild(ic) {
		_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{
			noticeEmbed(toneError, "Sem permissao", "Voce precisa da permissao **Gerenciar Servidor**."),
		}, nil)
		return
	}
	values := ic.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	r.finishStreamerApproval(ctx, s, ic, requestID, roleKey, values[0])
}

// finishStreamerApproval entrega los cargos y RECIEN ahi escribe approved.
// Si cualquier entrega falla la candidatura queda pendiente y el revisor
// puede reintentar.
func (r *Router) finishStreamerApproval(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, requestID int64, roleKey, functionKey string) {
	defer step("streamers.approve")()
	uid := interactionUserID(ic)

	fail := func(title, desc string) {
		_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{noticeEmbed(toneError, title, desc)}, nil)
	}

	req, err := r.streamers.Request(ctx, requestID)
	if err != nil {
		fail("Nao encontrada", "Nao achei essa candidatura no banco.")
		return
	}
	if req.Status != domain.StatusPending {
		_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{
			noticeEmbed(toneWarning, "Ja decidida", "Essa candidatura ja foi revisada."),
		}, nil)
		return
	}

	scfg, err := r.streamerCfg.Get(ctx, req.GuildID)
	if err != nil {
		fail("Erro", "Nao consegui carregar a configuracao.")
		return
	}
	tierRole := scfg.RoleID(roleKey)
	if tierRole == "" {
		fail("Cargo faltando", "O cargo desse tier nao esta configurado.")
		return
	}

	var funcRole, verifyRole string
	if functionKey != "" {
		fr, ok := r.cfg.StreamerFunctionRoles[functionKey]
		if !ok {
			fail("Funcao sem cargo", fmt.Sprintf("A funcao `%s` nao tem cargo mapeado. Confere STREAMER_FUNCTION_ROLES.", functionKey))
			return
		}
		if !r.guildHasRole(req.GuildID, fr) {
			fail("Cargo inexistente", "O cargo da funcao nao existe mais neste servidor.")
			return
		}
		funcRole = fr

		// el de verificacion es opcional: si no existe en la guild solo avisa
		if verify := r.cfg.StreamerVerifyRoleID; verify != "" {
			if r.guildHasRole(req.GuildID, verify) {
				verifyRole = verify
			} else {
				log.Printf("[streamers] verify role %s no existe en guild %s, pulado", verify, req.GuildID)
			}
		}
	}
	grant := approvalGrant(tierRole, funcRole, verifyRole)

	member, err := s.GuildMember(req.GuildID, req.UserID)
	if err != nil {
		log.Printf("[streamers] member %s: %v", req.UserID, err)
		fail("Erro", "Nao achei o candidato no servidor. Ele ainda esta aqui?")
		return
	}

	// una sola edicion con la union de roles: o entra todo o no entra nada
	union := mergeRoles(member.Roles, grant)
	if _, err := s.GuildMemberEdit(req.GuildID, req.UserID, &discordgo.GuildMemberParams{Roles: &union}); err != nil {
		log.Printf("[streamers] entregar cargos req=%d: %v", requestID, err)
		fail("Erro", "Nao consegui entregar os cargos. Confere a hierarquia do bot e tenta de novo.")
		return
	}

	req, err = r.streamers.Decide(ctx, requestID, domain.DecisionApproved, roleKey, uid)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyDecided) {
			// carrera perdida despues de entregar cargos; queda logueado
			log.Printf("[streamers] req=%d decidida por otro revisor despues de entregar cargos", requestID)
			_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{
				noticeEmbed(toneWarning, "Ja decidida", "Outro revisor fechou essa candidatura."),
			}, nil)
			return
		}
		log.Printf("[streamers] decide approve: %v", err)
		fail("Erro", "Cargos entregues mas nao consegui salvar a decisao. Avisa o suporte.")
		return
	}

	r.updateStreamerReviewMessage(req, domain.DecisionApproved, uid)
	r.dmStreamerResult(req, domain.DecisionApproved, roleKey)
	r.postStreamerApprovedLog(scfg, req, roleKey, functionKey, uid)

	_ = UpdateMessage(s, ic, "", []*discordgo.MessageEmbed{
		noticeEmbed(toneSuccess, "Candidatura aprovada",
			fmt.Sprintf("Cargos entregues para <@%s>.", req.UserID)),
	}, nil)
}

// approvalGrant arma la lista de cargos a entregar. En la variante solo-tier
// se entrega unicamente el tier; verificacion acompana solo a la funcion.
func approvalGrant(tierRole, funcRole, verifyRole string) []string {
	grant := []string{tierRole}
	if funcRole != "" {
		grant = append(grant, funcRole)
		if verifyRole != "" {
			grant = append(grant, verifyRole)
		}
	}
	return grant
}

// updateStreamerReviewMessage edita el embed de revision en el canal (la
// decision puede venir de un select efimero, no del mensaje original).
func (r *Router) updateStreamerReviewMessage(req storage.StreamerRequest, d domain.Decision, reviewerID string) {
	if req.ChannelID == "" || req.MessageID == "" {
		return
	}
	msg, err := r.s.ChannelMessage(req.ChannelID, req.MessageID)
	if err != nil || len(msg.Embeds) == 0 {
		log.Printf("[streamers] leer mensaje revision req=%d: %v", req.ID, err)
		return
	}
	edited := cloneEmbed(msg.Embeds[0])
	setStatusField(edited, decisionStatusValue(d, reviewerID))
	if d.Approved() {
		edited.Color = toneSuccess.color()
	} else {
		edited.Color = toneError.color()
	}
	embeds := []*discordgo.MessageEmbed{edited}
	comps := []discordgo.MessageComponent{streamerReviewRowDisabled(req.ID)}
	if _, err := r.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    req.ChannelID,
		ID:         req.MessageID,
		Embeds:     &embeds,
		Components: &comps,
	}); err != nil {
		log.Printf("[streamers] editar mensaje revision req=%d: %v", req.ID, err)
	}
}

func streamerReviewRowDisabled(requestID int64) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Aprovar", Style: discordgo.SuccessButton, CustomID: streamerReviewID("approve", requestID), Disabled: true},
			discordgo.Button{Label: "Negar", Style: discordgo.DangerButton, CustomID: streamerReviewID("deny", requestID), Disabled: true},
		},
	}
}

func (r *Router) dmStreamerResult(req storage.StreamerRequest, d domain.Decision, roleKey string) {
	var embed *discordgo.MessageEmbed
	if d.Approved() {
		embed = &discordgo.MessageEmbed{
			Title: "Candidatura APROVADA",
			Description: fmt.Sprintf("Parabens! Voce agora faz parte do time de streamers.\nTier: **%s**",
				domain.StreamerRoleLabels[roleKey]),
			Color: toneSuccess.color(),
		}
	} else {
		embed = &discordgo.MessageEmbed{
			Title: "Candidatura NEGADA",
			Description: "Dessa vez nao rolou. Da uma olhada nos requisitos e " +
				"tenta de novo mais pra frente.",
			Color: toneError.color(),
		}
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: formatDate(time.Now())}

	err := sendDM(r.s, req.UserID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
	if err != nil {
		err = sendDM(r.s, req.UserID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{noticeEmbed(toneInfo, "Candidatura revisada",
				fmt.Sprintf("Sua candidatura de streamer foi **%s**.", d.Label()))},
		})
	}
	if err != nil {
		log.Printf("[streamers] dm candidato %s: %v", req.UserID, err)
	}
}

func (r *Router) postStreamerApprovedLog(scfg storage.StreamerConfig, req storage.StreamerRequest, roleKey, functionKey, reviewerID string) {
	if scfg.ApprovedLogsChannelID == "" {
		return
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Streamer", Value: fmt.Sprintf("<@%s>", req.UserID), Inline: true},
		{Name: "Tier", Value: domain.StreamerRoleLabels[roleKey], Inline: true},
		{Name: "Revisor", Value: fmt.Sprintf("<@%s>", reviewerID), Inline: true},
	}
	if functionKey != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Funcao", Value: functionKey, Inline: true})
	}
	embed := &discordgo.MessageEmbed{
		Title:  "Streamer aprovado",
		Color:  toneSuccess.color(),
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: formatDate(time.Now())},
	}
	if _, err := r.s.ChannelMessageSendEmbed(scfg.ApprovedLogsChannelID, embed); err != nil {
		log.Printf("[streamers] log aprobados: %v", err)
	}
}
