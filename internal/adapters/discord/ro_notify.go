package discord

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/app/session"
)

// Aviso para los roles de notificacion. Placeholders simples, editable en
// un solo lugar.
const (
	roNotifyTitle = "Nova Solicitacao: R.O"
	roNotifyIntro = "Uma nova solicitacao de R.O foi criada no servidor."

	roNotifyTemplate = " - `Autor:` {autor}\n\n" +
		"- `ORG PM solicitante:` {org_pm}\n\n" +
		" - `FAC:` {fac}\n\n" +
		" - **Motivo:** {motivo}\n\n" +
		"-# Data: {data}"

	roNotifyFooter = "-# Voce recebeu esta notificacao pois tem um cargo de " +
		"notificacao configurado no painel de R.O. Para parar de receber, " +
		"remova o cargo ou peca para um administrador remover por voce."
)

func applyPlaceholders(tpl string, vars map[string]string) string {
	out := tpl
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

// buildRoNotifyMessage arma la DM completa: titulo, intro, datos de la
// solicitud, footer de opt-out y boton al mensaje de analisis.
func buildRoNotifyMessage(draft session.RoDraft, analysisMessageURL string) *discordgo.MessageSend {
	body := applyPlaceholders(roNotifyTemplate, map[string]string{
		"autor":  fmt.Sprintf("<@%s> (`%s`)", draft.UserID, draft.UserID),
		"org_pm": draft.OrgPM,
		"fac":    draft.Fac,
		"motivo": draft.Motivo,
		"data":   formatDate(draft.CreatedAt),
	})
	embed := &discordgo.MessageEmbed{
		Title:       roNotifyTitle,
		Description: roNotifyIntro + "\n\n" + body + "\n\n" + roNotifyFooter,
		Color:       toneWarning.color(),
	}
	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label: "Acessar Canal de Analise",
				Style: discordgo.LinkButton,
				URL:   analysisMessageURL,
			},
		},
	}
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	}
}

func analysisMessageURL(guildID, channelID, messageID string) string {
	return "https://discord.com/channels/" + guildID + "/" + channelID + "/" + messageID
}

// notifyRoSubmission manda DM a todo member con alguno de los roles de
// notificacion. Best-effort total: DMs cerradas se loguean y ya.
func (r *Router) notifyRoSubmission(guildID string, notifyRoles []string, draft session.RoDraft, analysisChannelID, analysisMessageID string) {
	if len(notifyRoles) == 0 {
		return
	}
	wanted := make(map[string]struct{}, len(notifyRoles))
	for _, id := range notifyRoles {
		wanted[id] = struct{}{}
	}
	payload := buildRoNotifyMessage(draft, analysisMessageURL(guildID, analysisChannelID, analysisMessageID))

	var (
		after    string
		notified int
		failed   int
	)
	for {
		members, err := r.s.GuildMembers(guildID, after, 1000)
		if err != nil {
			log.Printf("[provasro] listar members guild=%s: %v", guildID, err)
			return
		}
		if len(members) == 0 {
			break
		}
		for _, m := range members {
			if m.User == nil {
				continue
			}
			after = m.User.ID
			if m.User.Bot {
				continue
			}
			if !hasAnyRole(m.Roles, wanted) {
				continue
			}
			if err := sendDM(r.s, m.User.ID, payload); err != nil {
				failed++
				continue
			}
			notified++
		}
		if len(members) < 1000 {
			break
		}
	}
	log.Printf("[provasro] notificacion de staff guild=%s ok=%d fail=%d", guildID, notified, failed)
}

func hasAnyRole(roles []string, wanted map[string]struct{}) bool {
	for _, id := range roles {
		if _, ok := wanted[id]; ok {
			return true
		}
	}
	return false
}
