package discord

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/domain"
)

type tone int

const (
	toneInfo tone = iota
	toneSuccess
	toneError
	toneWarning
)

func (t tone) color() int {
	switch t {
	case toneSuccess:
		return 0x2ecc71
	case toneError:
		return 0xe74c3c
	case toneWarning:
		return 0xf1c40f
	}
	return 0x3498db
}

func (t tone) prefix() string {
	switch t {
	case toneSuccess:
		return "OK"
	case toneError:
		return "ERRO"
	case toneWarning:
		return "ALERTA"
	}
	return "INFO"
}

// noticeEmbed es el aviso corto estandar del bot.
func noticeEmbed(t tone, title, desc string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       t.prefix() + " | " + title,
		Description: desc,
		Color:       t.color(),
		Footer:      &discordgo.MessageEmbedFooter{Text: formatDate(time.Now())},
	}
}

const statusFieldName = "Status"

func statusPendingValue() string { return "PENDENTE" }

func decisionStatusValue(d domain.Decision, reviewerID string) string {
	return fmt.Sprintf("%s por <@%s>", d.Label(), reviewerID)
}

// hasFinalStatus mira el campo Status del embed: si ya dice APROVADO o
// RECUSADO la revision es terminal aunque la db diga otra cosa.
func hasFinalStatus(msg *discordgo.Message) bool {
	if msg == nil || len(msg.Embeds) == 0 {
		return false
	}
	v := embedField(msg.Embeds[0], statusFieldName)
	return strings.Contains(v, "APROVADO") || strings.Contains(v, "RECUSADO")
}

func embedField(e *discordgo.MessageEmbed, name string) string {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f != nil && f.Name == name {
			return f.Value
		}
	}
	return ""
}

// setStatusField reemplaza (o agrega) el campo Status.
func setStatusField(e *discordgo.MessageEmbed, value string) {
	for _, f := range e.Fields {
		if f != nil && f.Name == statusFieldName {
			f.Value = value
			return
		}
	}
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name: statusFieldName, Value: value, Inline: true,
	})
}

var reUserIDInBackticks = regexp.MustCompile("`([0-9]{17,20})`")

// requesterIDFromEmbed recupera el id del solicitante del propio embed de
// revision, para poder avisarle aunque la fila ya no exista.
func requesterIDFromEmbed(e *discordgo.MessageEmbed) string {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f == nil {
			continue
		}
		if m := reUserIDInBackticks.FindStringSubmatch(f.Value); m != nil {
			return m[1]
		}
	}
	return ""
}

func cloneEmbed(e *discordgo.MessageEmbed) *discordgo.MessageEmbed {
	if e == nil {
		return &discordgo.MessageEmbed{}
	}
	out := *e
	out.Fields = make([]*discordgo.MessageEmbedField, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f == nil {
			continue
		}
		cp := *f
		out.Fields = append(out.Fields, &cp)
	}
	return &out
}
