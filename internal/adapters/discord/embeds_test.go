package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-group/lotus-bot/internal/domain"
)

func reviewMessage(status string) *discordgo.Message {
	return &discordgo.Message{
		Embeds: []*discordgo.MessageEmbed{{
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Solicitante", Value: "<@123456789012345678> (`123456789012345678`)"},
				{Name: statusFieldName, Value: status},
			},
		}},
	}
}

func TestHasFinalStatus(t *testing.T) {
	assert.False(t, hasFinalStatus(reviewMessage(statusPendingValue())))
	assert.True(t, hasFinalStatus(reviewMessage("APROVADO por <@999>")))
	assert.True(t, hasFinalStatus(reviewMessage("RECUSADO por <@999>")))
	assert.False(t, hasFinalStatus(nil))
	assert.False(t, hasFinalStatus(&discordgo.Message{}))
}

func TestSetStatusField(t *testing.T) {
	msg := reviewMessage(statusPendingValue())
	e := msg.Embeds[0]

	setStatusField(e, decisionStatusValue(domain.DecisionApproved, "999"))
	assert.Equal(t, "APROVADO por <@999>", embedField(e, statusFieldName))
	// no duplica el campo
	count := 0
	for _, f := range e.Fields {
		if f.Name == statusFieldName {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// embed sin campo Status lo gana
	bare := &discordgo.MessageEmbed{}
	setStatusField(bare, "PENDENTE")
	assert.Equal(t, "PENDENTE", embedField(bare, statusFieldName))
}

func TestRequesterIDFromEmbed(t *testing.T) {
	msg := reviewMessage(statusPendingValue())
	assert.Equal(t, "123456789012345678", requesterIDFromEmbed(msg.Embeds[0]))
	assert.Equal(t, "", requesterIDFromEmbed(&discordgo.MessageEmbed{}))
	assert.Equal(t, "", requesterIDFromEmbed(nil))
}

func TestCloneEmbedIsDeep(t *testing.T) {
	msg := reviewMessage(statusPendingValue())
	orig := msg.Embeds[0]

	cp := cloneEmbed(orig)
	setStatusField(cp, "APROVADO por <@999>")

	require.Equal(t, statusPendingValue(), embedField(orig, statusFieldName))
	assert.Equal(t, "APROVADO por <@999>", embedField(cp, statusFieldName))
}

func TestNoticeEmbedTones(t *testing.T) {
	e := noticeEmbed(toneError, "Erro", "algo fallo")
	assert.Equal(t, "ERRO | Erro", e.Title)
	assert.Equal(t, toneError.color(), e.Color)

	e = noticeEmbed(toneSuccess, "Pronto", "ok")
	assert.Equal(t, "OK | Pronto", e.Title)
}
