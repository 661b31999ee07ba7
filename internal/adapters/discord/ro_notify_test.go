package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-group/lotus-bot/internal/app/session"
)

func TestBuildRoNotifyMessage(t *testing.T) {
	draft := session.RoDraft{
		GuildID:   "g1",
		UserID:    "123456789012345678",
		OrgPM:     "PM Norte",
		Fac:       "Lotus",
		Motivo:    "invasao na base",
		CreatedAt: time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC),
	}
	url := analysisMessageURL("g1", "c1", "m1")
	assert.Equal(t, "https://discord.com/channels/g1/c1/m1", url)

	payload := buildRoNotifyMessage(draft, url)
	require.Len(t, payload.Embeds, 1)
	desc := payload.Embeds[0].Description
	assert.Contains(t, desc, "<@123456789012345678>")
	assert.Contains(t, desc, "PM Norte")
	assert.Contains(t, desc, "Lotus")
	assert.Contains(t, desc, "invasao na base")
	assert.Contains(t, desc, "31/08/2026 15:04:05")
	assert.Contains(t, desc, "cargo de notificacao")

	require.Len(t, payload.Components, 1)
	row, ok := payload.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)
	btn, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, discordgo.LinkButton, btn.Style)
	assert.Equal(t, url, btn.URL)
}
