package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-group/lotus-bot/internal/domain"
)

func TestModalValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: roInfoModalID,
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "org_pm", Value: "PM Norte"},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "motivo", Value: "invasao"},
			}},
		},
	}

	assert.Equal(t, "PM Norte", modalValue(data, "org_pm"))
	assert.Equal(t, "invasao", modalValue(data, "motivo"))
	assert.Equal(t, "", modalValue(data, "no_existe"))
}

func TestNodesFromComponentsFindsPanelControl(t *testing.T) {
	// payload armado por nosotros (valores)
	panel := buildRoPanelMessage()
	nodes := nodesFromComponents(panel.Components)
	assert.True(t, domain.HasControl(nodes, roPanelOpenID))
	assert.False(t, domain.HasControl(nodes, "otro/control"))

	// arbol como llega del gateway (punteros)
	received := []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.Button{CustomID: roApproveID},
			&discordgo.SelectMenu{CustomID: "streamers/review/role/7"},
		}},
	}
	nodes = nodesFromComponents(received)
	assert.True(t, domain.HasControl(nodes, roApproveID))
	assert.True(t, domain.HasControl(nodes, "streamers/review/role/7"))
}

func TestInteractionUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "u1"}},
	}}
	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "u2"},
	}}
	empty := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}

	assert.Equal(t, "u1", interactionUserID(guild))
	assert.Equal(t, "u2", interactionUserID(dm))
	assert.Equal(t, "", interactionUserID(empty))
}

func TestMergeRoles(t *testing.T) {
	got := mergeRoles([]string{"a", "b"}, []string{"b", "c", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got = mergeRoles(nil, []string{"x"})
	assert.Equal(t, []string{"x"}, got)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hola", truncateText("hola", 10))
	assert.Equal(t, "hola co...", truncateText("hola como estas", 10))
	assert.Len(t, truncateText("abcdef", 3), 3)
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "30/08/2026 14:05:09", formatDate(ts))
}

func TestInboundFromMessage(t *testing.T) {
	m := &discordgo.Message{
		ID:      "m1",
		Content: "mira",
		Attachments: []*discordgo.MessageAttachment{
			{ContentType: "image/png", Filename: "p.png", URL: "https://cdn/p.png"},
		},
	}
	in := inboundFromMessage(m)
	require.Len(t, in.Attachments, 1)
	assert.Equal(t, "m1", in.ID)
	assert.Equal(t, "mira", in.Content)
	assert.Equal(t, "https://cdn/p.png", in.Attachments[0].URL)
}
