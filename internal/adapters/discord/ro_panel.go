package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/domain"
)

func buildRoPanelMessage() *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title: "Sistema de R.O - FAC",
		Description: "Sofreu uma acao irregular da PM contra sua FAC?\n" +
			"Clica no botao abaixo, preenche o formulario e manda o link da prova (clip).\n\n" +
			"A staff analisa e te responde na DM.",
		Color: toneInfo.color(),
	}
	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Solicitar R.O em FAC",
				Style:    discordgo.PrimaryButton,
				CustomID: roPanelOpenID,
			},
		},
	}
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	}
}

// findPanelMessages: barre los ultimos 100 mensajes del canal buscando
// mensajes del bot que lleven el control del panel.
func (r *Router) findPanelMessages(channelID, controlID string) ([]*discordgo.Message, error) {
	msgs, err := r.s.ChannelMessages(channelID, 100, "", "", "")
	if err != nil {
		return nil, err
	}
	botID := r.s.State.User.ID
	found := make([]*discordgo.Message, 0, 1)
	for _, m := range msgs {
		if m.Author == nil || m.Author.ID != botID {
			continue
		}
		if domain.HasControl(nodesFromComponents(m.Components), controlID) {
			found = append(found, m)
		}
	}
	return found, nil
}

// reconcileRoPanel deja exactamente UN panel vivo en el canal: edita el
// primero que encuentre, borra duplicados, publica si no hay ninguno.
func (r *Router) reconcileRoPanel(channelID string) error {
	found, err := r.findPanelMessages(channelID, roPanelOpenID)
	if err != nil {
		return err
	}
	payload := buildRoPanelMessage()

	if len(found) == 0 {
		_, err := r.s.ChannelMessageSendComplex(channelID, payload)
		return err
	}

	keep := found[0]
	_, err = r.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         keep.ID,
		Embeds:     &payload.Embeds,
		Components: &payload.Components,
	})
	if err != nil {
		return err
	}
	for _, dup := range found[1:] {
		if err := r.s.ChannelMessageDelete(channelID, dup.ID); err != nil {
			log.Printf("[provasro] no pude borrar panel duplicado %s: %v", dup.ID, err)
		}
	}
	return nil
}

// EnsureRoPanels corre al arranque para toda guild con canal de panel
// configurado.
func (r *Router) EnsureRoPanels(ctx context.Context) {
	for _, g := range r.s.State.Guilds {
		gcfg, err := r.guilds.Get(ctx, g.ID)
		if err != nil {
			log.Printf("[provasro] guild config %s: %v", g.ID, err)
			continue
		}
		if gcfg.ROPanelChannelID == "" {
			continue
		}
		if err := r.reconcileRoPanel(gcfg.ROPanelChannelID); err != nil {
			log.Printf("[provasro] reconcile panel guild=%s: %v", g.ID, err)
		}
	}
}

func (r *Router) publishRoPanel(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if !r.commandGate(ctx, s, ic) {
		return
	}
	gcfg, err := r.guilds.Get(ctx, ic.GuildID)
	if err != nil {
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui carregar a configuracao."))
		return
	}
	if gcfg.ROPanelChannelID == "" {
		ReplyEphemeral(s, ic, "", noticeEmbed(toneWarning, "Canal nao configurado", "Configura o canal do painel de R.O antes de publicar."))
		return
	}
	if err := r.reconcileRoPanel(gcfg.ROPanelChannelID); err != nil {
		log.Printf("[provasro] publish panel: %v", err)
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui publicar o painel, confere as permissoes do bot."))
		return
	}
	ReplyEphemeral(s, ic, "", noticeEmbed(toneSuccess, "Painel publicado",
		fmt.Sprintf("Painel de R.O ativo em <#%s>.", gcfg.ROPanelChannelID)))
}
