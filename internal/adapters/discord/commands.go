package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Testa se o bot esta vivo",
	},
	{
		Name:        "provasro",
		Description: "Publica (ou arruma) o painel de R.O no canal configurado",
	},
	{
		Name:        "streamers",
		Description: "Sistema de streamers",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "painel", Description: "Publica o painel de candidatura neste canal"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "imagem", Description: "Troca a imagem do painel (manda a imagem no chat)"},
		},
	},
}

func (r *Router) handleCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.ApplicationCommandData()
	log.Printf("[cmd] /%s by=%s guild=%s", data.Name, interactionUserID(ic), ic.GuildID)

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	switch data.Name {
	case "ping":
		ReplyEphemeral(s, ic, "pong")

	case "provasro":
		r.publishRoPanel(ctx, s, ic)

	case "streamers":
		if len(data.Options) == 0 {
			ReplyEphemeral(s, ic, "Usa `/streamers painel` ou `/streamers imagem`.")
			return
		}
		switch data.Options[0].Name {
		case "painel":
			r.publishStreamerPanel(ctx, s, ic)
		case "imagem":
			r.beginPanelImagePrompt(ctx, s, ic)
		}
	}
}

// commandGate: todos los comandos de paneles piden Gerenciar Servidor y
// respetan la blacklist de la guild. Responde el porque cuando no pasa.
func (r *Router) commandGate(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) bool {
	if ic.GuildID == "" {
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Comando de servidor", "Esse comando so funciona dentro de um servidor."))
		return false
	}
	if !hasManageGuild(ic) {
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Sem permissao", "Voce precisa da permissao **Gerenciar Servidor**."))
		return false
	}
	gcfg, err := r.guilds.Get(ctx, ic.GuildID)
	if err != nil {
		log.Printf("[cmd] guild config %s: %v", ic.GuildID, err)
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Nao consegui carregar a configuracao do servidor."))
		return false
	}
	if gcfg.IsBlacklisted(interactionUserID(ic)) {
		ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Bloqueado", "Voce esta na blacklist deste servidor."))
		return false
	}
	return true
}
