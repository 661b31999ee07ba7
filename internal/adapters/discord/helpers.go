package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
)

// interactionUserID funciona tanto en guild (Member) como en DM (User).
func interactionUserID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}

// modalValue saca el valor de un text input por custom id.
func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if ti, ok := c.(*discordgo.TextInput); ok && ti.CustomID == customID {
				return ti.Value
			}
		}
	}
	return ""
}

// nodesFromComponents traduce el arbol de discordgo a nodos genericos para
// el scan de paneles. Acepta punteros (mensajes recibidos) y valores
// (payloads armados por nosotros).
func nodesFromComponents(comps []discordgo.MessageComponent) []domain.ComponentNode {
	out := make([]domain.ComponentNode, 0, len(comps))
	for _, c := range comps {
		switch v := c.(type) {
		case *discordgo.ActionsRow:
			out = append(out, domain.ComponentNode{Children: nodesFromComponents(v.Components)})
		case discordgo.ActionsRow:
			out = append(out, domain.ComponentNode{Children: nodesFromComponents(v.Components)})
		case *discordgo.Button:
			out = append(out, domain.ComponentNode{CustomID: v.CustomID})
		case discordgo.Button:
			out = append(out, domain.ComponentNode{CustomID: v.CustomID})
		case *discordgo.SelectMenu:
			out = append(out, domain.ComponentNode{CustomID: v.CustomID})
		case discordgo.SelectMenu:
			out = append(out, domain.ComponentNode{CustomID: v.CustomID})
		case *discordgo.TextInput:
			out = append(out, domain.ComponentNode{CustomID: v.CustomID})
		case discordgo.TextInput:
			out = append(out, domain.ComponentNode{CustomID: v.CustomID})
		}
	}
	return out
}

// inboundFromMessage despoja el mensaje del transporte para el form store.
func inboundFromMessage(m *discordgo.Message) session.InboundMessage {
	in := session.InboundMessage{ID: m.ID, Content: m.Content}
	for _, a := range m.Attachments {
		in.Attachments = append(in.Attachments, session.Attachment{
			ContentType: a.ContentType,
			Name:        a.Filename,
			URL:         a.URL,
		})
	}
	return in
}

// formatDate: dd/MM/yyyy HH:mm:ss, como siempre se mostro en los embeds.
func formatDate(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// mergeRoles une los roles actuales del member con los nuevos, sin repetir.
func mergeRoles(current, add []string) []string {
	seen := make(map[string]struct{}, len(current)+len(add))
	out := make([]string, 0, len(current)+len(add))
	for _, id := range current {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range add {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
