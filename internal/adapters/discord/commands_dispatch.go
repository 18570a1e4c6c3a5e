package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// todos los subcomandos de /demo responden con el showcase; cambia el detalle
func (h *Handler) handleSlashCommand(_ context.Context, ic *discordgo.Interaction, raw json.RawMessage) *discordgo.InteractionResponse {
	data := ic.ApplicationCommandData()
	path, opts := commandPath(data)
	h.log.Debug("slash", "cmd", strings.Join(path, " "), "guild", ic.GuildID)

	detail := []*discordgo.MessageEmbedField{
		field("Comando", "/"+strings.Join(path, " "), false),
	}
	if len(opts) > 0 {
		lines := make([]string, 0, len(opts))
		for _, o := range opts {
			lines = append(lines, fmt.Sprintf("`%s`: %s", o.Name, optionValue(o)))
		}
		detail = append(detail, field("Opciones", strings.Join(lines, "\n"), false))
	}
	resp := h.showcase(ic, raw, detail)
	if !wantsEphemeral(opts) {
		resp.Data.Flags = 0
	}
	return resp
}

// wantsEphemeral: por defecto sí; sólo /demo echo text ephemeral:false responde público.
func wantsEphemeral(opts []*discordgo.ApplicationCommandInteractionDataOption) bool {
	for _, o := range opts {
		if o.Name == "ephemeral" && o.Type == discordgo.ApplicationCommandOptionBoolean {
			if b, ok := o.Value.(bool); ok {
				return b
			}
		}
	}
	return true
}
