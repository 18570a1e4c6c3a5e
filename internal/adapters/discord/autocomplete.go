package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const maxChoices = 25

var suggestions = []string{
	"hola mundo",
	"hola desde un webhook",
	"botones y menús",
	"modal de prueba",
	"select de colores",
	"select de roles",
	"select de usuarios",
	"autocompletado",
	"interacción efímera",
	"ping pong",
}

func (h *Handler) handleAutocomplete(_ context.Context, ic *discordgo.Interaction) *discordgo.InteractionResponse {
	data := ic.ApplicationCommandData()

	prefix := ""
	if f := focusedOption(data.Options); f != nil {
		prefix = strings.ToLower(strings.TrimSpace(optionValue(f)))
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, maxChoices)
	for _, s := range suggestions {
		if prefix != "" && !strings.HasPrefix(strings.ToLower(s), prefix) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: s, Value: s})
		if len(choices) == maxChoices {
			break
		}
	}
	return autocompleteResult(choices)
}
