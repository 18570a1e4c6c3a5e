package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// devuelve la respuesta y si hay que registrarla
func (h *Handler) handleMessageComponent(_ context.Context, ic *discordgo.Interaction, raw json.RawMessage) (*discordgo.InteractionResponse, bool) {
	data := ic.MessageComponentData()

	switch data.CustomID {
	case IDOpenModal:
		// el modal muestra datos en vivo, no un registro
		return detailsModal(raw), false

	default:
		detail := []*discordgo.MessageEmbedField{
			field("Custom ID", data.CustomID, true),
			field("Componente", fmt.Sprint(int(data.ComponentType)), true),
		}
		if len(data.Values) > 0 {
			detail = append(detail, field("Valores", strings.Join(data.Values, ", "), false))
		}
		return h.showcase(ic, raw, detail), true
	}
}

func (h *Handler) handleModalSubmit(_ context.Context, ic *discordgo.Interaction, raw json.RawMessage) *discordgo.InteractionResponse {
	data := ic.ModalSubmitData()

	detail := []*discordgo.MessageEmbedField{field("Custom ID", data.CustomID, true)}
	if vals := modalValues(data); len(vals) > 0 {
		lines := make([]string, 0, len(vals))
		for _, kv := range vals {
			if kv[0] == IDModalLive {
				// ya aparece dentro del payload
				continue
			}
			lines = append(lines, fmt.Sprintf("`%s`: %s", kv[0], orDash(kv[1])))
		}
		if len(lines) > 0 {
			detail = append(detail, field("Campos", strings.Join(lines, "\n"), false))
		}
	}
	return h.showcase(ic, raw, detail)
}
