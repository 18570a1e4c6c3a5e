package discord

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// límites de Discord
const (
	embedDescMax  = 4096
	embedFieldMax = 1024
	textInputMax  = 4000
)

const (
	colorInfo    = 0x5865F2
	colorPayload = 0x2B2D31
)

var colorOptions = []discordgo.SelectMenuOption{
	{Label: "Rojo", Value: "red", Description: "#ED4245"},
	{Label: "Verde", Value: "green", Description: "#57F287"},
	{Label: "Azul", Value: "blue", Description: "#5865F2"},
}

// showcase arma la respuesta estándar: detalle del sobre, payload crudo y los controles.
func (h *Handler) showcase(ic *discordgo.Interaction, raw json.RawMessage, detail []*discordgo.MessageEmbedField) *discordgo.InteractionResponse {
	fields := []*discordgo.MessageEmbedField{
		field("ID", ic.ID, true),
		field("Tipo", TypeName(ic.Type), true),
		field("Aplicación", ic.AppID, true),
		field("Servidor", ic.GuildID, true),
		field("Canal", ic.ChannelID, true),
		field("Usuario", userLabel(interactionUser(ic)), true),
		field("Idioma", string(ic.Locale), true),
	}
	fields = append(fields, detail...)

	info := &discordgo.MessageEmbed{
		Title:  "Interacción",
		Color:  colorInfo,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: "Registrada por " + h.retentionLabel()},
	}
	payload := &discordgo.MessageEmbed{
		Title:       "Payload",
		Color:       colorPayload,
		Description: codeBlock(prettyData(raw), embedDescMax),
	}
	return ephemeralMessage("", []*discordgo.MessageEmbed{info, payload}, h.showcaseComponents(ic.ID))
}

// orden fijo: link, ack, modal, color, rol, usuario
func (h *Handler) showcaseComponents(interactionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Ver registro", Style: discordgo.LinkButton, URL: h.recallURL(interactionID)},
			discordgo.Button{Label: "OK", Style: discordgo.SuccessButton, CustomID: IDAck},
			discordgo.Button{Label: "Abrir modal", Style: discordgo.PrimaryButton, CustomID: IDOpenModal},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{MenuType: discordgo.StringSelectMenu, CustomID: IDColor, Placeholder: "Elegí un color", Options: colorOptions},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{MenuType: discordgo.RoleSelectMenu, CustomID: IDRole, Placeholder: "Elegí un rol"},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{MenuType: discordgo.UserSelectMenu, CustomID: IDUser, Placeholder: "Elegí un usuario"},
		}},
	}
}

// modal con datos en vivo de la interacción que lo abrió
func detailsModal(raw json.RawMessage) *discordgo.InteractionResponse {
	return modalResponse(IDModal, "Detalle de la interacción", []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    IDModalNote,
				Label:       "Nota",
				Style:       discordgo.TextInputShort,
				Placeholder: "Escribí algo para devolverlo",
				MaxLength:   100,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:  IDModalLive,
				Label:     "Interacción en vivo",
				Style:     discordgo.TextInputParagraph,
				Value:     truncate(pretty(raw), textInputMax),
				MaxLength: textInputMax,
			},
		}},
	})
}

func (h *Handler) recallURL(id string) string {
	return strings.TrimRight(h.publicURL, "/") + "/interactions/" + url.PathEscape(id)
}

func (h *Handler) retentionLabel() string {
	if h.retention <= 0 {
		return "un rato"
	}
	return h.retention.String()
}

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: truncate(orDash(value), embedFieldMax), Inline: inline}
}

// prettyData indenta sólo el objeto "data" del request.
func prettyData(raw json.RawMessage) string {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Data) == 0 {
		return "{}"
	}
	return pretty(env.Data)
}

func pretty(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func codeBlock(s string, max int) string {
	const head, tail = "```json\n", "\n```"
	return head + truncate(s, max-len(head)-len(tail)) + tail
}

// RedactToken saca el token de la interacción antes de guardar o mostrar el payload.
func RedactToken(raw json.RawMessage) json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}
	if _, ok := m["token"]; !ok {
		return raw
	}
	delete(m, "token")
	out, err := json.Marshal(m)
	if err != nil {
		return raw
	}
	return out
}
