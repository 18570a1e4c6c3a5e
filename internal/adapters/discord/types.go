package discord

import (
	"encoding/json"
	"regexp"

	"github.com/bwmarrin/discordgo"
)

// Prefijos que enrutamos hacia este handler. Todo lo demás se rechaza arriba.
const (
	CommandPrefix  = "demo"
	CustomIDPrefix = "demo:"
)

// custom_id de los componentes del showcase
const (
	IDAck       = CustomIDPrefix + "ack"
	IDOpenModal = CustomIDPrefix + "open-modal"
	IDColor     = CustomIDPrefix + "color"
	IDRole      = CustomIDPrefix + "role"
	IDUser      = CustomIDPrefix + "user"
	IDModal     = CustomIDPrefix + "modal"
	IDModalNote = IDModal + ":note"
	IDModalLive = IDModal + ":live"
)

var (
	reCommand  = regexp.MustCompile(`^` + regexp.QuoteMeta(CommandPrefix))
	reCustomID = regexp.MustCompile(`^` + regexp.QuoteMeta(CustomIDPrefix))
)

// Recorder es donde guardamos el par request/response
// (lo implementa internal/infra/storage.RecallStore).
type Recorder interface {
	Record(id string, request json.RawMessage, response *discordgo.InteractionResponse)
}

// Accepts describe qué patrón de identificador acepta cada tipo de interacción.
type Accepts map[string]string

// Metadata es lo que publicamos en GET /metadata.
type Metadata struct {
	Accepts  Accepts                         `json:"accepts"`
	Commands []*discordgo.ApplicationCommand `json:"commands"`
}

func Describe() Metadata {
	return Metadata{
		Accepts: Accepts{
			TypeName(discordgo.InteractionApplicationCommand):             reCommand.String(),
			TypeName(discordgo.InteractionApplicationCommandAutocomplete): reCommand.String(),
			TypeName(discordgo.InteractionMessageComponent):               reCustomID.String(),
			TypeName(discordgo.InteractionModalSubmit):                    reCustomID.String(),
		},
		Commands: Commands,
	}
}

// TypeName es el nombre del tipo tal como lo usa la API (logs, métricas, metadata).
func TypeName(t discordgo.InteractionType) string {
	switch t {
	case discordgo.InteractionPing:
		return "ping"
	case discordgo.InteractionApplicationCommand:
		return "application_command"
	case discordgo.InteractionMessageComponent:
		return "message_component"
	case discordgo.InteractionApplicationCommandAutocomplete:
		return "application_command_autocomplete"
	case discordgo.InteractionModalSubmit:
		return "modal_submit"
	}
	return "unknown"
}
