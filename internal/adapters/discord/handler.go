package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Handler decide la respuesta de cada interacción ya validada por la capa HTTP.
type Handler struct {
	recall    Recorder
	publicURL string
	retention time.Duration
	log       *slog.Logger
}

// NewHandler: publicURL es la base para el link "Ver registro"; retention sólo se muestra.
func NewHandler(recall Recorder, publicURL string, retention time.Duration, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		recall:    recall,
		publicURL: publicURL,
		retention: retention,
		log:       log,
	}
}

// Accepts indica si el nombre de comando / custom_id matchea los prefijos publicados.
func (h *Handler) Accepts(ic *discordgo.Interaction) bool {
	switch ic.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		return reCommand.MatchString(ic.ApplicationCommandData().Name)
	case discordgo.InteractionMessageComponent:
		return reCustomID.MatchString(ic.MessageComponentData().CustomID)
	case discordgo.InteractionModalSubmit:
		return reCustomID.MatchString(ic.ModalSubmitData().CustomID)
	}
	return false
}

// Handle devuelve exactamente una respuesta. Todo menos el modal de detalle
// queda registrado (request sin token + response).
func (h *Handler) Handle(ctx context.Context, ic *discordgo.Interaction, raw json.RawMessage) (resp *discordgo.InteractionResponse) {
	typ := TypeName(ic.Type)
	defer step(h.log, "interaction."+typ)()

	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("panic handling interaction", "id", ic.ID, "type", typ, "panic", rec)
			resp = ephemeralMessage("⚠️ Ocurrió un error inesperado.", nil, nil)
		}
	}()

	raw = RedactToken(raw)

	var record bool
	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		resp, record = h.handleSlashCommand(ctx, ic, raw), true
	case discordgo.InteractionMessageComponent:
		resp, record = h.handleMessageComponent(ctx, ic, raw)
	case discordgo.InteractionModalSubmit:
		resp, record = h.handleModalSubmit(ctx, ic, raw), true
	case discordgo.InteractionApplicationCommandAutocomplete:
		resp, record = h.handleAutocomplete(ctx, ic), true
	default:
		h.log.Warn("unsupported interaction type", "id", ic.ID, "type", int(ic.Type))
		return ephemeralMessage("ℹ️ Tipo de interacción no soportado.", nil, nil)
	}

	if record {
		h.recall.Record(ic.ID, raw, resp)
	}
	h.log.Info("interaction handled", "id", ic.ID, "type", typ, "response", int(resp.Type), "recorded", record)
	return resp
}
