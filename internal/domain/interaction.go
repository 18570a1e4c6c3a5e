package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/discordgo"
)

// BaseError permite declarar errores de dominio como constantes.
type BaseError string

func (e BaseError) Error() string { return string(e) }

const (
	// ErrInteractionNotFound: no hay registro (o ya expiró) para ese id.
	ErrInteractionNotFound BaseError = "interaction not found"
)

// InteractionRecord es el par request/response que guardamos en memoria.
// Request es el JSON que llegó de Discord, sin el token.
type InteractionRecord struct {
	ID        string                         `json:"id"`
	Request   json.RawMessage                `json:"request"`
	Response  *discordgo.InteractionResponse `json:"response"`
	Timestamp time.Time                      `json:"timestamp"`
}
