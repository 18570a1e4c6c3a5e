package storage

import "time"

// CommandRegistration: una sincronización del schema de comandos contra Discord.
// GuildID vacío = comandos globales.
type CommandRegistration struct {
	ID            int64
	ApplicationID string
	GuildID       string
	SchemaHash    string
	CommandNames  []string
	RegisteredAt  time.Time
}
