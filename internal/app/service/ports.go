package service

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/discord-interactions-demo/internal/infra/storage"
)

// Lo implementa internal/infra/storage.RegistrationRepo
type RegistrationRepo interface {
	Latest(ctx context.Context, appID, guildID string) (storage.CommandRegistration, error)
	Insert(ctx context.Context, c storage.CommandRegistration) (int64, error)
}

// CommandsAPI es lo único que necesitamos de la sesión de Discord.
// Ver SessionCommands para el adapter sobre *discordgo.Session.
type CommandsAPI interface {
	BulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error)
}

// SessionCommands adapta *discordgo.Session a CommandsAPI.
type SessionCommands struct{ S *discordgo.Session }

func (a SessionCommands) BulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	return a.S.ApplicationCommandBulkOverwrite(appID, guildID, cmds)
}
