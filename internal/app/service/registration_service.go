package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/discord-interactions-demo/internal/infra/storage"
)

// SyncResult resume una corrida de Sync.
type SyncResult struct {
	Skipped    bool
	SchemaHash string
	Commands   []string
}

// RegistrationService sube el schema de comandos a Discord (bulk overwrite)
// y sólo lo hace si cambió respecto de la última vez para ese scope.
type RegistrationService struct {
	api      CommandsAPI
	repo     RegistrationRepo // puede ser nil (sin DB = siempre sobrescribe)
	appID    string
	guildID  string
	commands []*discordgo.ApplicationCommand
	log      *slog.Logger
}

func NewRegistrationService(api CommandsAPI, repo RegistrationRepo, appID, guildID string, commands []*discordgo.ApplicationCommand, log *slog.Logger) *RegistrationService {
	if log == nil {
		log = slog.Default()
	}
	return &RegistrationService{
		api:      api,
		repo:     repo,
		appID:    appID,
		guildID:  guildID,
		commands: commands,
		log:      log,
	}
}

func (s *RegistrationService) Sync(ctx context.Context, force bool) (SyncResult, error) {
	if s.appID == "" {
		return SyncResult{}, errors.New("registration: missing application id")
	}
	hash, err := SchemaHash(s.commands)
	if err != nil {
		return SyncResult{}, err
	}
	res := SyncResult{SchemaHash: hash, Commands: commandNames(s.commands)}

	if s.repo != nil && !force {
		last, err := s.repo.Latest(ctx, s.appID, s.guildID)
		switch {
		case err == nil && last.SchemaHash == hash:
			s.log.Info("commands unchanged, skipping registration",
				"app", s.appID, "guild", s.guildID, "hash", short(hash), "since", last.RegisteredAt)
			res.Skipped = true
			return res, nil
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			// sin historial legible, registramos igual
			s.log.Warn("registration history unavailable", "err", err)
		}
	}

	created, err := s.api.BulkOverwrite(s.appID, s.guildID, s.commands)
	if err != nil {
		return SyncResult{}, fmt.Errorf("bulk overwrite: %w", err)
	}
	s.log.Info("commands registered", "app", s.appID, "guild", s.guildID, "count", len(created), "hash", short(hash))

	if s.repo != nil {
		if _, err := s.repo.Insert(ctx, storage.CommandRegistration{
			ApplicationID: s.appID,
			GuildID:       s.guildID,
			SchemaHash:    hash,
			CommandNames:  res.Commands,
		}); err != nil {
			return res, fmt.Errorf("save registration: %w", err)
		}
	}
	return res, nil
}

// SchemaHash: sha256 del JSON del schema.
func SchemaHash(cmds []*discordgo.ApplicationCommand) (string, error) {
	b, err := json.Marshal(cmds)
	if err != nil {
		return "", fmt.Errorf("marshal commands: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func commandNames(cmds []*discordgo.ApplicationCommand) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Name)
	}
	return out
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
