package discord

import "github.com/bwmarrin/discordgo"

func f64(v float64) *float64 { return &v }

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "demo",
		Description: "Muestra comandos, botones, menús y modales",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "ping", Description: "Responde con el detalle de la interacción"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "echo",
				Description: "Devuelve lo que le pases",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "text",
						Description: "Eco de un texto",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionString, Name: "message", Description: "Texto a devolver", Required: true, Autocomplete: true, MaxLength: 200},
							{Type: discordgo.ApplicationCommandOptionBoolean, Name: "ephemeral", Description: "Sólo visible para vos"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "number",
						Description: "Eco de un número",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionNumber, Name: "value", Description: "Número a devolver", Required: true, MinValue: f64(-1000), MaxValue: 1000},
							{Type: discordgo.ApplicationCommandOptionInteger, Name: "count", Description: "Cuántas veces", MinValue: f64(1), MaxValue: 10},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "pick",
				Description: "Elegí una entidad del servidor",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type: discordgo.ApplicationCommandOptionSubCommand, Name: "user", Description: "Elegí un usuario",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionUser, Name: "target", Description: "Usuario", Required: true},
						},
					},
					{
						Type: discordgo.ApplicationCommandOptionSubCommand, Name: "role", Description: "Elegí un rol",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionRole, Name: "target", Description: "Rol", Required: true},
						},
					},
					{
						Type: discordgo.ApplicationCommandOptionSubCommand, Name: "channel", Description: "Elegí un canal",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type: discordgo.ApplicationCommandOptionChannel, Name: "target", Description: "Canal", Required: true,
								ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildVoice},
							},
						},
					},
					{
						Type: discordgo.ApplicationCommandOptionSubCommand, Name: "mentionable", Description: "Elegí un usuario o rol",
						Options: []*discordgo.ApplicationCommandOption{
							{Type: discordgo.ApplicationCommandOptionMentionable, Name: "target", Description: "Usuario o rol", Required: true},
						},
					},
				},
			},
		},
	},
}
