package discord

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// commandPath baja por subcomandos/grupos y devuelve el "path" (demo echo text)
// junto con las opciones de la hoja.
func commandPath(data discordgo.ApplicationCommandInteractionData) ([]string, []*discordgo.ApplicationCommandInteractionDataOption) {
	path := []string{data.Name}
	opts := data.Options
	for len(opts) == 1 &&
		(opts[0].Type == discordgo.ApplicationCommandOptionSubCommand || opts[0].Type == discordgo.ApplicationCommandOptionSubCommandGroup) {
		path = append(path, opts[0].Name)
		opts = opts[0].Options
	}
	return path, opts
}

func focusedOption(opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, o := range opts {
		if o.Focused {
			return o
		}
		if f := focusedOption(o.Options); f != nil {
			return f
		}
	}
	return nil
}

// optionValue formatea el valor para mostrarlo en el embed.
func optionValue(o *discordgo.ApplicationCommandInteractionDataOption) string {
	switch o.Type {
	case discordgo.ApplicationCommandOptionString:
		if s, ok := o.Value.(string); ok {
			return s
		}
	case discordgo.ApplicationCommandOptionInteger:
		if f, ok := o.Value.(float64); ok {
			return strconv.FormatInt(int64(f), 10)
		}
	case discordgo.ApplicationCommandOptionNumber:
		if f, ok := o.Value.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case discordgo.ApplicationCommandOptionBoolean:
		if b, ok := o.Value.(bool); ok {
			return strconv.FormatBool(b)
		}
	case discordgo.ApplicationCommandOptionUser:
		return fmt.Sprintf("<@%v>", o.Value)
	case discordgo.ApplicationCommandOptionRole:
		return fmt.Sprintf("<@&%v>", o.Value)
	case discordgo.ApplicationCommandOptionChannel:
		return fmt.Sprintf("<#%v>", o.Value)
	}
	return fmt.Sprint(o.Value)
}

func interactionUser(ic *discordgo.Interaction) *discordgo.User {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User
	}
	return ic.User
}

func userLabel(u *discordgo.User) string {
	if u == nil {
		return "-"
	}
	return fmt.Sprintf("<@%s> (%s)", u.ID, u.Username)
}

// modalValues saca custom_id → valor de los text inputs enviados.
func modalValues(data discordgo.ModalSubmitInteractionData) [][2]string {
	var out [][2]string
	for _, c := range data.Components {
		var row []discordgo.MessageComponent
		switch r := c.(type) {
		case *discordgo.ActionsRow:
			row = r.Components
		case discordgo.ActionsRow:
			row = r.Components
		}
		for _, inner := range row {
			switch ti := inner.(type) {
			case *discordgo.TextInput:
				out = append(out, [2]string{ti.CustomID, ti.Value})
			case discordgo.TextInput:
				out = append(out, [2]string{ti.CustomID, ti.Value})
			}
		}
	}
	return out
}

// truncate corta a max runas agregando "…".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
