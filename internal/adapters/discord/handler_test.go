package discord

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	id   string
	req  json.RawMessage
	resp *discordgo.InteractionResponse
}

type fakeRecorder struct{ items []recorded }

func (f *fakeRecorder) Record(id string, req json.RawMessage, resp *discordgo.InteractionResponse) {
	f.items = append(f.items, recorded{id: id, req: req, resp: resp})
}

const slashJSON = `{
  "id": "A",
  "application_id": "app-1",
  "type": 2,
  "guild_id": "g-1",
  "channel_id": "c-1",
  "locale": "es-ES",
  "token": "secret-token",
  "version": 1,
  "member": {"user": {"id": "u-1", "username": "alice"}, "roles": []},
  "data": {
    "id": "cmd-1",
    "name": "demo",
    "type": 1,
    "options": [{
      "name": "echo", "type": 2,
      "options": [{
        "name": "text", "type": 1,
        "options": [
          {"name": "message", "type": 3, "value": "hola"},
          {"name": "ephemeral", "type": 5, "value": true}
        ]
      }]
    }]
  }
}`

const openModalJSON = `{
  "id": "M",
  "application_id": "app-1",
  "type": 3,
  "guild_id": "g-1",
  "channel_id": "c-1",
  "token": "secret-token",
  "version": 1,
  "member": {"user": {"id": "u-1", "username": "alice"}},
  "data": {"custom_id": "demo:open-modal", "component_type": 2}
}`

const colorJSON = `{
  "id": "S",
  "application_id": "app-1",
  "type": 3,
  "channel_id": "c-1",
  "version": 1,
  "user": {"id": "u-2", "username": "bob"},
  "data": {"custom_id": "demo:color", "component_type": 3, "values": ["green"]}
}`

const modalSubmitJSON = `{
  "id": "F",
  "application_id": "app-1",
  "type": 5,
  "guild_id": "g-1",
  "channel_id": "c-1",
  "version": 1,
  "member": {"user": {"id": "u-1", "username": "alice"}},
  "data": {
    "custom_id": "demo:modal",
    "components": [
      {"type": 1, "components": [{"type": 4, "custom_id": "demo:modal:note", "value": "una nota"}]},
      {"type": 1, "components": [{"type": 4, "custom_id": "demo:modal:live", "value": "{}"}]}
    ]
  }
}`

const autocompleteJSON = `{
  "id": "AC",
  "application_id": "app-1",
  "type": 4,
  "guild_id": "g-1",
  "channel_id": "c-1",
  "version": 1,
  "member": {"user": {"id": "u-1", "username": "alice"}},
  "data": {
    "id": "cmd-1", "name": "demo", "type": 1,
    "options": [{
      "name": "echo", "type": 2,
      "options": [{
        "name": "text", "type": 1,
        "options": [{"name": "message", "type": 3, "value": "HOLA", "focused": true}]
      }]
    }]
  }
}`

func decode(t *testing.T, raw string) *discordgo.Interaction {
	t.Helper()
	var ic discordgo.Interaction
	require.NoError(t, json.Unmarshal([]byte(raw), &ic))
	return &ic
}

func newTestHandler(rec Recorder) *Handler {
	return NewHandler(rec, "https://demo.example/", 15*time.Minute, nil)
}

type flatComponent struct {
	kind     discordgo.ComponentType
	customID string
	url      string
}

func flatten(t *testing.T, comps []discordgo.MessageComponent) []flatComponent {
	t.Helper()
	var out []flatComponent
	for _, c := range comps {
		row, ok := c.(discordgo.ActionsRow)
		require.True(t, ok, "top level component must be an actions row, got %T", c)
		for _, inner := range row.Components {
			switch v := inner.(type) {
			case discordgo.Button:
				out = append(out, flatComponent{kind: v.Type(), customID: v.CustomID, url: v.URL})
			case discordgo.SelectMenu:
				out = append(out, flatComponent{kind: v.Type(), customID: v.CustomID})
			case discordgo.TextInput:
				out = append(out, flatComponent{kind: v.Type(), customID: v.CustomID})
			default:
				t.Fatalf("unexpected component %T", inner)
			}
		}
	}
	return out
}

func TestHandle_SlashCommandShowcase(t *testing.T) {
	rec := &fakeRecorder{}
	h := newTestHandler(rec)
	ic := decode(t, slashJSON)

	resp := h.Handle(context.Background(), ic, json.RawMessage(slashJSON))
	require.NotNil(t, resp)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	require.NotNil(t, resp.Data)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)

	got := flatten(t, resp.Data.Components)
	want := []flatComponent{
		{kind: discordgo.ButtonComponent, url: "https://demo.example/interactions/A"},
		{kind: discordgo.ButtonComponent, customID: IDAck},
		{kind: discordgo.ButtonComponent, customID: IDOpenModal},
		{kind: discordgo.ComponentType(discordgo.StringSelectMenu), customID: IDColor},
		{kind: discordgo.ComponentType(discordgo.RoleSelectMenu), customID: IDRole},
		{kind: discordgo.ComponentType(discordgo.UserSelectMenu), customID: IDUser},
	}
	assert.Equal(t, want, got)

	require.Len(t, resp.Data.Embeds, 2)
	info := resp.Data.Embeds[0]
	var values []string
	for _, f := range info.Fields {
		values = append(values, f.Name+"="+f.Value)
	}
	assert.Contains(t, values, "ID=A")
	assert.Contains(t, values, "Tipo=application_command")
	assert.Contains(t, values, "Usuario=<@u-1> (alice)")
	assert.Contains(t, values, "Comando=/demo echo text")
	assert.Contains(t, values, "Opciones=`message`: hola\n`ephemeral`: true")

	payload := resp.Data.Embeds[1].Description
	assert.True(t, strings.HasPrefix(payload, "```json\n"))
	assert.Contains(t, payload, `"name": "demo"`)
	assert.NotContains(t, payload, "secret-token")

	require.Len(t, rec.items, 1)
	assert.Equal(t, "A", rec.items[0].id)
	assert.Same(t, resp, rec.items[0].resp)
	assert.NotContains(t, string(rec.items[0].req), "secret-token")
	assert.Contains(t, string(rec.items[0].req), `"guild_id":"g-1"`)
}

func TestHandle_EphemeralOption(t *testing.T) {
	rec := &fakeRecorder{}
	h := newTestHandler(rec)
	public := strings.Replace(slashJSON, `"type": 5, "value": true`, `"type": 5, "value": false`, 1)

	resp := h.Handle(context.Background(), decode(t, public), json.RawMessage(public))
	require.NotNil(t, resp.Data)
	assert.Equal(t, discordgo.MessageFlags(0), resp.Data.Flags)
	assert.NotNil(t, resp.Data.AllowedMentions)
	assert.Len(t, rec.items, 1)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"flags"`)

	// sin la opción sigue siendo efímero
	ping := `{"id":"P2","application_id":"app-1","type":2,"token":"t","version":1,
"user":{"id":"u-1","username":"alice"},
"data":{"id":"cmd-1","name":"demo","type":1,"options":[{"name":"ping","type":1}]}}`
	resp = h.Handle(context.Background(), decode(t, ping), json.RawMessage(ping))
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
}

func TestHandle_RecoversFromPanic(t *testing.T) {
	rec := &fakeRecorder{}
	h := newTestHandler(rec)

	// sin data: ApplicationCommandData() entra en pánico
	ic := &discordgo.Interaction{ID: "boom", Type: discordgo.InteractionApplicationCommand}

	var resp *discordgo.InteractionResponse
	require.NotPanics(t, func() {
		resp = h.Handle(context.Background(), ic, json.RawMessage(`{"id":"boom","type":2}`))
	})
	require.NotNil(t, resp)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	assert.Contains(t, resp.Data.Content, "error inesperado")
	assert.Empty(t, rec.items)
}

func TestHandle_OpenModalIsNotRecorded(t *testing.T) {
	rec := &fakeRecorder{}
	h := newTestHandler(rec)
	ic := decode(t, openModalJSON)

	resp := h.Handle(context.Background(), ic, json.RawMessage(openModalJSON))
	require.NotNil(t, resp)
	assert.Equal(t, discordgo.InteractionResponseModal, resp.Type)
	assert.Equal(t, IDModal, resp.Data.CustomID)
	assert.NotEmpty(t, resp.Data.Title)
	assert.Empty(t, rec.items)

	got := flatten(t, resp.Data.Components)
	require.Len(t, got, 2)
	assert.Equal(t, IDModalNote, got[0].customID)
	assert.Equal(t, IDModalLive, got[1].customID)

	live := resp.Data.Components[1].(discordgo.ActionsRow).Components[0].(discordgo.TextInput)
	assert.Contains(t, live.Value, `"custom_id": "demo:open-modal"`)
	assert.NotContains(t, live.Value, "secret-token")
}

func TestHandle_SelectMenuClick(t *testing.T) {
	rec := &fakeRecorder{}
	h := newTestHandler(rec)
	ic := decode(t, colorJSON)

	resp := h.Handle(context.Background(), ic, json.RawMessage(colorJSON))
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)

	var values []string
	for _, f := range resp.Data.Embeds[0].Fields {
		values = append(values, f.Name+"="+f.Value)
	}
	assert.Contains(t, values, "Custom ID=demo:color")
	assert.Contains(t, values, "Valores=green")
	assert.Contains(t, values, "Usuario=<@u-2> (bob)")
	assert.Contains(t, values, "Servidor=-")

	require.Len(t, rec.items, 1)
	assert.Equal(t, "S", rec.items[0].id)
}

func TestHandle_ModalSubmit(t *testing.T) {
	rec := &fakeRecorder{}
	h := newTestHandler(rec)
	ic := decode(t, modalSubmitJSON)

	resp := h.Handle(context.Background(), ic, json.RawMessage(modalSubmitJSON))
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)

	var values []string
	for _, f := range resp.Data.Embeds[0].Fields {
		values = append(values, f.Name+"="+f.Value)
	}
	assert.Contains(t, values, "Tipo=modal_submit")
	assert.Contains(t, values, "Campos=`demo:modal:note`: una nota")

	require.Len(t, rec.items, 1)
	assert.Equal(t, "F", rec.items[0].id)
}

func TestHandle_Autocomplete(t *testing.T) {
	rec := &fakeRecorder{}
	h := newTestHandler(rec)
	ic := decode(t, autocompleteJSON)

	resp := h.Handle(context.Background(), ic, json.RawMessage(autocompleteJSON))
	assert.Equal(t, discordgo.InteractionApplicationCommandAutocompleteResult, resp.Type)

	var names []string
	for _, c := range resp.Data.Choices {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"hola mundo", "hola desde un webhook"}, names)
	assert.Len(t, rec.items, 1)
}

func TestAccepts(t *testing.T) {
	h := newTestHandler(&fakeRecorder{})

	assert.True(t, h.Accepts(decode(t, slashJSON)))
	assert.True(t, h.Accepts(decode(t, openModalJSON)))
	assert.True(t, h.Accepts(decode(t, modalSubmitJSON)))
	assert.True(t, h.Accepts(decode(t, autocompleteJSON)))

	other := decode(t, strings.Replace(colorJSON, "demo:color", "queue_join", 1))
	assert.False(t, h.Accepts(other))

	otherCmd := decode(t, strings.Replace(slashJSON, `"name": "demo"`, `"name": "ping"`, 1))
	assert.False(t, h.Accepts(otherCmd))

	assert.False(t, h.Accepts(&discordgo.Interaction{Type: discordgo.InteractionPing}))
}

func TestDescribe(t *testing.T) {
	md := Describe()
	assert.Equal(t, "^demo", md.Accepts["application_command"])
	assert.Equal(t, "^demo:", md.Accepts["message_component"])
	assert.Equal(t, "^demo:", md.Accepts["modal_submit"])
	require.Len(t, md.Commands, 1)
	assert.Equal(t, "demo", md.Commands[0].Name)

	var groups []string
	for _, o := range md.Commands[0].Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommandGroup {
			groups = append(groups, o.Name)
		}
	}
	assert.Equal(t, []string{"echo", "pick"}, groups)
}

func TestRedactToken(t *testing.T) {
	out := RedactToken(json.RawMessage(`{"id":"1","token":"x"}`))
	assert.JSONEq(t, `{"id":"1"}`, string(out))

	same := json.RawMessage(`{"id":"1"}`)
	assert.Equal(t, same, RedactToken(same))
	assert.Equal(t, "not json", string(RedactToken(json.RawMessage("not json"))))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, "ñá…", truncate("ñáéí", 3))
}
