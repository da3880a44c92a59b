package cli

import (
	"fmt"
	"text/template"

	"github.com/iudanet/usersync/internal/client/reconcile"
)

var templates = template.Must(template.New("cli").Parse(""))

func init() {
	for name, text := range map[string]string{
		pendingTemplate: pendingText,
		statusTemplate:  statusText,
		replayTemplate:  replayText,
		helpTemplate:    helpText,
	} {
		template.Must(templates.New(name).Parse(text))
	}
}

const (
	pendingTemplate = "pending"
	statusTemplate  = "status"
	replayTemplate  = "replay"
	helpTemplate    = "help"
)

type statusView struct {
	reconcile.Status
	Server string
}

const pendingText = `
=== Pending Operations ===

{{- if eq (len .) 0 }}
Queue is empty. All changes are on the server.
{{ else }}
{{ len . }} operation(s) in replay order:

{{- range . }}
{{- if .IsInsert }}
- #{{ .PendingID }} insert {{ .Name }} (age {{ .Age }}) as {{ .LocalTempID }}
{{- else }}
- #{{ .PendingID }} delete {{ .ServerID }}
{{- end }}
{{- end }}
{{ end }}`

const statusText = `
=== Status ===

Server:    {{ .Server }}
Mode:      {{ .Mode }}
Pending:   {{ .Pending }} operation(s)
Last sync: {{ if .LastSync.IsZero }}never{{ else }}{{ .LastSync.Format "2006-01-02 15:04:05" }}{{ end }}
`

const replayText = `
=== Synchronization ===

{{- if .Skipped }}
Another synchronization is already running.
{{- else }}
Replayed:  {{ .Replayed }} operation(s)
Remaining: {{ .Remaining }} operation(s)
{{- if .Stopped }}
Stopped:   {{ .Err }}
{{- else }}
✓ Local mirror refreshed from the server
{{- end }}
{{- end }}
`

const helpText = `Commands:
  add <name> <age>   Add user (name may contain spaces, age is the last word)
  del <id>           Delete user by id (negative ids are not yet synchronized)
  list               Show users
  pending            Show operations waiting for the server
  status             Show connection and queue status
  help               Show this help
  quit               Exit
`

func (c *Cli) render(name string, data any) error {
	if err := templates.ExecuteTemplate(c.io, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
