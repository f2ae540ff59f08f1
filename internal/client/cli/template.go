package cli

const usageTemplate = `
Teranga Client

Usage:
  teranga [OPTIONS] COMMAND

Options:
  --version        Show version information
  --config PATH    Path to configuration file
  --server URL     Server URL (overrides configuration)
  --db PATH        Path to local database (overrides configuration)

Commands:
  register              Create a new account
  login                 Login to the server
  logout                Logout and clear local session
  status                Show session status
  contents              List published contents (-region, -type, -status)
  show <id>             Show a content item (gated items require access)
  publish               Submit new content for moderation
  unlock <id>           Purchase access to a gated content item
  verify <tx-id>        Check the status of a payment transaction
  transactions          List your payment transactions
  transaction <tx-id>   Show a single transaction
  cancel <tx-id>        Cancel a pending transaction
  regions               List regions
  types [id]            List content types, or the contents of one type
  languages             List languages

Examples:
  teranga login
  teranga contents -region 3 -status published
  teranga show 12
  teranga unlock 12
  teranga verify 42
  teranga --server https://example.com contents
`

const contentsListTemplate = `
=== Contents ===

{{- if eq (len .) 0 }}
No contents found.
{{ else }}
Found {{len .}} item(s):

{{- range . }}
- {{ .Title }}
   ID:     {{ .ID }}
   Status: {{ .Status }}
   Access: {{ .AccessTier }}
   {{- if gt .Price 0.0 }}
   Price:  {{ printf "%.0f" .Price }}
   {{- end }}

{{- end }}
Use 'teranga show <id>' to read an item.
{{- end }}
`

const contentDetailTemplate = `
=== {{ .Title }} ===

ID:     {{ .ID }}
Status: {{ .Status }}
Access: {{ .AccessTier }}
{{- if .Region }}
Region: {{ .Region.Name }}
{{- end }}
{{- if .Language }}
Langue: {{ .Language.Name }}
{{- end }}
{{- if .Type }}
Type:   {{ .Type.Name }}
{{- end }}

{{ .Body }}
`
