package notify

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

type Kind string

const (
	KindBookingClient Kind = "booking.client"
	KindBookingAdmin  Kind = "booking.admin"
	KindContactClient Kind = "contact.client"
	KindContactAdmin  Kind = "contact.admin"
)

type template struct {
	subject string
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

func mustTemplate(kind Kind, subject, html, text string) template {
	return template{
		subject: subject,
		html:    htmltemplate.Must(htmltemplate.New(string(kind)).Parse(html)),
		text:    texttemplate.Must(texttemplate.New(string(kind)).Parse(text)),
	}
}

var templates = map[Kind]template{
	KindBookingClient: mustTemplate(KindBookingClient,
		"Recibimos tu solicitud de cita",
		`<p>Hola {{.Name}},</p>
<p>Recibimos tu solicitud para <strong>{{.Service}}</strong> el <strong>{{.Date}}</strong> a las <strong>{{.Time}}</strong>.</p>
<p>Te contactaremos para confirmarla.</p>`,
		`Hola {{.Name}}, recibimos tu solicitud para {{.Service}} el {{.Date}} a las {{.Time}}. Te contactaremos para confirmarla.`,
	),
	KindBookingAdmin: mustTemplate(KindBookingAdmin,
		"Nueva cita solicitada",
		`<p>Nueva cita de <strong>{{.Name}}</strong> ({{.Email}}, {{.Phone}}).</p>
<p>{{.Service}}: {{.Date}} {{.Time}}</p>
{{if .Notes}}<p>Notas: {{.Notes}}</p>{{end}}`,
		`Nueva cita de {{.Name}} ({{.Email}}, {{.Phone}}). {{.Service}}: {{.Date}} {{.Time}}.{{if .Notes}} Notas: {{.Notes}}{{end}}`,
	),
	KindContactClient: mustTemplate(KindContactClient,
		"Gracias por escribirnos",
		`<p>Hola {{.Name}},</p><p>Recibimos tu mensaje sobre "{{.Subject}}" y te responderemos pronto.</p>`,
		`Hola {{.Name}}, recibimos tu mensaje sobre "{{.Subject}}" y te responderemos pronto.`,
	),
	KindContactAdmin: mustTemplate(KindContactAdmin,
		"Nuevo mensaje de contacto",
		`<p><strong>{{.Name}}</strong> ({{.Email}}) escribió sobre "{{.Subject}}":</p><p>{{.Message}}</p>`,
		`{{.Name}} ({{.Email}}) escribió sobre "{{.Subject}}": {{.Message}}`,
	),
}

func render(kind Kind, payload any) (subject, html, text string, err error) {
	t, ok := templates[kind]
	if !ok {
		return "", "", "", errUnknownKind
	}

	var hb, tb strings.Builder
	if err := t.html.Execute(&hb, payload); err != nil {
		return "", "", "", err
	}
	if err := t.text.Execute(&tb, payload); err != nil {
		return "", "", "", err
	}
	return t.subject, hb.String(), tb.String(), nil
}
