package mail

import (
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"

	"github.com/portfolio/contact-api/internal/model"
)

var bodyTemplate = template.Must(template.New("contact").Parse(`New message from your portfolio website:

Time{{if .Zone}} ({{.Zone}}){{end}}: {{.Timestamp}}
Name: {{.Name}}
Email: {{.Email}}
Subject: {{.Subject}}

Message:
{{.Message}}
`))

type bodyData struct {
	Zone      string
	Timestamp string
	Name      string
	Email     string
	Subject   string
	Message   string
}

// renderBody produces the plain-text notification body. The zone label is
// taken at the submission's own time so DST zones show the right abbreviation.
func renderBody(loc *time.Location, sub *model.ContactSubmission) (string, error) {
	var b strings.Builder
	err := bodyTemplate.Execute(&b, bodyData{
		Zone:      zoneLabel(loc, sub.Timestamp),
		Timestamp: sub.Timestamp,
		Name:      sub.Name,
		Email:     sub.Email,
		Subject:   sub.Subject,
		Message:   sub.Message,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to render mail body")
	}
	return b.String(), nil
}

// zoneLabel returns the abbreviation in force in loc at ts, e.g. "IST", or
// "" when there is no zone or ts does not parse.
func zoneLabel(loc *time.Location, ts string) string {
	if loc == nil {
		return ""
	}
	t, err := time.ParseInLocation(model.TimestampLayout, ts, loc)
	if err != nil {
		return ""
	}
	return t.Format("MST")
}
