// Package templates renders the plain-text newsletter bodies.
package templates

import (
	"bytes"
	"fmt"
	"text/template"

	contententities "github.com/Conte777/brewquest/internal/domain/content/entities"
)

var (
	stateTransition = template.Must(template.New("state_transition").Parse(
		`Cheers!

{{if .CompletedState}}We just wrapped up our week in {{.CompletedState}} and we're packing the cooler for {{.NewState}}.{{else}}The journey kicks off in {{.NewState}}. Grab a glass and come along.{{end}}

Seven new beers are on the way, one each day this week. Follow along at {{.SiteURL}}.

--
BrewQuest Chronicles
Unsubscribe: {{.UnsubscribeURL}}
`))

	weeklyDigest = template.Must(template.New("weekly_digest").Parse(
		`This week in {{.State}}
{{if .Beers}}
{{range .Beers}}Day {{.DayOfWeek}}: {{.BeerName}} from {{.Brewery}}{{if .Style}} ({{.Style}}{{if .ABV}}, {{printf "%.1f" .ABV}}% ABV{{end}}){{end}}
{{end}}{{else}}
No beers published yet this week. Check back soon.
{{end}}
Read the full reviews at {{.SiteURL}}.

--
BrewQuest Chronicles
Unsubscribe: {{.UnsubscribeURL}}
`))
)

// StateTransitionData fills the state transition email
type StateTransitionData struct {
	CompletedState string
	NewState       string
	SiteURL        string
	UnsubscribeURL string
}

// WeeklyDigestData fills the weekly digest email
type WeeklyDigestData struct {
	State          string
	Beers          []contententities.Beer
	SiteURL        string
	UnsubscribeURL string
}

func StateTransitionSubject(completed, next string) string {
	if completed == "" {
		return fmt.Sprintf("The journey heads to %s", next)
	}
	return fmt.Sprintf("Goodbye %s, hello %s!", completed, next)
}

func WeeklyDigestSubject(state string) string {
	return fmt.Sprintf("Your BrewQuest weekly digest: %s", state)
}

func RenderStateTransition(data StateTransitionData) (string, error) {
	return render(stateTransition, data)
}

func RenderWeeklyDigest(data WeeklyDigestData) (string, error) {
	return render(weeklyDigest, data)
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
