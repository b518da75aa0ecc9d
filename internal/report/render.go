package report

import (
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/user/schemasync/internal/engine"
)

// summaryTemplate is the human-readable rendering of a run report.
const summaryTemplate = `Reconciliation report
Profile:  {{ profile }}{% if version %} ({{ version }}){% endif %}
Database: {{ database }}
Backup:   {{ backup }}

Operations:
{% for r in results %}  [{{ r.outcome }}] {{ r.operation }}{% if r.reason %} ({{ r.reason }}){% endif %}
{% endfor %}
Applied: {{ applied }}, already satisfied: {{ satisfied }}, failed: {{ failed }}
{% if failed > 0 %}
Failures:
{% for f in failures %}  {{ f.operation }}: {{ f.reason }}
{% endfor %}{% endif %}`

// Renderer renders run reports through pongo2 templates.
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderString renders a template string with variables
func (r *Renderer) RenderString(template string, variables map[string]any) (string, error) {
	tpl, err := pongo2.FromString(template)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	result, err := tpl.Execute(variables)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return result, nil
}

// RenderRunReport renders the standard text summary of a run.
func (r *Renderer) RenderRunReport(rep *engine.Report) (string, error) {
	summary := rep.Summary()

	results := make([]map[string]any, 0, len(rep.Results))
	for _, result := range rep.Results {
		results = append(results, map[string]any{
			"outcome":   string(result.Outcome),
			"operation": result.Operation.String(),
			"reason":    result.Reason,
		})
	}

	failures := make([]map[string]any, 0)
	for _, failure := range rep.Failures() {
		failures = append(failures, map[string]any{
			"operation": failure.Operation.String(),
			"reason":    failure.Reason,
		})
	}

	backup := "none"
	if rep.Backup != nil {
		backup = rep.Backup.String()
	}

	return r.RenderString(summaryTemplate, map[string]any{
		"profile":   rep.Profile,
		"version":   rep.ProfileVersion,
		"database":  rep.DatabasePath,
		"backup":    backup,
		"results":   results,
		"failures":  failures,
		"applied":   summary.Applied,
		"satisfied": summary.AlreadySatisfied,
		"failed":    summary.Failed,
	})
}
