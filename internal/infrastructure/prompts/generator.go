package prompts

import (
	"bytes"
	"sort"
	"text/template"

	"coding-agent/internal/domain/entity"
)

type systemPromptData struct {
	Tools []entity.ToolDefinition
}

// GenerateSystemPrompt renders the system prompt with the tool list taken from
// the registry, so the prompt never drifts from the registered tools.
func GenerateSystemPrompt(tools []entity.ToolDefinition) (string, error) {
	sorted := make([]entity.ToolDefinition, len(tools))
	copy(sorted, tools)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	tmpl, err := template.New("system").Parse(systemTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, systemPromptData{Tools: sorted}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
