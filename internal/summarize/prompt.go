package summarize

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/vidsummary/backend/internal/videos"
)

// Section headers the model is asked to emit, in prompt order.
const (
	HeaderKeyPoints    = "**Key Points:**"
	HeaderSummary      = "**Overall Summary:**"
	HeaderAIAnalysis   = "**AI Analysis:**"
	HeaderVideoPurpose = "**Video Purpose:**"
	HeaderConclusions  = "**Conclusions:**"
)

// maxDescriptionRunes bounds the description embedded in the prompt.
const maxDescriptionRunes = 5000

var promptTemplate = template.Must(template.New("prompt").Parse(`Analyze this YouTube video using its title and description and write a structured summary.

Title: {{.Title}}
{{- if .Channel}}
Channel: {{.Channel}}
{{- end}}
{{- if .Duration}}
Duration: {{.Duration}}
{{- end}}
{{- if .Tags}}
Tags: {{.Tags}}
{{- end}}
Description:
{{.Description}}

Respond with exactly the five sections below, in this order. Put each header on its own line exactly as written, followed by a blank line and then the section body. Do not add any other headers.

{{.Headers.KeyPoints}}

5-7 numbered key points covering the main content.

{{.Headers.Summary}}

A concise overview of the video in one paragraph.

{{.Headers.AIAnalysis}}

3-4 sentences on the content's structure, effectiveness and likely impact.

{{.Headers.VideoPurpose}}

One or two sentences on why the video was made and who it is for.

{{.Headers.Conclusions}}

2-3 sentences capturing the main takeaways.
`))

type promptHeaders struct {
	KeyPoints, Summary, AIAnalysis, VideoPurpose, Conclusions string
}

type promptData struct {
	Title       string
	Channel     string
	Duration    string
	Tags        string
	Description string
	Headers     promptHeaders
}

// BuildPrompt renders the single generation prompt for a video.
func BuildPrompt(meta videos.Metadata) (string, error) {
	description := strings.TrimSpace(meta.Description)
	if description == "" {
		description = "(no description provided)"
	}
	if runes := []rune(description); len(runes) > maxDescriptionRunes {
		description = string(runes[:maxDescriptionRunes]) + "..."
	}

	data := promptData{
		Title:       strings.TrimSpace(meta.Title),
		Channel:     meta.ChannelTitle,
		Description: description,
		Tags:        strings.Join(meta.Tags, ", "),
		Headers: promptHeaders{
			KeyPoints:    HeaderKeyPoints,
			Summary:      HeaderSummary,
			AIAnalysis:   HeaderAIAnalysis,
			VideoPurpose: HeaderVideoPurpose,
			Conclusions:  HeaderConclusions,
		},
	}
	if meta.Duration != "" && meta.Duration != "N/A" {
		data.Duration = meta.Duration
	}

	var b strings.Builder
	if err := promptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}
