package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidsummary/backend/internal/videos"
)

func TestBuildPromptIncludesHeadersInOrder(t *testing.T) {
	prompt, err := BuildPrompt(videos.Metadata{
		Title:        "Never Gonna Give You Up",
		Description:  "Official video",
		ChannelTitle: "Rick Astley",
		Duration:     "3m 33s",
		Tags:         []string{"rick", "80s"},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Title: Never Gonna Give You Up")
	assert.Contains(t, prompt, "Channel: Rick Astley")
	assert.Contains(t, prompt, "Duration: 3m 33s")
	assert.Contains(t, prompt, "Tags: rick, 80s")
	assert.Contains(t, prompt, "Official video")

	last := -1
	for _, header := range []string{HeaderKeyPoints, HeaderSummary, HeaderAIAnalysis, HeaderVideoPurpose, HeaderConclusions} {
		idx := strings.Index(prompt, header+"\n\n")
		require.Greater(t, idx, last, "header %s out of order or missing blank line", header)
		last = idx
	}
}

func TestBuildPromptOmitsEmptyOptionalLines(t *testing.T) {
	prompt, err := BuildPrompt(videos.Metadata{Title: "t", Duration: "N/A"})
	require.NoError(t, err)

	assert.NotContains(t, prompt, "Channel:")
	assert.NotContains(t, prompt, "Duration:")
	assert.NotContains(t, prompt, "Tags:")
	assert.Contains(t, prompt, "(no description provided)")
}

func TestBuildPromptTruncatesLongDescriptions(t *testing.T) {
	prompt, err := BuildPrompt(videos.Metadata{Title: "t", Description: strings.Repeat("é", maxDescriptionRunes+100)})
	require.NoError(t, err)

	assert.Contains(t, prompt, strings.Repeat("é", maxDescriptionRunes)+"...")
	assert.NotContains(t, prompt, strings.Repeat("é", maxDescriptionRunes+1))
}
