package llm

import "context"

// PlaceholderNotice prefixes every section of offline output.
const PlaceholderNotice = "[offline placeholder]"

// PlaceholderGenerator returns canned text containing every section header the prompt asks for. It
// is wired in when no generation credential is configured.
type PlaceholderGenerator struct{}

// Generate ignores the prompt and returns the canned response.
func (PlaceholderGenerator) Generate(context.Context, string) (string, error) {
	return placeholderResponse, nil
}

const placeholderResponse = `**Key Points:**

- ` + PlaceholderNotice + ` No language model is configured, so no key points were generated.

**Overall Summary:**

` + PlaceholderNotice + ` This summary was produced in offline mode and does not describe the video.

**AI Analysis:**

` + PlaceholderNotice + ` Analysis is unavailable without a configured language model.

**Video Purpose:**

` + PlaceholderNotice + ` The purpose of the video could not be determined offline.

**Conclusions:**

` + PlaceholderNotice + ` Configure a generation API key to receive real summaries.`
