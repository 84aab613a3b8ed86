package summarize

import (
	"sort"
	"strings"
)

// Sections holds the five structured fields extracted from generated text.
type Sections struct {
	KeyPoints    string
	Summary      string
	AIAnalysis   string
	VideoPurpose string
	Conclusions  string
}

type field struct {
	header   string
	missing  string
	fallback string
	get      func(Sections) string
	set      func(*Sections, string)
}

var fields = []field{
	{
		header: HeaderKeyPoints, missing: "Could not extract key points.", fallback: "Unable to generate key points",
		get: func(s Sections) string { return s.KeyPoints }, set: func(s *Sections, v string) { s.KeyPoints = v },
	},
	{
		header: HeaderSummary, missing: "Could not extract summary.", fallback: "Unable to generate summary",
		get: func(s Sections) string { return s.Summary }, set: func(s *Sections, v string) { s.Summary = v },
	},
	{
		header: HeaderAIAnalysis, missing: "Could not extract AI analysis.", fallback: "Unable to generate analysis",
		get: func(s Sections) string { return s.AIAnalysis }, set: func(s *Sections, v string) { s.AIAnalysis = v },
	},
	{
		header: HeaderVideoPurpose, missing: "Could not extract video purpose.", fallback: "Unable to generate video purpose",
		get: func(s Sections) string { return s.VideoPurpose }, set: func(s *Sections, v string) { s.VideoPurpose = v },
	},
	{
		header: HeaderConclusions, missing: "Could not extract conclusions.", fallback: "Unable to generate conclusions",
		get: func(s Sections) string { return s.Conclusions }, set: func(s *Sections, v string) { s.Conclusions = v },
	},
}

// Missing returns the headers whose sections could not be extracted.
func (s Sections) Missing() []string {
	var out []string
	for _, f := range fields {
		if f.get(s) == f.missing {
			out = append(out, f.header)
		}
	}
	return out
}

// FallbackSections is substituted for every field when text generation fails.
func FallbackSections() Sections {
	var s Sections
	for _, f := range fields {
		f.set(&s, f.fallback)
	}
	return s
}

// ParseSections splits generated text on the recognised headers. Headers may appear in any order;
// each body runs to the next recognised header or the end of the text. When a header repeats, its
// first occurrence is used. A field whose header is missing or whose body is empty gets its own
// "Could not extract" text without affecting the others.
func ParseSections(text string) Sections {
	var starts []int
	first := make(map[string]int, len(fields))

	for _, f := range fields {
		for offset := 0; ; {
			idx := strings.Index(text[offset:], f.header)
			if idx < 0 {
				break
			}
			pos := offset + idx
			if _, seen := first[f.header]; !seen {
				first[f.header] = pos
			}
			starts = append(starts, pos)
			offset = pos + len(f.header)
		}
	}
	sort.Ints(starts)

	var out Sections
	for _, f := range fields {
		f.set(&out, f.missing)

		pos, ok := first[f.header]
		if !ok {
			continue
		}
		stop := len(text)
		if next := sort.SearchInts(starts, pos+1); next < len(starts) {
			stop = starts[next]
		}
		if body := strings.TrimSpace(text[pos+len(f.header) : stop]); body != "" {
			f.set(&out, body)
		}
	}
	return out
}
