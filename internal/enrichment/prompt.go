package enrichment

import (
	"fmt"
	"strings"
)

const defaultAudience = "a weekly reading newsletter"

// BuildPrompt asks for a single-paragraph summary of at most words words and
// for the most relevant tags from vocabulary, in a fixed SUMMARY/TAGS layout.
func BuildPrompt(text string, vocabulary []string, words int, audience string) string {
	if audience == "" {
		audience = defaultAudience
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an assistant helping tag and summarise articles for %s.\n\n", audience)
	fmt.Fprintf(&sb, "Your task is to write a %d-word summary of the article that keeps its key ideas,\n", words)
	sb.WriteString("and to label the article with the most relevant tag(s) from this list:\n")
	sb.WriteString(strings.Join(vocabulary, ", "))
	sb.WriteString("\n\nProvided below is the scraped text from the article.\n\n")
	sb.WriteString(text)
	sb.WriteString("\n\nInstructions:\n")
	sb.WriteString("- Only include tags from the list above. Do not invent new tags.\n")
	sb.WriteString("- Separate multiple tags with commas.\n")
	sb.WriteString("- If unsure, choose the single closest tag.\n")
	sb.WriteString("- Do not explain your choices.\n")
	fmt.Fprintf(&sb, "- The summary must be one paragraph without newlines and at most %d words.\n\n", words)
	sb.WriteString("Output exactly this format with no other text:\n\n")
	sb.WriteString("SUMMARY:\n<summary>\n\nTAGS:\n<tag1>,<tag2>")
	return sb.String()
}
