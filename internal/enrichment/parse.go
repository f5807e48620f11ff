package enrichment

import (
	"strings"
)

const (
	summaryMarker = "SUMMARY:"
	tagsMarker    = "TAGS:"
)

// ParseReply extracts the summary and tags from a model reply. Tags outside
// vocabulary are dropped; an empty vocabulary accepts any tag. ok is false
// when the reply does not follow the SUMMARY/TAGS layout.
func ParseReply(reply string, vocabulary []string) (summary string, tags []string, ok bool) {
	start := strings.Index(reply, summaryMarker)
	if start < 0 {
		return "", nil, false
	}
	rest := reply[start+len(summaryMarker):]

	split := strings.Index(rest, tagsMarker)
	if split < 0 {
		return "", nil, false
	}

	summary = strings.Join(strings.Fields(rest[:split]), " ")
	if summary == "" {
		return "", nil, false
	}

	allowed := make(map[string]string, len(vocabulary))
	for _, tag := range vocabulary {
		allowed[strings.ToUpper(tag)] = tag
	}

	seen := map[string]struct{}{}
	for _, raw := range strings.Split(rest[split+len(tagsMarker):], ",") {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if len(allowed) > 0 {
			canonical, known := allowed[strings.ToUpper(tag)]
			if !known {
				continue
			}
			tag = canonical
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return summary, tags, true
}
