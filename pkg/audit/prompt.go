package audit

import (
	"strings"
)

// answerCharLimit caps each serialized answer value so a pasted essay
// in an "Others" field cannot blow up the prompt.
const answerCharLimit = 300

// BuildPrompt serializes questionnaire answers into the text prompt
// sent to the external generator. Pure string formatting: one Q:/A:
// block per answered question, in the caller-supplied order. "Others"
// selections are expanded to their free-text value, or "Not specified"
// when blank. This function defines the textual contract the parser
// and normalizer decode when the generator echoes structure back.
func BuildPrompt(order []string, responses map[string][]string, others map[string]string, userType string) string {
	var sb strings.Builder
	if userType != "" {
		sb.WriteString("User type: ")
		sb.WriteString(userType)
		sb.WriteString("\n\n")
	}
	for _, question := range order {
		selected := responses[question]
		if len(selected) == 0 {
			continue
		}
		values := make([]string, 0, len(selected))
		for _, opt := range selected {
			v := opt
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(opt)), "other") {
				v = strings.TrimSpace(others[question])
				if v == "" {
					v = "Not specified"
				}
			}
			values = append(values, truncateRunes(v, answerCharLimit))
		}
		sb.WriteString("Q: ")
		sb.WriteString(question)
		sb.WriteString("\nA: ")
		sb.WriteString(strings.Join(values, "; "))
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
