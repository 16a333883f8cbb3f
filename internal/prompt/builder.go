package prompt

import (
	"fmt"
	"strings"

	"github.com/colorkit/coloring-book-api/internal/domain"
)

// RefinerSystemMessage instructs the chat model to act as a coloring page
// prompt writer and reply with the rewritten prompt only.
const RefinerSystemMessage = "You are an expert at writing prompts for black-and-white coloring book line art. " +
	"Respond with ONLY the rewritten image prompt, no explanations or markdown formatting."

var complexityPhrases = map[string]string{
	"simple":  "very simple composition with large open shapes and minimal detail",
	"medium":  "moderately detailed composition with a balanced amount of elements",
	"complex": "intricate, highly detailed composition with fine decorative elements",
}

var agePhrases = map[string]string{
	"kids":   "cheerful and friendly, suitable for young children, bold outlines, large areas to color",
	"adults": "sophisticated and elegant, suitable for adult colorists, fine line work",
}

var linePhrases = map[string]string{
	"thin":   "thin delicate line weight",
	"medium": "medium line weight",
	"thick":  "thick bold line weight",
}

// BuildRefineInstruction assembles the user message sent to the chat model.
// It embeds category, complexity and age-group quality phrases so the model
// produces a print-ready coloring page description.
func BuildRefineInstruction(raw string, category domain.Category, c domain.Customizations) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Rewrite the following idea as a detailed prompt for a %s coloring book page.\n\n", category)
	fmt.Fprintf(&b, "Idea: %s\n\n", raw)

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- %s\n", complexityPhrases[c.Complexity])
	fmt.Fprintf(&b, "- %s\n", agePhrases[c.AgeGroup])
	fmt.Fprintf(&b, "- %s\n", linePhrases[c.LineThickness])
	if c.Border == "with" {
		b.WriteString("- decorative frame border around the page\n")
	} else {
		b.WriteString("- full-bleed artwork without a border\n")
	}
	if c.Theme != "" {
		fmt.Fprintf(&b, "- overall theme: %s\n", c.Theme)
	}
	b.WriteString("- pure black-and-white line art, clean outlines, no shading, no grayscale fill\n")
	b.WriteString("- white background, 300 DPI print quality\n")
	b.WriteString("- strictly family-friendly content\n")

	return b.String()
}

// CleanCompletion normalizes the single textual completion into a bare
// prompt string: code fences, surrounding quotes and lead-in labels are
// stripped.
func CleanCompletion(content string) string {
	s := strings.TrimSpace(content)

	// Markdown code fence, with or without a language tag
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	for _, label := range []string{"Refined prompt:", "Prompt:", "Here is the prompt:"} {
		if strings.HasPrefix(strings.ToLower(s), strings.ToLower(label)) {
			s = strings.TrimSpace(s[len(label):])
		}
	}

	s = strings.Trim(s, `"`)

	return strings.TrimSpace(s)
}
