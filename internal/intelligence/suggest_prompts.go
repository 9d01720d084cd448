package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/uniconvert/internal/domain"
)

// suggestSystemPrompt frames the model as a course-equivalence matcher.
const suggestSystemPrompt = `You are an academic course conversion expert.
Your task is to match student courses whose equivalence codes are invalid to the
correct course in a target curriculum, based on semantic similarity of the course names.

You must output ONLY a JSON array. Each element is an object with these exact fields:
- original_name: the exact Course Name from the invalid list, unchanged
- suggested_code: the Code from the target curriculum that best matches, or "NO_MATCH" if none fits
- reason: a very short explanation (max 10 words)

CRITICAL RULES:
1. Never invent codes; suggested_code must be a code from the target curriculum or "NO_MATCH"
2. Copy original_name exactly, including spacing and capitalization
3. Return one element per invalid course
4. Output only the JSON array, no prose, no markdown`

// buildSuggestUserPrompt renders the reduced curriculum ("Code: Name") and the
// invalid list.
func buildSuggestUserPrompt(invalid []InvalidCourse, curriculum []domain.CurriculumEntry) string {
	var b strings.Builder

	b.WriteString("Target Curriculum (Format: \"Code: Name\"):\n---\n")
	for _, c := range curriculum {
		fmt.Fprintf(&b, "%s: %s\n", c.Code, c.CourseName)
	}
	b.WriteString("---\n\nInvalid Student Courses:\n---\n")
	for _, i := range invalid {
		fmt.Fprintf(&b, "Current Code: %s, Course Name: %s\n", i.CurrentCode, i.Name)
	}
	b.WriteString("---\n")

	return b.String()
}
