package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert quiz creator. Generate educational quiz questions in valid JSON format only.

Rules:
- Each question must have exactly 4 options.
- correct_answer must be the index (0, 1, 2, or 3) of the correct option.
- Questions should test understanding, not just memorization.
- Make options plausible but clearly distinguishable.
- Ensure exactly one correct answer per question.
- Do not repeat a question or reuse the same option text within a question.`

// difficultyDescriptions maps the 1-5 difficulty scale to prompt descriptors.
var difficultyDescriptions = map[int]string{
	1: "very easy with basic concepts",
	2: "easy with simple applications",
	3: "moderate with practical examples",
	4: "challenging with complex scenarios",
	5: "very difficult with advanced concepts",
}

// difficultyDescription returns the prompt descriptor for a difficulty
// level. Out-of-range levels fall back to moderate.
func difficultyDescription(level int) string {
	if d, ok := difficultyDescriptions[level]; ok {
		return d
	}
	return "moderate"
}

// buildUserMessage constructs the user message from the request, config
// limits, and validation failures from earlier attempts.
func buildUserMessage(req Request, cfg Config, rejections []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly %d multiple choice questions about %s at %s difficulty level.\n",
		cfg.QuestionCount, req.Topic, difficultyDescription(req.Difficulty))

	if req.LessonBody != "" {
		fmt.Fprintf(&b, "\nBase the questions on this lesson content:\n%s\n",
			truncateRunes(req.LessonBody, cfg.MaxContentChars))
	}

	if len(rejections) > 0 {
		b.WriteString("\nA previous attempt was rejected. Fix these problems:\n")
		for i, r := range rejections {
			fmt.Fprintf(&b, "%d. %s\n", i+1, r)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// truncateRunes limits s to max runes, appending an ellipsis when cut.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
