package lessons

import (
	"fmt"
	"strings"
)

const lessonSystemPrompt = `You are an expert educational content creator who makes engaging, personalized lessons. Create well-structured, informative content that helps students learn effectively.`

// difficultyDescriptions maps the 1-5 difficulty scale to prompt descriptors.
var difficultyDescriptions = map[int]string{
	1: "beginner-friendly with simple explanations and basic concepts",
	2: "elementary level with clear examples and step-by-step explanations",
	3: "intermediate level with detailed explanations and practical applications",
	4: "advanced level with complex concepts and in-depth analysis",
	5: "expert level with sophisticated analysis and advanced applications",
}

// difficultyDescription returns the prompt descriptor for a difficulty
// level. Out-of-range levels fall back to intermediate.
func difficultyDescription(level int) string {
	if d, ok := difficultyDescriptions[level]; ok {
		return d
	}
	return "intermediate"
}

func buildLessonUserMessage(input Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a comprehensive, engaging educational lesson about %s for a %s learner.\n",
		input.Topic, difficultyDescription(input.Difficulty))

	b.WriteString(`
FORMATTING REQUIREMENTS:
- Use #, ##, ### for a clear heading hierarchy.
- Use **bold** for important terms and *italics* for emphasis.
- Use - for bullet lists and 1. for numbered steps.
- Use > for key quotes or important callouts.
- Use ` + "`backticks`" + ` for technical terms or short examples.
- Use --- for visual breaks between major sections.
- Include a simple ASCII diagram in a code block where it helps.
- Plain text only otherwise. No HTML tags.

STRUCTURE THE LESSON:
1. Engaging Introduction - hook the learner with an interesting opening
2. Learning Objectives - clear goals in a bulleted list
3. Key Concepts - the main content with a clear hierarchy
4. Practical Examples - real-world applications
5. Interactive Questions - thought-provoking queries to reflect on
6. Summary & Next Steps - key takeaways and where to go next

Make it educational, well-organized, and engaging. Target 600-900 words.`)

	return b.String()
}
