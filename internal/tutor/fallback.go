package tutor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FallbackChat returns a canned tutoring response keyed on the
// message's question words.
func FallbackChat(message string) string {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "what", "how", "why", "when", "where"):
		return fmt.Sprintf("That's a great question about %q. Based on educational principles, I'd suggest breaking this down into smaller parts. What specific aspect would you like to explore first? This approach helps build understanding step by step.", message)
	case containsAny(lower, "explain", "tell me", "describe"):
		return fmt.Sprintf("I'd be happy to help explain that! When learning about %q, it's helpful to start with the basics and build up. Think about what you already know about this topic and how it might connect to new information.", message)
	case containsAny(lower, "help", "stuck", "confused", "difficult"):
		return "I understand that learning can sometimes be challenging! Here are some strategies that often help: 1) Break the problem into smaller pieces, 2) Connect new information to what you already know, 3) Ask specific questions about the parts that confuse you. What specific part would you like to focus on?"
	default:
		return fmt.Sprintf("Thank you for sharing that thought about %q. Learning is most effective when we engage actively with the material. How do you think this connects to what we've been discussing? What questions does this raise for you?", message)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// FallbackDiagram returns a fixed two-box overview diagram for a concept.
func FallbackDiagram(concept string) string {
	label := strings.TrimSpace(concept)
	if label == "" {
		label = "Concept"
	}

	inner := utf8.RuneCountInString(label) + 4
	if inner < 12 {
		inner = 12
	}

	top := "┌" + strings.Repeat("─", inner) + "┐"
	bottom := "└" + strings.Repeat("─", inner) + "┘"
	stemCol := inner / 2
	stemBottom := "└" + strings.Repeat("─", stemCol) + "┬" + strings.Repeat("─", inner-stemCol-1) + "┘"
	stem := strings.Repeat(" ", stemCol+1) + "│"
	arrow := strings.Repeat(" ", stemCol+1) + "▼"

	var b strings.Builder
	b.WriteString(top + "\n")
	b.WriteString(boxRow(label, inner) + "\n")
	b.WriteString(boxRow("Overview", inner) + "\n")
	b.WriteString(stemBottom + "\n")
	b.WriteString(stem + "\n")
	b.WriteString(arrow + "\n")
	b.WriteString(top + "\n")
	b.WriteString(boxRow("Details", inner) + "\n")
	b.WriteString(bottom)
	return b.String()
}

func boxRow(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	return "│" + strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left) + "│"
}

// FallbackImageAnalysis returns canned study notes for when the LLM
// cannot be reached.
func FallbackImageAnalysis() *ImageAnalysis {
	return &ImageAnalysis{
		Description:      "This image contains visual content that can support your learning. While I cannot analyze the specific details right now, images are powerful learning tools that can help reinforce concepts.",
		RelevantConcepts: []string{"Visual learning", "Image interpretation", "Multimedia education"},
		Suggestions:      "Consider how this image relates to your current lesson. What details do you notice? How might they connect to the concepts you are studying? Visual elements often provide additional context and examples.",
	}
}
