package lessons

import "fmt"

const fallbackTemplate = `# Learning About: %[1]s

## Introduction

Welcome to your personalized lesson on **%[1]s**! This lesson is designed to help you understand the key concepts and practical applications at difficulty level %[2]d.

## Key Concepts

### Foundation

Understanding %[1]s starts with grasping its fundamental principles. This topic is important because it connects to many real-world applications and can enhance your knowledge in related areas.

### Core Elements

1. **Basic Definition**: %[1]s encompasses several important aspects that we'll explore
2. **Key Components**: Breaking down the main parts helps build understanding
3. **Relationships**: How %[1]s connects to other concepts you may already know

## Practical Applications

%[1]s is used in various real-world scenarios:

- Everyday applications that you might encounter
- Professional or academic contexts
- Problem-solving situations

## Interactive Learning

Think about these questions as you learn:

- How does %[1]s relate to your personal interests?
- Where have you encountered %[1]s before?
- What questions do you have about %[1]s?

## Summary

By understanding %[1]s, you're building valuable knowledge that can be applied in many situations. The key takeaways include the fundamental concepts, practical applications, and connections to other areas of learning.

**Remember**: Learning is a journey, and every question you ask helps deepen your understanding!`

// FallbackBody returns canned lesson content for use when no LLM is
// available or generation fails.
func FallbackBody(topic string, difficulty int) string {
	return fmt.Sprintf(fallbackTemplate, topic, difficulty)
}
