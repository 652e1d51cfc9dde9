package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/devika/tutora/internal/llm"
)

const imageSystemPrompt = `You are an educational AI that helps students understand how to learn from visual content.`

const (
	imageMaxTokens   = 400
	imageTemperature = 0.6
)

// allowedImageExts lists the upload extensions the tutor accepts.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// IsImagePath reports whether s names a file with a supported image
// extension. The chat input uses it to route pasted paths to the
// analyzer instead of the tutor.
func IsImagePath(s string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(s))]
}

// ImageAnalysis is the tutor's study notes for an uploaded image.
type ImageAnalysis struct {
	Description      string
	RelevantConcepts []string
	Suggestions      string
}

// Notes flattens the analysis into chat-ready text.
func (a *ImageAnalysis) Notes() string {
	var b strings.Builder
	b.WriteString(a.Description)
	if len(a.RelevantConcepts) > 0 {
		b.WriteString("\n\nKey ideas: ")
		b.WriteString(strings.Join(a.RelevantConcepts, ", "))
	}
	if a.Suggestions != "" {
		b.WriteString("\n\n")
		b.WriteString(a.Suggestions)
	}
	return b.String()
}

// AnalyzeImage produces study notes for an image file. The configured
// models are text-only, so only file metadata (format and size) informs
// the response, never pixel content.
func (s *Service) AnalyzeImage(ctx context.Context, path string) (*ImageAnalysis, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedImageExts[ext] {
		return nil, fmt.Errorf("unsupported image type %q (use png, jpg, jpeg, gif, or webp)", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	if s.provider == nil {
		return FallbackImageAnalysis(), nil
	}

	ctx = llm.WithPurpose(ctx, "image-analysis")

	prompt := fmt.Sprintf(`As an educational AI, provide an analysis for an uploaded image file (format: %s, size: %d bytes).

Since I cannot see the actual image content, provide a helpful educational response that:
1. Explains the educational value of visual learning
2. Suggests how images can enhance understanding of topics
3. Provides strategies for analyzing visual content
4. Encourages critical thinking about visual information

Make this response educational and encouraging for students.`, strings.TrimPrefix(ext, "."), info.Size())

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: imageSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   imageMaxTokens,
		Temperature: imageTemperature,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("image analysis failed, serving fallback", "path", path, "error", err)
		return FallbackImageAnalysis(), nil
	}

	return &ImageAnalysis{
		Description:      strings.TrimSpace(string(resp.Content)),
		RelevantConcepts: []string{"Visual learning", "Critical thinking", "Image analysis", "Educational media"},
		Suggestions:      "Use this uploaded image as a learning tool. Consider what details you notice, how they relate to your study topic, and what questions the image raises for further exploration.",
	}, nil
}
