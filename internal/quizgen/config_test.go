package quizgen

import "testing"

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"unset keeps default", "", 5},
		{"override applied", "7", 7},
		{"clamped low", "1", 3},
		{"clamped high", "25", 10},
		{"garbage ignored", "lots", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TUTORA_QUIZ_QUESTIONS", tt.env)
			cfg := ConfigFromEnv()
			if cfg.QuestionCount != tt.want {
				t.Errorf("QuestionCount = %d, want %d", cfg.QuestionCount, tt.want)
			}
			if len(cfg.Validators) != len(DefaultConfig().Validators) {
				t.Errorf("validator chain changed: %d validators", len(cfg.Validators))
			}
		})
	}
}
