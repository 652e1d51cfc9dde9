package store

import (
	"context"
	"testing"
	"time"

	"github.com/devika/tutora/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func insertTestLesson(t *testing.T, s *Store, topic string) *Lesson {
	t.Helper()
	l := &Lesson{Topic: topic, Content: "# " + topic + "\n\nBody.", Difficulty: 2}
	if err := s.LessonRepo().Insert(context.Background(), l); err != nil {
		t.Fatalf("insert lesson: %v", err)
	}
	return l
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"lessons", "progress", "quiz_results", "llm_requests"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLessonInsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l := insertTestLesson(t, s, "Photosynthesis")
	if l.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}
	if l.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be filled")
	}

	got, err := s.LessonRepo().Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected lesson, got nil")
	}
	if got.Topic != "Photosynthesis" {
		t.Errorf("topic = %q, want %q", got.Topic, "Photosynthesis")
	}
	if got.Difficulty != 2 {
		t.Errorf("difficulty = %d, want 2", got.Difficulty)
	}

	missing, err := s.LessonRepo().Get(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing lesson")
	}
}

func TestLessonListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, topic := range []string{"Atoms", "Molecules", "Reactions"} {
		l := &Lesson{Topic: topic, Content: "body", Difficulty: 1, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.LessonRepo().Insert(ctx, l); err != nil {
			t.Fatalf("insert %q: %v", topic, err)
		}
	}

	lessons, err := s.LessonRepo().List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("len = %d, want 3", len(lessons))
	}
	if lessons[0].Topic != "Reactions" {
		t.Errorf("first topic = %q, want %q", lessons[0].Topic, "Reactions")
	}

	limited, err := s.LessonRepo().List(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}

	n, err := s.LessonRepo().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestProgressUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.ProgressRepo()

	l := insertTestLesson(t, s, "Gravity")

	// No progress recorded yet.
	p, err := repo.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil progress before upsert")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Upsert(ctx, &Progress{LessonID: l.ID, Completed: true, Score: 60, TimeSpent: 120, CompletedAt: &now})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	p, err = repo.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p == nil {
		t.Fatal("expected progress after upsert")
	}
	if !p.Completed || p.Score != 60 || p.TimeSpent != 120 {
		t.Errorf("progress = %+v, want completed with score 60, time 120", p)
	}
	if p.CompletedAt == nil || !p.CompletedAt.Equal(now) {
		t.Errorf("completed_at = %v, want %v", p.CompletedAt, now)
	}

	// Second upsert replaces the row rather than adding one.
	err = repo.Upsert(ctx, &Progress{LessonID: l.ID, Completed: true, Score: 85, TimeSpent: 150, CompletedAt: &now})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	p, err = repo.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if p.Score != 85 {
		t.Errorf("score = %d, want 85", p.Score)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM progress WHERE lesson_id = ?", l.ID).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("progress rows = %d, want 1", count)
	}
}

func TestQuizAvailable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.ProgressRepo()

	l := insertTestLesson(t, s, "Cells")

	// No progress: quiz locked.
	ok, err := repo.QuizAvailable(ctx, l.ID)
	if err != nil {
		t.Fatalf("available (no progress): %v", err)
	}
	if ok {
		t.Error("quiz should be locked without progress")
	}

	// Incomplete lesson: still locked.
	if err := repo.Upsert(ctx, &Progress{LessonID: l.ID, Completed: false}); err != nil {
		t.Fatalf("upsert incomplete: %v", err)
	}
	ok, err = repo.QuizAvailable(ctx, l.ID)
	if err != nil {
		t.Fatalf("available (incomplete): %v", err)
	}
	if ok {
		t.Error("quiz should be locked while lesson incomplete")
	}

	// Completed: unlocked.
	now := time.Now().UTC()
	if err := repo.Upsert(ctx, &Progress{LessonID: l.ID, Completed: true, CompletedAt: &now}); err != nil {
		t.Fatalf("upsert complete: %v", err)
	}
	ok, err = repo.QuizAvailable(ctx, l.ID)
	if err != nil {
		t.Fatalf("available (complete): %v", err)
	}
	if !ok {
		t.Error("quiz should unlock once lesson completed")
	}
}

func TestOverviewJoinsProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	a := &Lesson{Topic: "Algebra", Content: "body", Difficulty: 1, CreatedAt: base}
	b := &Lesson{Topic: "Geometry", Content: "body", Difficulty: 3, CreatedAt: base.Add(time.Minute)}
	for _, l := range []*Lesson{a, b} {
		if err := s.LessonRepo().Insert(ctx, l); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := s.ProgressRepo().Upsert(ctx, &Progress{LessonID: a.ID, Completed: true, Score: 90}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	overview, err := s.ProgressRepo().Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview) != 2 {
		t.Fatalf("len = %d, want 2", len(overview))
	}

	// Newest first: Geometry has no progress row.
	if overview[0].Lesson.Topic != "Geometry" {
		t.Errorf("first topic = %q, want %q", overview[0].Lesson.Topic, "Geometry")
	}
	if overview[0].Completed || overview[0].Score != 0 {
		t.Errorf("untouched lesson progress = completed %v score %d, want false 0",
			overview[0].Completed, overview[0].Score)
	}
	if !overview[1].Completed || overview[1].Score != 90 {
		t.Errorf("completed lesson progress = completed %v score %d, want true 90",
			overview[1].Completed, overview[1].Score)
	}
}

func TestQuizResultRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.QuizResultRepo()

	l := insertTestLesson(t, s, "Fractions")

	answers := []quiz.AnswerRecord{
		{Selected: 1, Correct: 1, IsCorrect: true},
		{Selected: 0, Correct: 2, IsCorrect: false},
	}
	qr := &QuizResult{
		LessonID:       l.ID,
		AttemptID:      "attempt-1",
		Score:          1,
		TotalQuestions: 2,
		Percentage:     50,
		TimeTaken:      42,
		Answers:        answers,
	}
	if err := repo.Insert(ctx, qr); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if qr.ID == 0 {
		t.Error("expected ID to be assigned")
	}
	if qr.Sequence == 0 {
		t.Error("expected sequence to be assigned")
	}

	results, err := repo.ListByLesson(ctx, l.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1", len(results))
	}
	got := results[0]
	if got.Percentage != 50 || got.TimeTaken != 42 {
		t.Errorf("result = %+v, want percentage 50, time 42", got)
	}
	if len(got.Answers) != 2 {
		t.Fatalf("answers len = %d, want 2", len(got.Answers))
	}
	if got.Answers[1].IsCorrect || got.Answers[1].Correct != 2 {
		t.Errorf("answers[1] = %+v, want incorrect with correct option 2", got.Answers[1])
	}
}

func TestQuizResultListRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.QuizResultRepo()

	a := insertTestLesson(t, s, "Oceans")
	b := insertTestLesson(t, s, "Rivers")

	for i, l := range []*Lesson{a, a, b} {
		qr := &QuizResult{
			LessonID:       l.ID,
			AttemptID:      "attempt",
			Score:          i,
			TotalQuestions: 5,
			Percentage:     i * 20,
			Answers:        []quiz.AnswerRecord{},
		}
		if err := repo.Insert(ctx, qr); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	entries, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	// Newest attempt first, with its lesson's topic joined in.
	if entries[0].Topic != "Rivers" {
		t.Errorf("first topic = %q, want %q", entries[0].Topic, "Rivers")
	}
	if entries[1].Topic != "Oceans" {
		t.Errorf("second topic = %q, want %q", entries[1].Topic, "Oceans")
	}

	totals, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", totals.Attempts)
	}
	if totals.BestPercentage != 40 {
		t.Errorf("best = %d, want 40", totals.BestPercentage)
	}
	if totals.AvgPercentage != 20 {
		t.Errorf("avg = %v, want 20", totals.AvgPercentage)
	}
}

func TestQuizTotalsEmpty(t *testing.T) {
	s := openTestStore(t)

	totals, err := s.QuizResultRepo().Totals(context.Background())
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Attempts != 0 || totals.AvgPercentage != 0 || totals.BestPercentage != 0 {
		t.Errorf("totals = %+v, want zero values", totals)
	}
}

func TestLLMEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "openrouter",
			Model:        "meta-llama/llama-3.3-70b-instruct:free",
			Purpose:      "lesson",
			InputTokens:  100 + i,
			OutputTokens: 200,
			LatencyMs:    1500,
			Success:      true,
			RequestBody:  "prompt",
			ResponseBody: "completion",
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("expected descending sequences, got %d then %d", events[0].Sequence, events[1].Sequence)
	}
	if events[0].InputTokens != 102 {
		t.Errorf("input tokens = %d, want 102", events[0].InputTokens)
	}
	if events[0].RequestBody != "prompt" {
		t.Errorf("request body = %q, want %q", events[0].RequestBody, "prompt")
	}

	got, err := repo.GetLLMEvent(ctx, int(events[0].ID))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != events[0].ID {
		t.Errorf("get = %+v, want event %d", got, events[0].ID)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	events := []LLMRequestEventData{
		{Provider: "openrouter", Model: "m1", Purpose: "lesson", InputTokens: 100, OutputTokens: 50, LatencyMs: 1000, Success: true},
		{Provider: "openrouter", Model: "m1", Purpose: "lesson", InputTokens: 200, OutputTokens: 150, LatencyMs: 3000, Success: true},
		{Provider: "openrouter", Model: "m2", Purpose: "quiz-gen", InputTokens: 50, OutputTokens: 25, LatencyMs: 500, Success: false, ErrorMessage: "timeout"},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	// Alphabetical: lesson before quiz-gen.
	if byPurpose[0].Purpose != "lesson" || byPurpose[0].Calls != 2 {
		t.Errorf("byPurpose[0] = %+v, want lesson with 2 calls", byPurpose[0])
	}
	if byPurpose[0].InputTokens != 300 || byPurpose[0].AvgLatencyMs != 2000 {
		t.Errorf("lesson usage = %+v, want 300 in, avg 2000ms", byPurpose[0])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("models = %d, want 2", len(byModel))
	}
	if byModel[0].Model != "m1" || byModel[0].Calls != 2 {
		t.Errorf("byModel[0] = %+v, want m1 with 2 calls", byModel[0])
	}

	quizGen, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen"})
	if err != nil {
		t.Fatalf("filter by purpose: %v", err)
	}
	if len(quizGen) != 1 || quizGen[0].Model != "m2" {
		t.Errorf("quiz-gen events = %+v, want the single m2 event", quizGen)
	}

	totals, err := repo.TotalLLMUsage(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Requests != 3 || totals.InputTokens != 350 || totals.OutputTokens != 225 {
		t.Errorf("totals = %+v, want 3 requests, 350 in, 225 out", totals)
	}
	if totals.Failures != 1 {
		t.Errorf("failures = %d, want 1", totals.Failures)
	}
}

func TestResultRecorderKeepsBestScore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l := insertTestLesson(t, s, "Planets")
	now := time.Now().UTC()
	err := s.ProgressRepo().Upsert(ctx, &Progress{LessonID: l.ID, Completed: true, Score: 0, CompletedAt: &now})
	if err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	rec := NewResultRecorder(s)

	first := &quiz.Report{Score: 4, TotalQuestions: 5, Percentage: 80, DurationSeconds: 60,
		Answers: []quiz.AnswerRecord{{Selected: 0, Correct: 0, IsCorrect: true}}}
	if err := rec.RecordReport(ctx, l.ID, first); err != nil {
		t.Fatalf("record first: %v", err)
	}

	p, err := s.ProgressRepo().Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if p.Score != 80 {
		t.Errorf("score = %d, want 80", p.Score)
	}
	if !p.Completed {
		t.Error("recording a quiz must not clear completion")
	}

	// A worse retake keeps the best score.
	second := &quiz.Report{Score: 2, TotalQuestions: 5, Percentage: 40, DurationSeconds: 30,
		Answers: []quiz.AnswerRecord{}}
	if err := rec.RecordReport(ctx, l.ID, second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	p, err = s.ProgressRepo().Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("get progress again: %v", err)
	}
	if p.Score != 80 {
		t.Errorf("score after worse retake = %d, want 80", p.Score)
	}

	results, err := s.QuizResultRepo().ListByLesson(ctx, l.ID)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("attempts = %d, want 2", len(results))
	}
	if results[0].AttemptID == results[1].AttemptID {
		t.Error("attempt IDs should be unique per attempt")
	}
}
