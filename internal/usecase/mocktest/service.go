package mocktest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/prompt"
	"github.com/prism-learn/prism/internal/usecase/genai"
)

const (
	defaultNumTheory  = 3
	defaultNumCoding  = 2
	defaultNumReorder = 2
	defaultDifficulty = "medium"
	defaultLanguage   = "python"
	maxSampleQueries  = 15
)

// codeKeywords gate coding questions: only content that looks programming-
// related gets them.
var codeKeywords = []string{"function", "class", "def ", "int ", "string", "array", "algorithm"}

// Service generates mock tests (theory, coding, reorder sections) and
// grades submissions.
type Service struct {
	docs      Documents
	sampler   Sampler
	gen       Generator
	evaluator Evaluator
	model     domain.ChatModel
	artifacts Artifacts
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

// New creates a mock test service.
func New(docs Documents, sampler Sampler, gen Generator, evaluator Evaluator, model domain.ChatModel, artifacts Artifacts, logger *zap.Logger) *Service {
	return &Service{
		docs:      docs,
		sampler:   sampler,
		gen:       gen,
		evaluator: evaluator,
		model:     model,
		artifacts: artifacts,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// GenerateParams select the test source material and shape.
type GenerateParams struct {
	NotebookID  string
	DocumentIDs []string
	NumTheory   int
	NumCoding   int
	NumReorder  int
	Difficulty  string
	Language    string
}

func (p *GenerateParams) applyDefaults() {
	if p.NumTheory <= 0 {
		p.NumTheory = defaultNumTheory
	}
	if p.NumCoding <= 0 {
		p.NumCoding = defaultNumCoding
	}
	if p.NumReorder <= 0 {
		p.NumReorder = defaultNumReorder
	}
	if p.Difficulty == "" {
		p.Difficulty = defaultDifficulty
	}
	if p.Language == "" {
		p.Language = defaultLanguage
	}
}

// PublicTheory is a theory question as shown to the taker.
type PublicTheory struct {
	Question string `json:"question"`
	Topic    string `json:"topic"`
}

// PublicCoding is a coding question without expected test outputs.
type PublicCoding struct {
	Question          string            `json:"question"`
	Topic             string            `json:"topic"`
	FunctionSignature string            `json:"function_signature"`
	Language          string            `json:"language"`
	TestCases         []domain.TestCase `json:"test_cases"`
}

// PublicReorder is a reorder question without the answer key.
type PublicReorder struct {
	Question string   `json:"question"`
	Topic    string   `json:"topic"`
	Items    []string `json:"items"`
}

// Generated is a freshly generated test ready to take.
type Generated struct {
	TestID           string          `json:"test_id"`
	TheoryQuestions  []PublicTheory  `json:"theory_questions"`
	CodingQuestions  []PublicCoding  `json:"coding_questions"`
	ReorderQuestions []PublicReorder `json:"reorder_questions"`
	TotalQuestions   int             `json:"total_questions"`
}

// generatedTest is the model's raw output; absent sections decode as nil
// and are treated as empty.
type generatedTest struct {
	TheoryQuestions  []domain.TheoryQuestion  `json:"theory_questions"`
	CodingQuestions  []domain.CodingQuestion  `json:"coding_questions"`
	ReorderQuestions []domain.ReorderQuestion `json:"reorder_questions"`
}

// Generate samples diverse chunks and has the model write a full test.
// Coding questions are dropped when the sampled content does not look
// programming-related. Answer keys stay in the artifact store.
func (s *Service) Generate(ctx context.Context, p GenerateParams) (Generated, error) {
	p.applyDefaults()

	count, err := s.docs.CountByNotebook(ctx, p.NotebookID)
	if err != nil {
		return Generated{}, fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		return Generated{}, domain.ErrNoDocuments
	}

	scope := domain.Scope{NotebookID: p.NotebookID, DocumentIDs: p.DocumentIDs}
	numQueries := (p.NumTheory + p.NumCoding + p.NumReorder) * 2
	if numQueries > maxSampleQueries {
		numQueries = maxSampleQueries
	}

	chunks, err := s.sampler.Sample(ctx, scope, "test", numQueries, (p.NumTheory+p.NumCoding+p.NumReorder)*2)
	if err != nil {
		return Generated{}, fmt.Errorf("sample chunks: %w", err)
	}
	if len(chunks) == 0 {
		return Generated{}, domain.ErrNoContent
	}

	contextParts := make([]string, len(chunks))
	for i, c := range chunks {
		contextParts[i] = c.Text
	}
	content := strings.Join(contextParts, "\n\n")
	hasCode := containsCodeKeyword(content)

	var raw generatedTest
	spec := genai.Spec{
		Task:        "mocktest",
		System:      prompt.MockTestSystem,
		Prompt:      prompt.MockTest(content, p.NumTheory, p.NumCoding, p.NumReorder, p.Difficulty, p.Language, hasCode),
		Temperature: 0.7,
		MaxTokens:   3000,
	}
	if err := s.gen.Object(ctx, spec, &raw); err != nil {
		return Generated{}, fmt.Errorf("generate test: %w", err)
	}

	if !hasCode {
		raw.CodingQuestions = nil
	}
	normalizeTopics(&raw)

	testID := s.newID()
	s.artifacts.Put(testID, domain.MockTest{
		ID:               testID,
		TheoryQuestions:  raw.TheoryQuestions,
		CodingQuestions:  raw.CodingQuestions,
		ReorderQuestions: raw.ReorderQuestions,
		DocumentIDs:      p.DocumentIDs,
		HasCode:          hasCode,
		CreatedAt:        domain.FormatTime(s.now()),
	})

	s.logger.Info("mock test generated",
		zap.String("notebook_id", p.NotebookID),
		zap.String("test_id", testID),
		zap.Int("theory", len(raw.TheoryQuestions)),
		zap.Int("coding", len(raw.CodingQuestions)),
		zap.Int("reorder", len(raw.ReorderQuestions)),
		zap.Bool("has_code", hasCode))

	return publicTest(testID, raw), nil
}

func containsCodeKeyword(content string) bool {
	lower := strings.ToLower(content)
	for _, kw := range codeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func normalizeTopics(t *generatedTest) {
	for i := range t.TheoryQuestions {
		if t.TheoryQuestions[i].Topic == "" {
			t.TheoryQuestions[i].Topic = "General"
		}
	}
	for i := range t.CodingQuestions {
		if t.CodingQuestions[i].Topic == "" {
			t.CodingQuestions[i].Topic = "Coding"
		}
	}
	for i := range t.ReorderQuestions {
		if t.ReorderQuestions[i].Topic == "" {
			t.ReorderQuestions[i].Topic = "General"
		}
	}
}

func publicTest(testID string, t generatedTest) Generated {
	out := Generated{
		TestID:           testID,
		TheoryQuestions:  make([]PublicTheory, len(t.TheoryQuestions)),
		CodingQuestions:  make([]PublicCoding, len(t.CodingQuestions)),
		ReorderQuestions: make([]PublicReorder, len(t.ReorderQuestions)),
	}
	for i, q := range t.TheoryQuestions {
		out.TheoryQuestions[i] = PublicTheory{Question: q.Question, Topic: q.Topic}
	}
	for i, q := range t.CodingQuestions {
		cases := make([]domain.TestCase, len(q.TestCases))
		for j, tc := range q.TestCases {
			cases[j] = domain.TestCase{Input: tc.Input} // expected outputs stay server-side
		}
		out.CodingQuestions[i] = PublicCoding{
			Question:          q.Question,
			Topic:             q.Topic,
			FunctionSignature: q.FunctionSignature,
			Language:          q.Language,
			TestCases:         cases,
		}
	}
	for i, q := range t.ReorderQuestions {
		out.ReorderQuestions[i] = PublicReorder{Question: q.Question, Topic: q.Topic, Items: q.Items}
	}
	out.TotalQuestions = len(t.TheoryQuestions) + len(t.CodingQuestions) + len(t.ReorderQuestions)
	return out
}

// TheoryResult is a graded theory answer.
type TheoryResult struct {
	QuestionIndex int      `json:"question_index"`
	Question      string   `json:"question"`
	UserAnswer    string   `json:"user_answer"`
	Score         float64  `json:"score"`
	Feedback      string   `json:"feedback"`
	CoveredPoints []string `json:"covered_points"`
	MissingPoints []string `json:"missing_points"`
	Topic         string   `json:"topic"`
}

// CodingResult is a graded code answer.
type CodingResult struct {
	QuestionIndex int      `json:"question_index"`
	Question      string   `json:"question"`
	UserCode      string   `json:"user_code"`
	Score         float64  `json:"score"`
	Correctness   string   `json:"correctness"`
	CodeQuality   string   `json:"code_quality"`
	Feedback      string   `json:"feedback"`
	Suggestions   []string `json:"suggestions"`
	Topic         string   `json:"topic"`
}

// ReorderResult is a graded ordering.
type ReorderResult struct {
	QuestionIndex    int      `json:"question_index"`
	Question         string   `json:"question"`
	UserOrder        []string `json:"user_order"`
	CorrectOrder     []string `json:"correct_order"`
	Score            float64  `json:"score"`
	CorrectPositions int      `json:"correct_positions"`
	TotalItems       int      `json:"total_items"`
	Topic            string   `json:"topic"`
}

// TopicStats aggregates section scores per topic.
type TopicStats struct {
	Scores  []float64 `json:"scores"`
	Count   int       `json:"count"`
	Average float64   `json:"average"`
}

// Submission carries all answers for one test.
type Submission struct {
	TheoryAnswers  []domain.TheoryAnswer
	CodingAnswers  []domain.CodingAnswer
	ReorderAnswers []domain.ReorderAnswer
}

// Result is a fully graded mock test.
type Result struct {
	TestID           string                `json:"test_id"`
	OverallScore     float64               `json:"overall_score"`
	TheoryResults    []TheoryResult        `json:"theory_results"`
	CodingResults    []CodingResult        `json:"coding_results"`
	ReorderResults   []ReorderResult       `json:"reorder_results"`
	TopicPerformance map[string]TopicStats `json:"topic_performance"`
	OverallAnalysis  string                `json:"overall_analysis"`
	TotalQuestions   int                   `json:"total_questions"`
}

// Submit grades every answered question. Theory and code go through the
// LLM evaluator (which degrades to neutral scores on its own), reorderings
// are scored deterministically. Answers referencing unknown question
// indexes are skipped.
func (s *Service) Submit(ctx context.Context, testID string, sub Submission) (Result, error) {
	test, ok := s.artifacts.Get(testID)
	if !ok {
		return Result{}, fmt.Errorf("test %s: %w", testID, domain.ErrArtifactNotFound)
	}

	res := Result{
		TestID:           testID,
		TheoryResults:    []TheoryResult{},
		CodingResults:    []CodingResult{},
		ReorderResults:   []ReorderResult{},
		TopicPerformance: make(map[string]TopicStats),
	}

	for _, a := range sub.TheoryAnswers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(test.TheoryQuestions) {
			s.logger.Warn("theory answer index out of range",
				zap.String("test_id", testID), zap.Int("index", a.QuestionIndex))
			continue
		}
		q := test.TheoryQuestions[a.QuestionIndex]
		eval := s.evaluator.Theory(ctx, q, a.AnswerText)
		res.TheoryResults = append(res.TheoryResults, TheoryResult{
			QuestionIndex: a.QuestionIndex,
			Question:      q.Question,
			UserAnswer:    a.AnswerText,
			Score:         eval.Score,
			Feedback:      eval.Feedback,
			CoveredPoints: eval.CoveredPoints,
			MissingPoints: eval.MissingPoints,
			Topic:         q.Topic,
		})
	}

	for _, a := range sub.CodingAnswers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(test.CodingQuestions) {
			s.logger.Warn("coding answer index out of range",
				zap.String("test_id", testID), zap.Int("index", a.QuestionIndex))
			continue
		}
		q := test.CodingQuestions[a.QuestionIndex]
		eval := s.evaluator.Code(ctx, q, a.Code, a.Language)
		res.CodingResults = append(res.CodingResults, CodingResult{
			QuestionIndex: a.QuestionIndex,
			Question:      q.Question,
			UserCode:      a.Code,
			Score:         eval.Score,
			Correctness:   eval.Correctness,
			CodeQuality:   eval.CodeQuality,
			Feedback:      eval.Feedback,
			Suggestions:   eval.Suggestions,
			Topic:         q.Topic,
		})
	}

	for _, a := range sub.ReorderAnswers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(test.ReorderQuestions) {
			s.logger.Warn("reorder answer index out of range",
				zap.String("test_id", testID), zap.Int("index", a.QuestionIndex))
			continue
		}
		q := test.ReorderQuestions[a.QuestionIndex]
		score, hits := s.evaluator.Reorder(q, a.OrderedItems)
		res.ReorderResults = append(res.ReorderResults, ReorderResult{
			QuestionIndex:    a.QuestionIndex,
			Question:         q.Question,
			UserOrder:        a.OrderedItems,
			CorrectOrder:     q.CorrectOrder,
			Score:            score,
			CorrectPositions: hits,
			TotalItems:       len(q.CorrectOrder),
			Topic:            q.Topic,
		})
	}

	s.aggregate(&res)
	res.OverallAnalysis = s.analysis(ctx, &res)
	return res, nil
}

func (s *Service) aggregate(res *Result) {
	var sum float64
	record := func(topic string, score float64) {
		sum += score
		stats := res.TopicPerformance[topic]
		stats.Scores = append(stats.Scores, score)
		stats.Count++
		res.TopicPerformance[topic] = stats
	}

	for _, r := range res.TheoryResults {
		record(r.Topic, r.Score)
	}
	for _, r := range res.CodingResults {
		record(r.Topic, r.Score)
	}
	for _, r := range res.ReorderResults {
		record(r.Topic, r.Score)
	}

	res.TotalQuestions = len(res.TheoryResults) + len(res.CodingResults) + len(res.ReorderResults)
	if res.TotalQuestions > 0 {
		res.OverallScore = sum / float64(res.TotalQuestions)
	}

	for topic, stats := range res.TopicPerformance {
		var topicSum float64
		for _, sc := range stats.Scores {
			topicSum += sc
		}
		stats.Average = topicSum / float64(len(stats.Scores))
		res.TopicPerformance[topic] = stats
	}
}

func (s *Service) analysis(ctx context.Context, res *Result) string {
	if res.TotalQuestions == 0 {
		return "No questions were answered. Please complete the test and submit again."
	}

	analysisPrompt := prompt.TestAnalysis(
		res.OverallScore,
		sectionAverage(res.TheoryResults, func(r TheoryResult) float64 { return r.Score }),
		sectionAverage(res.CodingResults, func(r CodingResult) float64 { return r.Score }),
		sectionAverage(res.ReorderResults, func(r ReorderResult) float64 { return r.Score }),
		len(res.TheoryResults), len(res.CodingResults), len(res.ReorderResults),
		formatTopicStats(res.TopicPerformance))

	text, err := s.model.Chat(ctx,
		[]domain.Message{{Role: domain.RoleUser, Content: analysisPrompt}},
		domain.ChatOptions{Temperature: 0.7, MaxTokens: 1000, Task: "test_analysis"})
	if err != nil {
		s.logger.Warn("test analysis generation failed",
			zap.String("test_id", res.TestID), zap.Error(err))
		return fmt.Sprintf("Overall Score: %.1f%%. You completed %d questions. Review the detailed feedback for each question to improve.",
			res.OverallScore, res.TotalQuestions)
	}
	return text
}

func sectionAverage[T any](results []T, score func(T) float64) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += score(r)
	}
	return sum / float64(len(results))
}

func formatTopicStats(perf map[string]TopicStats) string {
	topics := make([]string, 0, len(perf))
	for topic := range perf {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	lines := make([]string, len(topics))
	for i, topic := range topics {
		stats := perf[topic]
		lines[i] = fmt.Sprintf("%s: %.1f%% (%d questions)", topic, stats.Average, stats.Count)
	}
	return strings.Join(lines, "\n")
}
