package quiz

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
	defaultNumQuestions = 5
	defaultDifficulty   = "medium"
	maxSampleQueries    = 10

	weakThreshold   = 0.6
	strongThreshold = 0.8
)

// Service generates quizzes from a notebook's documents and grades
// submissions against the held answer key.
type Service struct {
	docs      Documents
	sampler   Sampler
	gen       Generator
	model     domain.ChatModel
	artifacts Artifacts
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

// New creates a quiz service.
func New(docs Documents, sampler Sampler, gen Generator, model domain.ChatModel, artifacts Artifacts, logger *zap.Logger) *Service {
	return &Service{
		docs:      docs,
		sampler:   sampler,
		gen:       gen,
		model:     model,
		artifacts: artifacts,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// GenerateParams select the quiz source material and shape.
type GenerateParams struct {
	NotebookID   string
	DocumentIDs  []string
	NumQuestions int
	Difficulty   string
}

// PublicQuestion is an MCQ as shown to the taker: no answer key.
type PublicQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Topic    string   `json:"topic"`
}

// Generated is a freshly generated quiz ready to take.
type Generated struct {
	QuizID         string           `json:"quiz_id"`
	Questions      []PublicQuestion `json:"questions"`
	TotalQuestions int              `json:"total_questions"`
}

// Generate samples diverse chunks from the notebook and has the model write
// MCQs from them. The full quiz (with answers) is parked in the artifact
// store; the response carries questions only.
func (s *Service) Generate(ctx context.Context, p GenerateParams) (Generated, error) {
	if p.NumQuestions <= 0 {
		p.NumQuestions = defaultNumQuestions
	}
	if p.Difficulty == "" {
		p.Difficulty = defaultDifficulty
	}

	count, err := s.docs.CountByNotebook(ctx, p.NotebookID)
	if err != nil {
		return Generated{}, fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		return Generated{}, domain.ErrNoDocuments
	}

	scope := domain.Scope{NotebookID: p.NotebookID, DocumentIDs: p.DocumentIDs}
	numQueries := p.NumQuestions * 2
	if numQueries > maxSampleQueries {
		numQueries = maxSampleQueries
	}

	chunks, err := s.sampler.Sample(ctx, scope, "question", numQueries, p.NumQuestions*2)
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

	var questions []domain.QuizQuestion
	spec := genai.Spec{
		Task:        "quiz",
		System:      prompt.QuizSystem,
		Prompt:      prompt.Quiz(strings.Join(contextParts, "\n\n"), p.NumQuestions, p.Difficulty),
		Temperature: 0.7,
		MaxTokens:   2048,
		Required:    []string{"question", "options", "correct_answer"},
		MinItems:    1,
	}
	if err := s.gen.Array(ctx, spec, &questions); err != nil {
		return Generated{}, fmt.Errorf("generate questions: %w", err)
	}

	for i := range questions {
		if questions[i].Topic == "" {
			questions[i].Topic = "General"
		}
	}

	quizID := s.newID()
	s.artifacts.Put(quizID, domain.Quiz{
		ID:          quizID,
		Questions:   questions,
		DocumentIDs: p.DocumentIDs,
		CreatedAt:   domain.FormatTime(s.now()),
	})

	public := make([]PublicQuestion, len(questions))
	for i, q := range questions {
		public[i] = PublicQuestion{Question: q.Question, Options: q.Options, Topic: q.Topic}
	}

	s.logger.Info("quiz generated",
		zap.String("notebook_id", p.NotebookID),
		zap.String("quiz_id", quizID),
		zap.Int("questions", len(questions)))

	return Generated{QuizID: quizID, Questions: public, TotalQuestions: len(questions)}, nil
}

// Result is a graded quiz with per-question outcomes and analysis.
type Result struct {
	QuizID           string                             `json:"quiz_id"`
	Score            int                                `json:"score"`
	TotalQuestions   int                                `json:"total_questions"`
	ScorePercentage  float64                            `json:"score_percentage"`
	Results          []domain.QuizQuestionResult        `json:"results"`
	TopicPerformance map[string]domain.TopicPerformance `json:"topic_performance"`
	Analysis         string                             `json:"analysis"`
	WeakTopics       []string                           `json:"weak_topics"`
	StrongTopics     []string                           `json:"strong_topics"`
}

// Submit grades answers against the stored quiz. Scoring and topic rollups
// are deterministic; only the feedback text comes from the model, with a
// deterministic summary as fallback.
func (s *Service) Submit(ctx context.Context, quizID string, answers []domain.QuizAnswer) (Result, error) {
	quiz, ok := s.artifacts.Get(quizID)
	if !ok {
		return Result{}, fmt.Errorf("quiz %s: %w", quizID, domain.ErrArtifactNotFound)
	}

	questions := quiz.Questions
	res := Result{
		QuizID:           quizID,
		TotalQuestions:   len(questions),
		Results:          make([]domain.QuizQuestionResult, 0, len(answers)),
		TopicPerformance: make(map[string]domain.TopicPerformance),
	}

	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(questions) {
			return Result{}, fmt.Errorf("question index %d out of range: %w", a.QuestionIndex, domain.ErrInvalidInput)
		}
		q := questions[a.QuestionIndex]
		correct := a.SelectedOption == q.CorrectAnswer
		if correct {
			res.Score++
		}

		perf := res.TopicPerformance[q.Topic]
		perf.Total++
		if correct {
			perf.Correct++
		}
		res.TopicPerformance[q.Topic] = perf

		res.Results = append(res.Results, domain.QuizQuestionResult{
			QuestionIndex:  a.QuestionIndex,
			Question:       q.Question,
			SelectedOption: a.SelectedOption,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      correct,
			Explanation:    q.Explanation,
			Topic:          q.Topic,
		})
	}

	if len(questions) > 0 {
		res.ScorePercentage = float64(res.Score) / float64(len(questions)) * 100
	}

	res.WeakTopics, res.StrongTopics = splitTopics(res.TopicPerformance)
	res.Analysis = s.analysis(ctx, res)
	return res, nil
}

// splitTopics buckets topics by accuracy, sorted for stable output.
func splitTopics(perf map[string]domain.TopicPerformance) (weak, strong []string) {
	weak = []string{}
	strong = []string{}
	for topic, p := range perf {
		if p.Total == 0 {
			continue
		}
		ratio := float64(p.Correct) / float64(p.Total)
		switch {
		case ratio < weakThreshold:
			weak = append(weak, topic)
		case ratio >= strongThreshold:
			strong = append(strong, topic)
		}
	}
	sort.Strings(weak)
	sort.Strings(strong)
	return weak, strong
}

func (s *Service) analysis(ctx context.Context, res Result) string {
	analysisPrompt := prompt.QuizAnalysis(
		res.Score, res.TotalQuestions, res.ScorePercentage,
		formatTopicPerformance(res.TopicPerformance),
		joinOrNone(res.WeakTopics), joinOrNone(res.StrongTopics))

	text, err := s.model.Chat(ctx,
		[]domain.Message{{Role: domain.RoleUser, Content: analysisPrompt}},
		domain.ChatOptions{Temperature: 0.7, MaxTokens: 1024, Task: "quiz_analysis"})
	if err != nil {
		s.logger.Warn("quiz analysis generation failed",
			zap.String("quiz_id", res.QuizID), zap.Error(err))
		return fallbackAnalysis(res)
	}
	return text
}

// fallbackAnalysis summarizes the graded quiz when the model is unavailable.
func fallbackAnalysis(res Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You scored %d out of %d (%.1f%%).", res.Score, res.TotalQuestions, res.ScorePercentage)
	if len(res.WeakTopics) > 0 {
		fmt.Fprintf(&b, " Focus your revision on: %s.", strings.Join(res.WeakTopics, ", "))
	}
	if len(res.StrongTopics) > 0 {
		fmt.Fprintf(&b, " You showed solid understanding of: %s.", strings.Join(res.StrongTopics, ", "))
	}
	return b.String()
}

func formatTopicPerformance(perf map[string]domain.TopicPerformance) string {
	topics := make([]string, 0, len(perf))
	for topic := range perf {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	lines := make([]string, len(topics))
	for i, topic := range topics {
		p := perf[topic]
		lines[i] = fmt.Sprintf("%s: %d/%d", topic, p.Correct, p.Total)
	}
	return strings.Join(lines, "\n")
}

func joinOrNone(topics []string) string {
	if len(topics) == 0 {
		return "None"
	}
	return strings.Join(topics, ", ")
}
