// Package evaluate grades free-form answers with the LLM. Every grading
// call has a deterministic moderate fallback so a model outage degrades a
// submission to neutral scores instead of failing it.
package evaluate

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/prompt"
	"github.com/prism-learn/prism/internal/usecase/genai"
)

const fallbackScore = 50

// Service evaluates theory answers, code solutions, reorderings and full
// interview transcripts.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

// New creates an evaluation service.
func New(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Theory grades a written answer against the question's expected points.
func (s *Service) Theory(ctx context.Context, q domain.TheoryQuestion, answer string) domain.TheoryEvaluation {
	var eval domain.TheoryEvaluation
	err := s.gen.Object(ctx, genai.Spec{
		Task:        "eval_theory",
		System:      prompt.EvalSystem,
		Prompt:      prompt.EvalTheory(q.Question, q.ExpectedPoints, answer),
		Temperature: 0.2,
		MaxTokens:   500,
		Required:    []string{"score", "feedback"},
	}, &eval)
	if err != nil {
		s.logger.Warn("theory evaluation failed", zap.Error(err))
		return domain.TheoryEvaluation{
			Score:         fallbackScore,
			Feedback:      "Your answer has been recorded but could not be fully evaluated. Consider providing more detail and covering the key concepts.",
			CoveredPoints: []string{},
			MissingPoints: []string{},
		}
	}
	return eval
}

// Code grades a submitted solution against the problem and its test cases.
func (s *Service) Code(ctx context.Context, q domain.CodingQuestion, code, language string) domain.CodeEvaluation {
	testCases, err := json.MarshalIndent(q.TestCases, "", "  ")
	if err != nil {
		testCases = []byte("[]")
	}

	var eval domain.CodeEvaluation
	err = s.gen.Object(ctx, genai.Spec{
		Task:        "eval_code",
		System:      prompt.CodeEvalSystem,
		Prompt:      prompt.EvalCode(q.Question, q.FunctionSignature, string(testCases), language, code),
		Temperature: 0.2,
		MaxTokens:   800,
		Required:    []string{"score", "feedback"},
	}, &eval)
	if err != nil {
		s.logger.Warn("code evaluation failed", zap.Error(err))
		return domain.CodeEvaluation{
			Score:       fallbackScore,
			Correctness: "Code has syntax errors or incomplete implementation",
			CodeQuality: "Needs improvement",
			TestResults: []string{},
			Feedback:    "The code appears incomplete or has errors. Please review the function signature and ensure proper implementation.",
			Suggestions: []string{"Complete the function implementation", "Fix any syntax errors", "Test with provided test cases"},
		}
	}
	return eval
}

// Reorder scores an ordering deterministically: matching positions over
// total items, as a percentage.
func (s *Service) Reorder(q domain.ReorderQuestion, ordered []string) (score float64, correctPositions int) {
	if len(q.CorrectOrder) == 0 {
		return 0, 0
	}
	for i, item := range ordered {
		if i < len(q.CorrectOrder) && item == q.CorrectOrder[i] {
			correctPositions++
		}
	}
	return float64(correctPositions) / float64(len(q.CorrectOrder)) * 100, correctPositions
}

// Interview scores a full interview transcript across communication,
// technical depth and problem solving.
func (s *Service) Interview(ctx context.Context, interviewType, difficulty, transcript string) domain.InterviewScore {
	var score domain.InterviewScore
	err := s.gen.Object(ctx, genai.Spec{
		Task:        "interview_score",
		Prompt:      prompt.InterviewScore(interviewType, difficulty, transcript),
		Temperature: 0.5,
		MaxTokens:   1000,
		Required:    []string{"overall_score", "communication_score", "technical_score", "problem_solving_score"},
	}, &score)
	if err != nil {
		s.logger.Warn("interview scoring failed", zap.Error(err))
		return domain.InterviewScore{
			OverallScore:        75,
			CommunicationScore:  75,
			TechnicalScore:      70,
			ProblemSolvingScore: 75,
			Strengths:           []string{"Participated actively", "Showed engagement", "Attempted all questions"},
			Improvements:        []string{"Practice more technical concepts", "Provide more detailed examples", "Work on time management"},
			Recommendations:     []string{"Study common interview questions", "Practice mock interviews", "Review fundamental concepts"},
		}
	}
	return score
}
