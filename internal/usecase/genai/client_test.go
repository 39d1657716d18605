package genai

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
)

// mockModel returns scripted responses in order.
type mockModel struct {
	responses []string
	errs      []error
	calls     int
	lastOpts  domain.ChatOptions
	lastMsgs  []domain.Message
}

func (m *mockModel) Chat(_ context.Context, messages []domain.Message, opts domain.ChatOptions) (string, error) {
	i := m.calls
	m.calls++
	m.lastOpts = opts
	m.lastMsgs = messages
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

type evalResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

func TestObject_ParsesCleanJSON(t *testing.T) {
	model := &mockModel{responses: []string{`{"score": 85, "feedback": "solid"}`}}
	client := New(model, zap.NewNop())

	var out evalResult
	err := client.Object(context.Background(), Spec{
		Task:        "theory_eval",
		System:      "evaluator",
		Prompt:      "evaluate",
		Temperature: 0.2,
		MaxTokens:   500,
		Required:    []string{"score", "feedback"},
	}, &out)
	if err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if out.Score != 85 || out.Feedback != "solid" {
		t.Errorf("unexpected result: %+v", out)
	}

	if model.lastOpts.Temperature != 0.2 || model.lastOpts.MaxTokens != 500 {
		t.Errorf("options not forwarded: %+v", model.lastOpts)
	}
	if model.lastOpts.Task != "theory_eval" {
		t.Errorf("task label not forwarded: %q", model.lastOpts.Task)
	}
	if len(model.lastMsgs) != 2 || model.lastMsgs[0].Role != domain.RoleSystem {
		t.Errorf("expected system + user messages, got %+v", model.lastMsgs)
	}
}

func TestObject_StripsFenceAndCommentary(t *testing.T) {
	model := &mockModel{responses: []string{
		"Here is the evaluation:\n```json\n{\"score\": 70, \"feedback\": \"ok\"}\n```",
	}}
	client := New(model, zap.NewNop())

	var out evalResult
	err := client.Object(context.Background(), Spec{Task: "t", Prompt: "p", Required: []string{"score"}}, &out)
	if err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if out.Score != 70 {
		t.Errorf("score = %d, want 70", out.Score)
	}
}

func TestObject_MissingRequiredFieldFails(t *testing.T) {
	model := &mockModel{responses: []string{`{"score": 50}`}}
	client := New(model, zap.NewNop())

	var out evalResult
	err := client.Object(context.Background(), Spec{Task: "t", Prompt: "p", Required: []string{"score", "feedback"}}, &out)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
}

func TestObject_RetriesThenSucceeds(t *testing.T) {
	model := &mockModel{responses: []string{
		"not json at all",
		`{"score": 60, "feedback": "second try"}`,
	}}
	client := New(model, zap.NewNop())

	var out evalResult
	err := client.Object(context.Background(), Spec{
		Task: "t", Prompt: "p", Retries: 2, Required: []string{"score"},
	}, &out)
	if err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if model.calls != 2 {
		t.Errorf("calls = %d, want 2", model.calls)
	}
	if out.Score != 60 {
		t.Errorf("score = %d, want 60", out.Score)
	}
}

func TestObject_TransportErrorCountsAsAttempt(t *testing.T) {
	model := &mockModel{
		errs:      []error{errors.New("rate limited"), nil},
		responses: []string{"", `{"score": 40, "feedback": "f"}`},
	}
	client := New(model, zap.NewNop())

	var out evalResult
	err := client.Object(context.Background(), Spec{Task: "t", Prompt: "p", Retries: 1}, &out)
	if err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if model.calls != 2 {
		t.Errorf("calls = %d, want 2", model.calls)
	}
}

func TestObject_ExhaustedAttemptsReturnsError(t *testing.T) {
	model := &mockModel{responses: []string{"garbage", "more garbage"}}
	client := New(model, zap.NewNop())

	var out evalResult
	err := client.Object(context.Background(), Spec{Task: "t", Prompt: "p", Retries: 1}, &out)
	if err == nil {
		t.Fatal("expected error after exhausted attempts")
	}
	if model.calls != 2 {
		t.Errorf("calls = %d, want 2", model.calls)
	}
}

func TestArray_ValidatesElementsAndMinItems(t *testing.T) {
	type question struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correct_answer"`
	}

	model := &mockModel{responses: []string{
		`[{"question":"Q1?","options":["a","b","c","d"],"correct_answer":1}]`,
	}}
	client := New(model, zap.NewNop())

	var out []question
	err := client.Array(context.Background(), Spec{
		Task: "quiz", Prompt: "p",
		Required: []string{"question", "options", "correct_answer"},
		MinItems: 1,
	}, &out)
	if err != nil {
		t.Fatalf("Array failed: %v", err)
	}
	if len(out) != 1 || out[0].CorrectAnswer != 1 {
		t.Errorf("unexpected result: %+v", out)
	}
}

func TestArray_EmptyFailsMinItems(t *testing.T) {
	model := &mockModel{responses: []string{`[]`}}
	client := New(model, zap.NewNop())

	var out []map[string]any
	err := client.Array(context.Background(), Spec{Task: "quiz", Prompt: "p", MinItems: 1}, &out)
	if err == nil {
		t.Fatal("expected error for empty array")
	}
}

func TestArray_ElementMissingFieldFails(t *testing.T) {
	model := &mockModel{responses: []string{`[{"question":"Q1?"},{"options":["a"]}]`}}
	client := New(model, zap.NewNop())

	var out []map[string]any
	err := client.Array(context.Background(), Spec{Task: "quiz", Prompt: "p", Required: []string{"question"}}, &out)
	if err == nil {
		t.Fatal("expected error for element missing required field")
	}
}
