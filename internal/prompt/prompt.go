// Package prompt assembles the LLM prompts for every generation task.
// Structured tasks embed the expected JSON shape inline and instruct the
// model to return only JSON; parsing still treats the output as untrusted.
package prompt

import (
	"fmt"
	"strings"
)

// System prompts per task family.
const (
	QuizSystem     = "You are a helpful educational assistant that creates high-quality quiz questions. Always respond with valid JSON only."
	MockTestSystem = "You are an expert educational assessment creator. Always respond with valid JSON only."
	EvalSystem     = "You are an educational evaluator. You MUST respond with ONLY valid JSON. No markdown, no explanations, just the JSON object."
	CodeEvalSystem = "You are a code evaluator. You MUST respond with ONLY valid JSON. No markdown, no explanations, just the JSON object."
	CardSystem     = "You are a learning content creator. Always respond with valid JSON only, no markdown or extra text."
)

// Answer builds the grounded Q&A prompt from retrieved context.
func Answer(context, question string) string {
	return fmt.Sprintf(`Based on the following context from the uploaded documents, please answer the question.
If the answer cannot be found in the context, say so.

Context:
%s

Question: %s

Answer:`, context, question)
}

// Quiz asks for MCQs as a JSON array.
func Quiz(context string, numQuestions int, difficulty string) string {
	return fmt.Sprintf(`Based on the following content from educational documents, generate %d multiple-choice questions (MCQs).

Content:
%s

Requirements:
1. Generate exactly %d questions
2. Each question should have 4 options (A, B, C, D)
3. Questions should test understanding of the content
4. Difficulty level: %s
5. Indicate the correct answer for each question
6. Questions should be diverse and cover different topics from the content

Format your response as a JSON array with this structure:
[
  {
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct_answer": 0,
    "explanation": "Brief explanation of why this is correct",
    "topic": "Main topic this question covers"
  }
]

IMPORTANT: Return ONLY the JSON array, no additional text.`, numQuestions, context, numQuestions, difficulty)
}

// QuizAnalysis asks for free-text feedback on a graded quiz.
func QuizAnalysis(correct, total int, pct float64, topicPerformance, weakTopics, strongTopics string) string {
	return fmt.Sprintf(`Analyze this quiz performance and provide personalized feedback:

Score: %d/%d (%.1f%%)

Topic Performance:
%s

Weak Topics: %s
Strong Topics: %s

Provide:
1. Brief overall assessment (2-3 sentences)
2. Specific areas to improve with actionable recommendations
3. Strengths to maintain
4. Study suggestions

Keep the response concise, encouraging, and actionable.`, correct, total, pct, topicPerformance, weakTopics, strongTopics)
}

// functionSignatureExamples shows the model what a signature looks like in
// each supported language.
var functionSignatureExamples = map[string]string{
	"python":     "def function_name(params):",
	"javascript": "function functionName(params) { }",
	"java":       "public returnType functionName(params) { }",
	"cpp":        "returnType functionName(params) { }",
	"c":          "returnType functionName(params) { }",
	"go":         "func functionName(params) returnType { }",
	"rust":       "fn function_name(params) -> ReturnType { }",
	"typescript": "function functionName(params): ReturnType { }",
}

// FunctionSignatureExample returns a language-appropriate signature template,
// defaulting to python.
func FunctionSignatureExample(language string) string {
	if ex, ok := functionSignatureExamples[strings.ToLower(language)]; ok {
		return ex
	}
	return functionSignatureExamples["python"]
}

// MockTest asks for a full test (theory/coding/reorder sections) as one JSON object.
func MockTest(context string, numTheory, numCoding, numReorder int, difficulty, language string, hasCode bool) string {
	funcExample := FunctionSignatureExample(language)
	langUpper := strings.ToUpper(language)

	codingCount := numCoding
	codingNote := "(code-related content detected)"
	if !hasCode {
		codingCount = 0
		codingNote = "(skip if content is not programming-related)"
	}

	return fmt.Sprintf(`Based on the following educational content, generate a comprehensive mock test.

Content:
%s

Generate a JSON object with the following structure:
{
  "theory_questions": [
    {
      "question": "Theory question text?",
      "topic": "Topic name",
      "expected_points": ["key point 1", "key point 2"],
      "difficulty": "%s"
    }
  ],
  "coding_questions": [
    {
      "question": "Coding problem description",
      "topic": "Topic name",
      "function_signature": "%s",
      "language": "%s",
      "test_cases": [
        {"input": "example input", "expected_output": "expected result"}
      ],
      "difficulty": "%s"
    }
  ],
  "reorder_questions": [
    {
      "question": "Put these steps in the correct order:",
      "topic": "Topic name",
      "items": ["Step 1", "Step 2", "Step 3", "Step 4"],
      "correct_order": ["Step 2", "Step 1", "Step 4", "Step 3"],
      "difficulty": "%s"
    }
  ]
}

Requirements:
1. Generate %d theory questions that require written explanations
2. Generate %d coding questions in %s %s
3. Generate %d reordering questions for sequential/procedural content
4. Theory questions should test understanding and ask for explanations
5. Coding questions MUST be in %s with appropriate syntax and function signatures
6. Reorder questions should have items shuffled (not in correct order)
7. Difficulty: %s

IMPORTANT: Return ONLY the JSON object, no additional text.`,
		context, difficulty, funcExample, language, difficulty, difficulty,
		numTheory, codingCount, langUpper, codingNote, numReorder, langUpper, difficulty)
}

// EvalTheory asks for a rubric evaluation of a written answer.
func EvalTheory(question string, expectedPoints []string, answer string) string {
	return fmt.Sprintf(`Evaluate this answer to a theory question and respond with ONLY a JSON object.

Question: %s

Expected key points: %s

Student's answer: %s

Return ONLY this JSON format (no other text):
{
  "score": <number 0-100>,
  "feedback": "<detailed feedback on what was good and what was missing>",
  "covered_points": ["<point 1>", "<point 2>"],
  "missing_points": ["<point 1>", "<point 2>"]
}

Be fair but thorough. Award partial credit for partially correct answers.
CRITICAL: Return ONLY the JSON object. No explanations before or after.`,
		question, strings.Join(expectedPoints, ", "), answer)
}

// EvalCode asks for a rubric evaluation of a code solution.
func EvalCode(problem, signature, testCases, language, code string) string {
	return fmt.Sprintf("Evaluate this code solution and respond with ONLY a JSON object.\n\n"+
		"Problem: %s\n\n"+
		"Expected function signature: %s\n\n"+
		"Test cases:\n%s\n\n"+
		"Student's code:\n```%s\n%s\n```\n\n"+
		"Return ONLY this JSON format (no other text):\n"+
		"{\n"+
		"  \"score\": <number 0-100>,\n"+
		"  \"correctness\": \"<brief assessment of logic>\",\n"+
		"  \"code_quality\": \"<brief assessment of quality>\",\n"+
		"  \"test_results\": [\"<pass or fail for each test>\"],\n"+
		"  \"feedback\": \"<detailed feedback in 2-3 sentences>\",\n"+
		"  \"suggestions\": [\"<suggestion 1>\", \"<suggestion 2>\"]\n"+
		"}\n\n"+
		"CRITICAL: Return ONLY the JSON object. No explanations before or after.",
		problem, signature, testCases, language, code)
}

// TestAnalysis asks for free-text feedback on a graded mock test.
func TestAnalysis(overall, theoryAvg, codingAvg, reorderAvg float64, numTheory, numCoding, numReorder int, topicPerformance string) string {
	return fmt.Sprintf(`Provide a comprehensive performance analysis for this mock test:

Overall Score: %.1f%%

Theory Questions Performance: %.1f%% (%d questions)
Coding Questions Performance: %.1f%% (%d questions)
Reordering Performance: %.1f%% (%d questions)

Topic Performance:
%s

Provide:
1. Overall assessment (2-3 sentences)
2. Strengths demonstrated
3. Areas needing improvement
4. Specific study recommendations
5. Next steps for preparation

Keep it encouraging but honest and actionable.`,
		overall, theoryAvg, numTheory, codingAvg, numCoding, reorderAvg, numReorder, topicPerformance)
}

// AnnotationQuery asks a question about a highlighted passage.
func AnnotationQuery(highlightedText, question string) string {
	return fmt.Sprintf(`Based on this highlighted text from the document:

"%s"

Question: %s

Provide a clear and detailed answer.`, highlightedText, question)
}
