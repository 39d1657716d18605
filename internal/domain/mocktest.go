package domain

// TheoryQuestion asks for a written explanation, graded against expected points.
type TheoryQuestion struct {
	Question       string   `json:"question"`
	Topic          string   `json:"topic"`
	ExpectedPoints []string `json:"expected_points"`
	Difficulty     string   `json:"difficulty"`
}

// TestCase pairs an input with its expected output for coding questions.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

// CodingQuestion is a programming problem in a specific language.
type CodingQuestion struct {
	Question          string     `json:"question"`
	Topic             string     `json:"topic"`
	FunctionSignature string     `json:"function_signature"`
	Language          string     `json:"language"`
	TestCases         []TestCase `json:"test_cases"`
	Difficulty        string     `json:"difficulty"`
}

// ReorderQuestion presents shuffled items to be put in the correct order.
type ReorderQuestion struct {
	Question     string   `json:"question"`
	Topic        string   `json:"topic"`
	Items        []string `json:"items"`
	CorrectOrder []string `json:"correct_order"`
	Difficulty   string   `json:"difficulty"`
}

// MockTest is an ephemeral generated test held until submission or TTL expiry.
type MockTest struct {
	ID               string            `json:"id"`
	TheoryQuestions  []TheoryQuestion  `json:"theory_questions"`
	CodingQuestions  []CodingQuestion  `json:"coding_questions"`
	ReorderQuestions []ReorderQuestion `json:"reorder_questions"`
	DocumentIDs      []string          `json:"document_ids,omitempty"`
	HasCode          bool              `json:"has_code"`
	CreatedAt        string            `json:"created_at"`
}

// TheoryAnswer is a submitted written answer.
type TheoryAnswer struct {
	QuestionIndex int    `json:"question_index"`
	AnswerText    string `json:"answer_text"`
}

// CodingAnswer is a submitted code solution.
type CodingAnswer struct {
	QuestionIndex int    `json:"question_index"`
	Code          string `json:"code"`
	Language      string `json:"language"`
}

// ReorderAnswer is a submitted item ordering.
type ReorderAnswer struct {
	QuestionIndex int      `json:"question_index"`
	OrderedItems  []string `json:"ordered_items"`
}

// TheoryEvaluation is the rubric result for a theory answer.
type TheoryEvaluation struct {
	Score         float64  `json:"score"`
	Feedback      string   `json:"feedback"`
	CoveredPoints []string `json:"covered_points"`
	MissingPoints []string `json:"missing_points"`
}

// CodeEvaluation is the rubric result for a code answer.
type CodeEvaluation struct {
	Score       float64  `json:"score"`
	Correctness string   `json:"correctness"`
	CodeQuality string   `json:"code_quality"`
	TestResults []string `json:"test_results"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}
