package domain

// QuizQuestion is an MCQ with its answer key. The key never leaves the
// server; responses to the client strip CorrectAnswer and Explanation.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
}

// Quiz is an ephemeral generated quiz held until submission or TTL expiry.
type Quiz struct {
	ID          string         `json:"id"`
	Questions   []QuizQuestion `json:"questions"`
	DocumentIDs []string       `json:"document_ids,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

// QuizAnswer is one submitted MCQ choice.
type QuizAnswer struct {
	QuestionIndex  int `json:"question_index"`
	SelectedOption int `json:"selected_option"`
}

// QuizQuestionResult is the graded outcome of a single quiz question.
type QuizQuestionResult struct {
	QuestionIndex  int    `json:"question_index"`
	Question       string `json:"question"`
	SelectedOption int    `json:"selected_option"`
	CorrectAnswer  int    `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
	Explanation    string `json:"explanation"`
	Topic          string `json:"topic"`
}

// TopicPerformance aggregates correct/total counts per topic.
type TopicPerformance struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}
