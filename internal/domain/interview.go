package domain

// Interview types and session states.
const (
	InterviewTypeTechnical  = "technical"
	InterviewTypeBehavioral = "behavioral"
	InterviewTypeMixed      = "mixed"

	InterviewStatusActive    = "active"
	InterviewStatusCompleted = "completed"

	// InterviewRoleInterviewer marks AI turns in the session transcript.
	InterviewRoleInterviewer = "interviewer"
	// InterviewRoleCandidate marks user turns.
	InterviewRoleCandidate = "user"
)

// InterviewMessage is one turn in an interview session.
type InterviewMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// InterviewScore is the AI evaluation produced when a session ends.
type InterviewScore struct {
	OverallScore        int      `json:"overall_score"`
	CommunicationScore  int      `json:"communication_score"`
	TechnicalScore      int      `json:"technical_score"`
	ProblemSolvingScore int      `json:"problem_solving_score"`
	Strengths           []string `json:"strengths"`
	Improvements        []string `json:"improvements"`
	Recommendations     []string `json:"recommendations"`
}

// InterviewSession is a simulated job interview tied to a notebook.
type InterviewSession struct {
	ID            string             `json:"session_id"`
	NotebookID    string             `json:"notebook_id"`
	InterviewType string             `json:"interview_type"`
	Difficulty    string             `json:"difficulty"`
	Duration      int                `json:"duration"` // minutes
	Messages      []InterviewMessage `json:"messages"`
	Status        string             `json:"status"`
	Score         *InterviewScore    `json:"score,omitempty"`
	CreatedAt     string             `json:"created_at"`
	CompletedAt   string             `json:"completed_at,omitempty"`
}
