package prompt

import "fmt"

// Note generation subtypes accepted by the API.
const (
	NoteSummary         = "summary"
	NoteKeyPoints       = "key_points"
	NoteMindMap         = "mind_map"
	NoteFlashcards      = "flashcards"
	NoteQuiz            = "quiz"
	NoteTimeline        = "timeline"
	NoteComparisonTable = "comparison_table"
)

// Note builds the generation prompt for a note subtype and returns the
// stored note_type the result should carry. Unknown subtypes fall back to
// generic study notes.
func Note(noteType, context string) (prompt, storedType string) {
	switch noteType {
	case NoteSummary:
		return fmt.Sprintf("Create a comprehensive summary of the following content:\n\n%s\n\nProvide a well-structured summary with key points.", context),
			"rich_text"
	case NoteKeyPoints:
		return fmt.Sprintf("Extract and list the key points from the following content:\n\n%s\n\nFormat as bullet points with brief explanations.", context),
			"rich_text"
	case NoteMindMap:
		return fmt.Sprintf("Create a mind map structure from the following content:\n\n%s\n\nFormat as a hierarchical text structure with main topics and subtopics. Use indentation (2 spaces per level) to show hierarchy. Start each line with a dash. Example:\n- Main Topic 1\n  - Subtopic 1.1\n    - Detail 1.1.1\n  - Subtopic 1.2\n- Main Topic 2", context),
			"ai_mindmap"
	case NoteFlashcards:
		return fmt.Sprintf("Create study flashcards from the following content:\n\n%s\n\nFormat each flashcard as:\nQ: [Question]\nA: [Answer]\n\nCreate 5-10 flashcards covering the most important concepts. Separate each flashcard with a blank line.", context),
			"ai_flashcards"
	case NoteQuiz:
		return fmt.Sprintf("Create a multiple choice quiz from the following content:\n\n%s\n\nFor each question, provide:\n1. The question text\nA) First option\nB) Second option\nC) Third option\nD) Fourth option\nAnswer: [Correct letter]\nExplanation: [Brief explanation]\n\nCreate 5-8 questions. Separate each question with a blank line.", context),
			"ai_quiz"
	case NoteTimeline:
		return fmt.Sprintf("Create a chronological timeline from the following content:\n\n%s\n\nFormat each event as:\n[Date/Year]: [Event Title]\n[Description]\n\nList events in chronological order. Separate each event with a blank line.", context),
			"ai_timeline"
	case NoteComparisonTable:
		return fmt.Sprintf("Create a comparison table from the following content:\n\n%s\n\nFormat as a markdown table comparing key concepts, features, or topics. Include relevant columns and rows.", context),
			"rich_text"
	default:
		return fmt.Sprintf("Create study notes from the following content:\n\n%s\n\nMake it comprehensive and well-organized.", context),
			"rich_text"
	}
}
