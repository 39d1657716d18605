package prompt

import "fmt"

func interviewContext(interviewType string) string {
	switch interviewType {
	case "technical":
		return "You are conducting a technical interview. Focus on coding, algorithms, data structures, and technical problem-solving."
	case "behavioral":
		return "You are conducting a behavioral interview. Focus on past experiences, teamwork, leadership, and soft skills."
	default:
		return "You are conducting a comprehensive interview covering both technical skills and behavioral aspects."
	}
}

func interviewDifficulty(difficulty string) string {
	switch difficulty {
	case "easy":
		return "Ask entry-level questions suitable for beginners."
	case "medium":
		return "Ask intermediate-level questions for experienced candidates."
	case "hard":
		return "Ask advanced questions for senior-level positions."
	default:
		return ""
	}
}

// InterviewStart builds the system prompt that opens an interview session.
func InterviewStart(interviewType, difficulty string, duration int) string {
	return fmt.Sprintf(`You are an AI interviewer for a job interview simulation. %s
%s

Guidelines:
1. Be professional and friendly
2. Ask one question at a time
3. Listen to the candidate's response and ask relevant follow-up questions
4. The interview will last approximately %d minutes
5. Start with an introduction and ask the first question
6. Keep questions concise and clear
7. Adapt your questions based on the candidate's responses

Start the interview with a friendly introduction and ask your first question.`,
		interviewContext(interviewType), interviewDifficulty(difficulty), duration)
}

// InterviewContinue builds the system prompt for mid-interview turns.
func InterviewContinue(interviewType string) string {
	var context string
	switch interviewType {
	case "technical":
		context = "You are conducting a technical interview. Focus on coding, algorithms, and problem-solving."
	case "behavioral":
		context = "You are conducting a behavioral interview. Focus on experiences and soft skills."
	default:
		context = "You are conducting a comprehensive interview."
	}

	return fmt.Sprintf(`%s
Continue the interview by:
1. Acknowledging the candidate's response briefly
2. Asking a relevant follow-up question or moving to a new topic
3. Keep your response concise (2-3 sentences max)
4. Be professional and encouraging`, context)
}

// InterviewScore asks for a structured evaluation of the full transcript.
func InterviewScore(interviewType, difficulty, transcript string) string {
	return fmt.Sprintf(`Analyze this job interview transcript and provide detailed scoring and feedback.

Interview Type: %s
Difficulty: %s

TRANSCRIPT:
%s

Provide a JSON response with the following structure:
{
    "overall_score": <0-100>,
    "communication_score": <0-100>,
    "technical_score": <0-100>,
    "problem_solving_score": <0-100>,
    "strengths": ["strength1", "strength2", "strength3"],
    "improvements": ["area1", "area2", "area3"],
    "recommendations": ["recommendation1", "recommendation2", "recommendation3"]
}

Evaluate based on:
1. Communication: Clarity, articulation, professionalism
2. Technical Knowledge: Understanding of concepts, depth of answers
3. Problem Solving: Analytical thinking, approach to questions
4. Overall: Holistic performance assessment

Be constructive and specific in your feedback.`, interviewType, difficulty, transcript)
}
