package feedback

import (
	"fmt"
	"strings"

	domainfeedback "prepmate/internal/domain/feedback"
)

// systemInstruction pins the model's role for every feedback request.
const systemInstruction = "You are an AI assistant that provides structured, direct feedback to interviewees on their responses, including an overall performance summary."

const promptHeader = "Analyze the following interview conversation based on the transcript and provide feedback directly to the interviewee."

const promptFormat = `For each response, STRICTLY FOLLOW this exact formatting WITHOUT ANY ASTERISKS:

Label: [Good/Needs Improvement]
Question: [Interviewer's question]
Your Answer: [Interviewee's answer]
Feedback: [Provide direct feedback to the interviewee]
Category: [List applicable categories from:
- Formality of Language
- Clarity of Content
- Logical Organization
- Conciseness
- Relevance to Question
- Completeness of Answer]
Suggestions for improvement: [Specific improvements for each listed category]

Overall Performance Summary
After analyzing all individual responses, provide a summary using this format:

For each response, STRICTLY FOLLOW this exact formatting WITHOUT ANY ASTERISKS:

Relevant Responses: [How well answers aligned with questions]
Clarity and Structure: [Coherence and organization of answers]
Professional Language: [Professionalism of language]
Initial Ideas: [Originality or thoughtfulness]
Additional Notable Aspects: [Other strengths or improvement areas]
Score: [X/10]

IMPORTANT INSTRUCTIONS:
1. Use the EXACT format shown above
2. Do NOT use asterisks anywhere
3. Be direct and specific in your feedback
4. Address the interviewee directly

Example:
Label: Needs Improvement
Question: Tell me about your previous work experience
Your Answer: I worked at companies and did stuff
Feedback: Your response lacks specific details and professional language
Category: Formality of Language, Clarity of Content, Completeness of Answer
Suggestions for improvement: Use more formal business language, Provide specific details about roles and responsibilities, Include timeline and company names with concrete achievements

Example Overall Performance Summary:
Relevant Responses: Your responses needed more alignment with the questions asked
Clarity and Structure: Responses lacked proper structure and organization
Professional Language: Language used was too informal for an interview setting
Initial Ideas: You showed some creative thinking in your approaches
Additional Notable Aspects: Need to improve response completeness
Score: 5/10`

// BuildFeedbackPrompt renders the instruction block for a normalized
// transcript. Pure string assembly: the same exchanges always produce the
// same prompt, and an empty exchange list still yields a valid prompt with
// zero question sections.
func BuildFeedbackPrompt(exchanges []domainfeedback.Exchange) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n")

	for i, exchange := range exchanges {
		fmt.Fprintf(&sb, "\nQuestion %d: %s\nAnswer %d: %s\n", i+1, exchange.Question, i+1, exchange.Answer)
	}

	sb.WriteString("\n")
	sb.WriteString(promptFormat)
	return sb.String()
}
