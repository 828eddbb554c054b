package questions

import (
	"fmt"
	"strings"
)

const systemInstruction = "You are a smart interview assistant that generates personalized interview questions."

// Experience is one past position from the candidate's profile.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Project is one profile project entry.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Profile is the snapshot the question generator works from. Profile CRUD
// itself lives outside this service; callers pass the resolved data in.
type Profile struct {
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Skills     []string     `json:"skills"`
}

// BuildQuestionsPrompt renders the question-generation prompt for a profile.
// Deterministic; empty profile sections render as empty context blocks.
func BuildQuestionsPrompt(profile Profile) string {
	experience := make([]string, 0, len(profile.Experience))
	for _, exp := range profile.Experience {
		experience = append(experience, fmt.Sprintf("%s at %s (%s - %s): %s",
			exp.Position, exp.Company, exp.StartDate, exp.EndDate, exp.Description))
	}

	projects := make([]string, 0, len(profile.Projects))
	for _, proj := range profile.Projects {
		projects = append(projects, fmt.Sprintf("Project: %s - %s", proj.Name, proj.Description))
	}

	return fmt.Sprintf(`Based on the following user profile, generate %d personalized interview questions:

Experience:
%s

Projects:
%s

Skills:
%s

Generate %d questions that cover the user's experience, projects, and skills. Focus on challenging
technical questions related to their skills and projects, and behavioral questions based on their experience.
Return only the questions as an array of strings, without any additional text.`,
		questionCount,
		strings.Join(experience, "\n"),
		strings.Join(projects, "\n"),
		strings.Join(profile.Skills, ", "),
		questionCount,
	)
}
