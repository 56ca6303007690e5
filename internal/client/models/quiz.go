package models

// QuizOption is one selectable answer.
type QuizOption struct {
	Text    string
	Correct bool
}

// QuizQuestion is a question with exactly one correct option.
type QuizQuestion struct {
	Prompt  string
	Options []QuizOption
}

// CorrectText returns the text of the correct option, or "" if none is marked.
func (q QuizQuestion) CorrectText() string {
	for _, o := range q.Options {
		if o.Correct {
			return o.Text
		}
	}
	return ""
}

// DefaultQuizQuestions is the fixed question bank.
var DefaultQuizQuestions = []QuizQuestion{
	{
		Prompt: "Which of the following is a sign of a phishing email?",
		Options: []QuizOption{
			{Text: "An email from a known contact asking for a file"},
			{Text: "Grammatical errors and suspicious links", Correct: true},
			{Text: "A secure website address (https://)"},
			{Text: "A welcome email from a trusted service"},
		},
	},
	{
		Prompt: "What should you do if a message asks for your password?",
		Options: []QuizOption{
			{Text: "Reply immediately with your password"},
			{Text: "Verify the source before responding", Correct: true},
			{Text: "Ignore all emails from your company"},
			{Text: "Click the link and change your password"},
		},
	},
	{
		Prompt: "What is a phishing attack?",
		Options: []QuizOption{
			{Text: "A fishing technique used in rivers"},
			{Text: "A way to steal personal information via fake messages", Correct: true},
			{Text: "A password recovery method"},
			{Text: "An antivirus scanning process"},
		},
	},
}
