// Package gemini implements the generation boundary using Google's
// Gemini API.
package gemini

// promptData is the data passed to the prompt template.
type promptData struct {
	Topic string
}

// responseSchema is the JSON structure the model is asked to return.
type responseSchema struct {
	Notes      []noteSchema      `json:"notes"`
	Flashcards []flashcardSchema `json:"flashcards"`
	MCQ        []mcqSchema       `json:"mcq"`
	Short      []shortSchema     `json:"short"`
}

type noteSchema struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points"`
}

type flashcardSchema struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type mcqSchema struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type shortSchema struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
