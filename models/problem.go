package models

// Difficulty identifies a practice tier. It selects which sentence catalog
// and which fallback reference entries apply.
type Difficulty string

const (
	DifficultyToeic         Difficulty = "toeic"
	DifficultyMiddleSchool  Difficulty = "middle-school"
	DifficultyHighSchool    Difficulty = "high-school"
	DifficultyBasicVerbs    Difficulty = "basic-verbs"
	DifficultyBusinessEmail Difficulty = "business-email"
	DifficultySimulation    Difficulty = "simulation"
)

// Difficulties lists every recognized tier in display order.
var Difficulties = []Difficulty{
	DifficultyToeic,
	DifficultyMiddleSchool,
	DifficultyHighSchool,
	DifficultyBasicVerbs,
	DifficultyBusinessEmail,
	DifficultySimulation,
}

// Valid reports whether d is one of the enumerated difficulties.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Problem is a single practice sentence issued to a session.
type Problem struct {
	JapaneseSentence string     `json:"japaneseSentence"`
	Difficulty       Difficulty `json:"difficulty"`
	Hints            []string   `json:"hints"`
}
