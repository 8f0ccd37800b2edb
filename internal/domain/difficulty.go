package domain

// Difficulty is the closed set of difficulty levels used by workout types,
// exercises, exercise logs and user fitness levels.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
	Expert       Difficulty = "expert"
)

// Difficulties lists every valid difficulty level.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced, Expert}

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced, Expert:
		return true
	}
	return false
}
