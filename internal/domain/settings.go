package domain

// Settings holds per-user rendering preferences
type Settings struct {
	RepeatCount int
	PauseMs     int
	Direction   Direction
}

// Default settings applied to a user seen for the first time
const (
	DefaultRepeatCount = 3
	DefaultPauseMs     = 500
)

// DefaultSettings returns the settings of a never-seen user
func DefaultSettings() Settings {
	return Settings{
		RepeatCount: DefaultRepeatCount,
		PauseMs:     DefaultPauseMs,
		Direction:   DirectionEnRu,
	}
}

// Choices offered by the settings keyboard
var (
	RepeatChoices = []int{1, 2, 3, 4, 5, 7}
	PauseChoices  = []int{300, 500, 800, 1000, 1500}
)
