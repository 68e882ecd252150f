package model

type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Interests []string `json:"interests,omitempty"`
}

// StreakResult is the backend's answer to a streak update ping.
type StreakResult struct {
	StreakUpdated         bool   `json:"streakUpdated"`
	AlreadyCompletedToday bool   `json:"alreadyCompletedToday"`
	NextAvailableAt       string `json:"nextAvailableAt,omitempty"`
}
