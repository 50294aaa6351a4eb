package validation

import "github.com/abhisek/devsecquest/internal/store"

// CICDChallengeName identifies the CI/CD pipeline hardening challenge.
const CICDChallengeName = "CI/CD Security Challenge"

// CICDChallenge returns the fields used to create the CI/CD challenge.
func CICDChallenge() store.ChallengeFields {
	points := store.DefaultPoints
	return store.ChallengeFields{
		Name:        CICDChallengeName,
		Description: "Secure a vulnerable Jenkins pipeline by identifying and fixing security issues.",
		Points:      &points,
		Difficulty:  store.DifficultyIntermediate,
	}
}
