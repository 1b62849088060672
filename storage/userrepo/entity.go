package userrepo

import (
	"strings"
	"time"
)

const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// DefaultGenerationsLimit is the free tier AI generation quota.
const DefaultGenerationsLimit = 5

// User is one account row. Immutable after registration except the plan tier
// and the generation counters.
type User struct {
	ID                 string    `json:"id" db:"id" validate:"required"`
	Email              string    `json:"email" db:"email" validate:"required,email"`
	Name               string    `json:"name" db:"name" validate:"required"`
	PasswordDigest     string    `json:"-" db:"password_digest" validate:"required"`
	Plan               string    `json:"plan" db:"plan" validate:"required,oneof=free pro enterprise"`
	AIGenerationsUsed  int       `json:"ai_generations_used" db:"ai_generations_used"`
	AIGenerationsLimit int       `json:"ai_generations_limit" db:"ai_generations_limit"`
	CreatedAt          time.Time `json:"created_at" db:"created_at" validate:"required"`
}

func NewUser(id, email, name, passwordDigest string) User {
	return User{
		ID:                 id,
		Email:              strings.ToLower(strings.TrimSpace(email)),
		Name:               strings.TrimSpace(name),
		PasswordDigest:     passwordDigest,
		Plan:               PlanFree,
		AIGenerationsUsed:  0,
		AIGenerationsLimit: DefaultGenerationsLimit,
		CreatedAt:          time.Now().UTC(),
	}
}
