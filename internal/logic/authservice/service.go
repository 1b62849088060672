package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/forgelabs/appforge/pkg/token"
	"github.com/forgelabs/appforge/storage/userrepo"
)

var (
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrAccountNotFound = errors.New("account not found")
)

// Service is an interface of final business logic.
// Any input and output from/to this function should be SAFE for external party to consume,
// i.e: request or response from HTTP handler
type Service interface {
	Register(ctx context.Context, input InputRegister) (out OutTokenPair, err error)
	Login(ctx context.Context, input InputLogin) (out OutTokenPair, err error)
	Refresh(ctx context.Context, refreshToken string) (out OutRefresh, err error)
	Verify(ctx context.Context, accessToken string) (claims token.Claims, err error)

	Profile(ctx context.Context, accountID string) (out OutAccount, err error)
	UpdatePlan(ctx context.Context, accountID string, input InputUpdatePlan) (out OutAccount, err error)
}

// Account is like userrepo.User but stripped of the password digest, safe to
// return to an external party.
type Account struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Plan               string    `json:"plan"`
	AIGenerationsUsed  int       `json:"ai_generations_used"`
	AIGenerationsLimit int       `json:"ai_generations_limit"`
	CreatedAt          time.Time `json:"created_at"`
}

func AccountFromRepo(user userrepo.User) Account {
	return Account{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		Plan:               user.Plan,
		AIGenerationsUsed:  user.AIGenerationsUsed,
		AIGenerationsLimit: user.AIGenerationsLimit,
		CreatedAt:          user.CreatedAt,
	}
}

type InputRegister struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type InputLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OutTokenPair struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         Account `json:"user"`
}

type OutRefresh struct {
	AccessToken string `json:"access_token"`
}

// InputUpdatePlan changes the account plan tier, the only profile field a
// caller may mutate. Generation limits stay as provisioned at register time.
type InputUpdatePlan struct {
	Plan string `json:"plan" validate:"required,oneof=free pro enterprise"`
}

type OutAccount struct {
	User Account `json:"user"`
}
