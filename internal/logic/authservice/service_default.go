package authservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgelabs/appforge/pkg/password"
	"github.com/forgelabs/appforge/pkg/token"
	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/forgelabs/appforge/storage"
	"github.com/forgelabs/appforge/storage/userrepo"
	"github.com/satori/uuid"
)

type DefaultServiceConfig struct {
	UserRepo userrepo.Repo   `validate:"required"`
	Tokens   token.Service   `validate:"required"`
	Hasher   password.Hasher `validate:"required"`
}

type DefaultService struct {
	Config DefaultServiceConfig
}

var _ Service = (*DefaultService)(nil)

func New(dep DefaultServiceConfig) (*DefaultService, error) {
	if err := validator.Validate(dep); err != nil {
		return nil, err
	}

	return &DefaultService{
		Config: dep,
	}, nil
}

func (d *DefaultService) Register(ctx context.Context, input InputRegister) (out OutTokenPair, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	digest, err := d.Config.Hasher.Hash(input.Password)
	if err != nil {
		return
	}

	user := userrepo.NewUser(uuid.NewV4().String(), email, input.Name, digest)

	inserted, err := d.Config.UserRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			err = ErrEmailTaken
		}
		return
	}

	return d.tokenPair(inserted)
}

func (d *DefaultService) Login(ctx context.Context, input InputLogin) (out OutTokenPair, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	user, err := d.Config.UserRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}

	if !d.Config.Hasher.Verify(input.Password, user.PasswordDigest) {
		err = ErrInvalidCredentials
		return
	}

	return d.tokenPair(user)
}

func (d *DefaultService) Refresh(ctx context.Context, refreshToken string) (out OutRefresh, err error) {
	accessToken, err := d.Config.Tokens.Refresh(refreshToken)
	if err != nil {
		return
	}

	out = OutRefresh{AccessToken: accessToken}
	return
}

func (d *DefaultService) Verify(ctx context.Context, accessToken string) (token.Claims, error) {
	return d.Config.Tokens.Verify(accessToken, token.KindAccess)
}

func (d *DefaultService) Profile(ctx context.Context, accountID string) (out OutAccount, err error) {
	user, err := d.Config.UserRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = ErrAccountNotFound
		}
		return
	}

	out = OutAccount{User: AccountFromRepo(user)}
	return
}

func (d *DefaultService) UpdatePlan(ctx context.Context, accountID string, input InputUpdatePlan) (out OutAccount, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error: %w", err)
		return
	}

	updated, err := d.Config.UserRepo.UpdatePlan(ctx, accountID, input.Plan)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = ErrAccountNotFound
		}
		return
	}

	out = OutAccount{User: AccountFromRepo(updated)}
	return
}

func (d *DefaultService) tokenPair(user userrepo.User) (out OutTokenPair, err error) {
	claims := token.Claims{
		AccountID: user.ID,
		Email:     user.Email,
	}

	accessToken, err := d.Config.Tokens.IssueAccess(claims)
	if err != nil {
		err = fmt.Errorf("cannot issue access token: %w", err)
		return
	}

	refreshToken, err := d.Config.Tokens.IssueRefresh(claims)
	if err != nil {
		err = fmt.Errorf("cannot issue refresh token: %w", err)
		return
	}

	out = OutTokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         AccountFromRepo(user),
	}
	return
}
