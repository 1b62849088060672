package genservice_test

import (
	"context"
	"sync"
	"testing"

	"github.com/forgelabs/appforge/internal/logic/genservice"
	"github.com/forgelabs/appforge/pkg/codegen"
	"github.com/forgelabs/appforge/pkg/uid"
	"github.com/forgelabs/appforge/storage"
	"github.com/forgelabs/appforge/storage/userrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoMem struct {
	mu    sync.Mutex
	users map[string]userrepo.User
}

var _ userrepo.Repo = (*userRepoMem)(nil)

func newUserRepoMem(users ...userrepo.User) *userRepoMem {
	r := &userRepoMem{users: map[string]userrepo.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}

	return r
}

func (r *userRepoMem) Create(ctx context.Context, user userrepo.User) (userrepo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = user
	return user, nil
}

func (r *userRepoMem) GetByEmail(ctx context.Context, email string) (userrepo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return userrepo.User{}, storage.ErrNotFound
}

func (r *userRepoMem) GetByID(ctx context.Context, id string) (userrepo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return userrepo.User{}, storage.ErrNotFound
	}

	return u, nil
}

func (r *userRepoMem) UpdatePlan(ctx context.Context, id, plan string) (userrepo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return userrepo.User{}, storage.ErrNotFound
	}

	u.Plan = plan
	r.users[id] = u
	return u, nil
}

func (r *userRepoMem) IncGenerationsUsed(ctx context.Context, id string) (userrepo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return userrepo.User{}, storage.ErrNotFound
	}

	u.AIGenerationsUsed++
	r.users[id] = u
	return u, nil
}

type clientStub struct {
	text string
	err  error

	lastInput codegen.CompletionInput
}

var _ codegen.Client = (*clientStub)(nil)

func (c *clientStub) Complete(ctx context.Context, input codegen.CompletionInput) (codegen.CompletionOutput, error) {
	c.lastInput = input
	if c.err != nil {
		return codegen.CompletionOutput{}, c.err
	}

	return codegen.CompletionOutput{Text: c.text}, nil
}


func newUID(t *testing.T) uid.UID {
	gen, err := uid.NewSonyflake()
	require.NoError(t, err)

	return gen
}

func todoSpec() genservice.AppSpec {
	return genservice.AppSpec{
		Name:        "Todo App",
		Description: "a todo list",
		Features:    []string{"add tasks", "complete tasks"},
		Entities: []genservice.EntitySpec{
			{Name: "Task", Fields: []string{"title", "done"}},
		},
		TargetAudience: "students",
		Framework:      "react",
		Styling:        "tailwind",
	}
}

func TestGenerate(t *testing.T) {
	repo := newUserRepoMem(userrepo.User{
		ID:                 "user-1",
		Email:              "user@example.com",
		AIGenerationsLimit: userrepo.DefaultGenerationsLimit,
	})
	client := &clientStub{text: "export default function App() {}"}

	svc, err := genservice.New(genservice.DefaultServiceConfig{
		Client:   client,
		UserRepo: repo,
		UID:      newUID(t),
	})
	require.NoError(t, err)

	out, err := svc.Generate(context.Background(), "user-1", genservice.InputGenerate{
		AppSpec: todoSpec(),
	})
	require.NoError(t, err)

	assert.Equal(t, "export default function App() {}", out.GeneratedCode)
	assert.Equal(t, userrepo.DefaultGenerationsLimit-1, out.RemainingGenerations)

	assert.Contains(t, client.lastInput.SystemPrompt, "expert full-stack developer")
	assert.Contains(t, client.lastInput.UserPrompt, "Todo App")
	assert.Contains(t, client.lastInput.UserPrompt, "- Task: title, done")
}

func TestGenerateQuotaExceeded(t *testing.T) {
	repo := newUserRepoMem(userrepo.User{
		ID:                 "user-1",
		AIGenerationsUsed:  5,
		AIGenerationsLimit: 5,
	})

	svc, err := genservice.New(genservice.DefaultServiceConfig{
		Client:   &clientStub{text: "code"},
		UserRepo: repo,
		UID:      newUID(t),
	})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "user-1", genservice.InputGenerate{
		AppSpec: todoSpec(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, genservice.ErrQuotaExceeded)

	// Quota failure must not burn a generation.
	u, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, u.AIGenerationsUsed)
}

func TestGenerateUnconfiguredProvider(t *testing.T) {
	repo := newUserRepoMem(userrepo.User{
		ID:                 "user-1",
		AIGenerationsLimit: userrepo.DefaultGenerationsLimit,
	})

	svc, err := genservice.New(genservice.DefaultServiceConfig{
		Client:   codegen.NewUnconfigured(),
		UserRepo: repo,
		UID:      newUID(t),
	})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "user-1", genservice.InputGenerate{
		AppSpec: todoSpec(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, codegen.ErrNotConfigured)

	u, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, u.AIGenerationsUsed)
}

func TestBuildPromptCustomPrompt(t *testing.T) {
	prompt := genservice.BuildPrompt(todoSpec(), "use dark mode")

	assert.Contains(t, prompt, "Generate a complete REACT application")
	assert.Contains(t, prompt, "**App Name:** Todo App")
	assert.Contains(t, prompt, "**Additional Requirements:**\nuse dark mode")

	plain := genservice.BuildPrompt(todoSpec(), "")
	assert.NotContains(t, plain, "Additional Requirements")
}
