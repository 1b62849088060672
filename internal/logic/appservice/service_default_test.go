package appservice_test

import (
	"context"
	"sync"
	"testing"

	"github.com/forgelabs/appforge/internal/logic/appservice"
	"github.com/forgelabs/appforge/storage"
	"github.com/forgelabs/appforge/storage/apprepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appRepoMem struct {
	mu   sync.Mutex
	apps map[string]apprepo.App
}

var _ apprepo.Repo = (*appRepoMem)(nil)

func newAppRepoMem() *appRepoMem {
	return &appRepoMem{apps: map[string]apprepo.App{}}
}

func (r *appRepoMem) Create(ctx context.Context, app apprepo.App) (apprepo.App, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.apps[app.ID] = app
	return app, nil
}

func (r *appRepoMem) GetByID(ctx context.Context, id, userID string) (apprepo.App, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok || app.UserID != userID {
		return apprepo.App{}, storage.ErrNotFound
	}

	return app, nil
}

func (r *appRepoMem) List(ctx context.Context, userID string, limit int64) ([]apprepo.App, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var apps []apprepo.App
	for _, app := range r.apps {
		if app.UserID == userID {
			apps = append(apps, app)
		}
	}

	return apps, nil
}

func (r *appRepoMem) Update(ctx context.Context, app apprepo.App) (apprepo.App, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.apps[app.ID]
	if !ok || stored.UserID != app.UserID {
		return apprepo.App{}, storage.ErrNotFound
	}

	r.apps[app.ID] = app
	return app, nil
}

func (r *appRepoMem) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok || app.UserID != userID {
		return storage.ErrNotFound
	}

	delete(r.apps, id)
	return nil
}

func newTestService(t *testing.T) *appservice.DefaultService {
	svc, err := appservice.New(appservice.DefaultServiceConfig{AppRepo: newAppRepoMem()})
	require.NoError(t, err)

	return svc
}

func createApp(t *testing.T, svc appservice.Service, ownerID string) appservice.App {
	out, err := svc.Create(context.Background(), ownerID, appservice.InputCreateApp{
		Name:        "Todo App",
		Description: "a todo list",
		Features:    []string{"add tasks"},
		Entities: []appservice.Entity{
			{Name: "Task", Fields: []string{"title", "done"}},
		},
	})
	require.NoError(t, err)

	return out.App
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(t)
	app := createApp(t, svc, "owner-1")

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, "owner-1", app.UserID)
	assert.Equal(t, apprepo.StatusDraft, app.Status)
	assert.Equal(t, "react", app.Framework)
	assert.Equal(t, "tailwind", app.Styling)
	assert.Empty(t, app.GeneratedCode)
	assert.False(t, app.CreatedAt.IsZero())
}

func TestGetForeignAppNotFound(t *testing.T) {
	svc := newTestService(t)
	app := createApp(t, svc, "owner-1")

	// A foreign app and a missing app look identical to the caller.
	_, err := svc.Get(context.Background(), "owner-2", app.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, appservice.ErrAppNotFound)

	_, err = svc.Get(context.Background(), "owner-1", "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, appservice.ErrAppNotFound)
}

func TestUpdatePartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	app := createApp(t, svc, "owner-1")

	newName := "Chore Tracker"
	out, err := svc.Update(ctx, "owner-1", app.ID, appservice.InputUpdateApp{
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Chore Tracker", out.App.Name)
	assert.Equal(t, app.Description, out.App.Description)
	assert.Equal(t, app.Features, out.App.Features)
	assert.Equal(t, app.Framework, out.App.Framework)
	assert.Equal(t, apprepo.StatusDraft, out.App.Status)
}

func TestUpdateRejectsBlankName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	app := createApp(t, svc, "owner-1")

	blank := "   "
	_, err := svc.Update(ctx, "owner-1", app.ID, appservice.InputUpdateApp{
		Name: &blank,
	})
	require.ErrorIs(t, err, storage.ErrValidation)

	empty := ""
	_, err = svc.Update(ctx, "owner-1", app.ID, appservice.InputUpdateApp{
		Description: &empty,
	})
	require.ErrorIs(t, err, storage.ErrValidation)

	out, err := svc.Get(ctx, "owner-1", app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.Name, out.App.Name)
	assert.Equal(t, app.Description, out.App.Description)
}

func TestUpdateRejectsBadFramework(t *testing.T) {
	svc := newTestService(t)
	app := createApp(t, svc, "owner-1")

	framework := "jquery"
	_, err := svc.Update(context.Background(), "owner-1", app.ID, appservice.InputUpdateApp{
		Framework: &framework,
	})
	require.Error(t, err)
}

func TestTransitionTable(t *testing.T) {
	edges := []struct {
		from    string
		to      string
		allowed bool
	}{
		{apprepo.StatusDraft, apprepo.StatusGenerating, true},
		{apprepo.StatusDraft, apprepo.StatusGenerated, false},
		{apprepo.StatusDraft, apprepo.StatusDeployed, false},
		{apprepo.StatusGenerating, apprepo.StatusGenerated, true},
		{apprepo.StatusGenerating, apprepo.StatusFailed, true},
		{apprepo.StatusGenerating, apprepo.StatusDraft, false},
		{apprepo.StatusGenerated, apprepo.StatusDeploying, true},
		{apprepo.StatusGenerated, apprepo.StatusDraft, true},
		{apprepo.StatusGenerated, apprepo.StatusGenerating, false},
		{apprepo.StatusDeploying, apprepo.StatusFailed, true},
		{apprepo.StatusDeploying, apprepo.StatusDraft, false},
		{apprepo.StatusFailed, apprepo.StatusDraft, true},
		{apprepo.StatusFailed, apprepo.StatusGenerating, false},
		{apprepo.StatusDeployed, apprepo.StatusDraft, false},
		{apprepo.StatusDeployed, apprepo.StatusGenerating, false},
		{apprepo.StatusDeployed, apprepo.StatusDeploying, false},
	}

	for _, tc := range edges {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			svc := newTestService(t)
			ctx := context.Background()
			app := createApp(t, svc, "owner-1")
			seedStatus(t, svc, "owner-1", app.ID, tc.from)

			_, err := svc.Transition(ctx, "owner-1", app.ID, appservice.InputTransition{
				Status:        tc.to,
				GeneratedCode: "<code/>",
			})
			if tc.allowed {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, appservice.ErrInvalidTransition)
		})
	}
}

// seedStatus walks an app along valid edges until it reaches the wanted
// status, attaching a deployment url where the deployed edge demands one.
func seedStatus(t *testing.T, svc appservice.Service, ownerID, appID, status string) {
	t.Helper()
	ctx := context.Background()

	var path []string
	switch status {
	case apprepo.StatusDraft:
		return
	case apprepo.StatusGenerating:
		path = []string{apprepo.StatusGenerating}
	case apprepo.StatusGenerated:
		path = []string{apprepo.StatusGenerating, apprepo.StatusGenerated}
	case apprepo.StatusDeploying:
		path = []string{apprepo.StatusGenerating, apprepo.StatusGenerated, apprepo.StatusDeploying}
	case apprepo.StatusDeployed:
		path = []string{apprepo.StatusGenerating, apprepo.StatusGenerated, apprepo.StatusDeploying, apprepo.StatusDeployed}
	case apprepo.StatusFailed:
		path = []string{apprepo.StatusGenerating, apprepo.StatusFailed}
	}

	for _, next := range path {
		if next == apprepo.StatusDeployed {
			_, err := svc.AttachDeployment(ctx, ownerID, appID, "https://app.example.com", "vercel")
			require.NoError(t, err)
		}

		_, err := svc.Transition(ctx, ownerID, appID, appservice.InputTransition{
			Status:        next,
			GeneratedCode: "<code/>",
		})
		require.NoError(t, err)
	}
}

func TestTransitionGeneratedStoresArtifact(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	app := createApp(t, svc, "owner-1")
	seedStatus(t, svc, "owner-1", app.ID, apprepo.StatusGenerating)

	out, err := svc.Transition(ctx, "owner-1", app.ID, appservice.InputTransition{
		Status:        apprepo.StatusGenerated,
		GeneratedCode: "export default function App() {}",
	})
	require.NoError(t, err)

	assert.Equal(t, apprepo.StatusGenerated, out.App.Status)
	assert.Equal(t, "export default function App() {}", out.App.GeneratedCode)
}

func TestTransitionDeployedRequiresURL(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	app := createApp(t, svc, "owner-1")
	seedStatus(t, svc, "owner-1", app.ID, apprepo.StatusDeploying)

	_, err := svc.Transition(ctx, "owner-1", app.ID, appservice.InputTransition{
		Status: apprepo.StatusDeployed,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, appservice.ErrInvalidTransition)

	_, err = svc.AttachDeployment(ctx, "owner-1", app.ID, "https://app.example.com", "vercel")
	require.NoError(t, err)

	out, err := svc.Transition(ctx, "owner-1", app.ID, appservice.InputTransition{
		Status: apprepo.StatusDeployed,
	})
	require.NoError(t, err)
	assert.Equal(t, apprepo.StatusDeployed, out.App.Status)
	assert.Equal(t, "https://app.example.com", out.App.DeploymentURL)
}

func TestTransitionResetClearsArtifact(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	app := createApp(t, svc, "owner-1")
	seedStatus(t, svc, "owner-1", app.ID, apprepo.StatusGenerated)

	out, err := svc.Transition(ctx, "owner-1", app.ID, appservice.InputTransition{
		Status: apprepo.StatusDraft,
	})
	require.NoError(t, err)

	assert.Equal(t, apprepo.StatusDraft, out.App.Status)
	assert.Empty(t, out.App.GeneratedCode)
	assert.Empty(t, out.App.DeploymentURL)
	assert.Empty(t, out.App.DeploymentProvider)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	app := createApp(t, svc, "owner-1")

	err := svc.Delete(ctx, "owner-2", app.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, appservice.ErrAppNotFound)

	err = svc.Delete(ctx, "owner-1", app.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, "owner-1", app.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, appservice.ErrAppNotFound)
}

func TestListScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createApp(t, svc, "owner-1")
	createApp(t, svc, "owner-1")
	createApp(t, svc, "owner-2")

	out, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, out.Apps, 2)

	out, err = svc.List(ctx, "owner-3")
	require.NoError(t, err)
	assert.Empty(t, out.Apps)
}
