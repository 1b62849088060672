package deployservice_test

import (
	"context"
	"sync"
	"testing"

	"github.com/forgelabs/appforge/internal/logic/appservice"
	"github.com/forgelabs/appforge/internal/logic/deployservice"
	"github.com/forgelabs/appforge/storage"
	"github.com/forgelabs/appforge/storage/apprepo"
	"github.com/forgelabs/appforge/storage/deployrepo"
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

type deployRepoMem struct {
	mu          sync.Mutex
	deployments map[string]deployrepo.Deployment
}

var _ deployrepo.Repo = (*deployRepoMem)(nil)

func newDeployRepoMem() *deployRepoMem {
	return &deployRepoMem{deployments: map[string]deployrepo.Deployment{}}
}

func (r *deployRepoMem) Create(ctx context.Context, d deployrepo.Deployment) (deployrepo.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deployments[d.ID] = d
	return d, nil
}

func (r *deployRepoMem) GetByID(ctx context.Context, id, userID string) (deployrepo.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.deployments[id]
	if !ok || d.UserID != userID {
		return deployrepo.Deployment{}, storage.ErrNotFound
	}

	return d, nil
}

func (r *deployRepoMem) List(ctx context.Context, userID, appID string, limit int64) ([]deployrepo.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ds []deployrepo.Deployment
	for _, d := range r.deployments {
		if d.UserID != userID {
			continue
		}

		if appID != "" && d.AppID != appID {
			continue
		}

		ds = append(ds, d)
	}

	return ds, nil
}

func (r *deployRepoMem) Update(ctx context.Context, d deployrepo.Deployment) (deployrepo.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.deployments[d.ID]
	if !ok || stored.UserID != d.UserID {
		return deployrepo.Deployment{}, storage.ErrNotFound
	}

	r.deployments[d.ID] = d
	return d, nil
}

func newTestServices(t *testing.T) (*deployservice.DefaultService, appservice.Service) {
	apps, err := appservice.New(appservice.DefaultServiceConfig{AppRepo: newAppRepoMem()})
	require.NoError(t, err)

	svc, err := deployservice.New(deployservice.DefaultServiceConfig{
		DeployRepo: newDeployRepoMem(),
		Apps:       apps,
	})
	require.NoError(t, err)

	return svc, apps
}

func createApp(t *testing.T, apps appservice.Service, ownerID, status string) appservice.App {
	out, err := apps.Create(context.Background(), ownerID, appservice.InputCreateApp{
		Name:        "Todo App",
		Description: "a todo list",
	})
	require.NoError(t, err)

	app := out.App
	for _, next := range pathTo(status) {
		out, err = apps.Transition(context.Background(), ownerID, app.ID, appservice.InputTransition{
			Status:        next,
			GeneratedCode: "<code/>",
		})
		require.NoError(t, err)
		app = out.App
	}

	return app
}

// pathTo walks the lifecycle from draft to the wanted status.
func pathTo(status string) []string {
	switch status {
	case apprepo.StatusGenerating:
		return []string{apprepo.StatusGenerating}
	case apprepo.StatusGenerated:
		return []string{apprepo.StatusGenerating, apprepo.StatusGenerated}
	case apprepo.StatusDeploying:
		return []string{apprepo.StatusGenerating, apprepo.StatusGenerated, apprepo.StatusDeploying}
	default:
		return nil
	}
}

func TestStartOnDraftApp(t *testing.T) {
	svc, apps := newTestServices(t)
	app := createApp(t, apps, "owner-1", apprepo.StatusDraft)

	_, err := svc.Start(context.Background(), "owner-1", deployservice.InputStart{
		AppID:    app.ID,
		Provider: deployservice.ProviderVercel,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, deployservice.ErrInvalidState)
}

func TestStartOnGeneratedApp(t *testing.T) {
	svc, apps := newTestServices(t)
	app := createApp(t, apps, "owner-1", apprepo.StatusGenerated)

	out, err := svc.Start(context.Background(), "owner-1", deployservice.InputStart{
		AppID:    app.ID,
		Provider: deployservice.ProviderVercel,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Deployment.ID)
	assert.Equal(t, app.ID, out.Deployment.AppID)
	assert.Equal(t, "owner-1", out.Deployment.UserID)
	assert.Equal(t, deployrepo.StatusPending, out.Deployment.Status)
	assert.Equal(t, deployrepo.EnvProduction, out.Deployment.Environment)
	assert.Nil(t, out.Deployment.CompletedAt)
}

func TestStartForeignAppNotFound(t *testing.T) {
	svc, apps := newTestServices(t)
	app := createApp(t, apps, "owner-1", apprepo.StatusGenerated)

	_, err := svc.Start(context.Background(), "owner-2", deployservice.InputStart{
		AppID:    app.ID,
		Provider: deployservice.ProviderRender,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, appservice.ErrAppNotFound)
}

func TestUpdateStatusSuccessMarksAppDeployed(t *testing.T) {
	svc, apps := newTestServices(t)
	app := createApp(t, apps, "owner-1", apprepo.StatusDeploying)

	started, err := svc.Start(context.Background(), "owner-1", deployservice.InputStart{
		AppID:    app.ID,
		Provider: deployservice.ProviderVercel,
	})
	require.NoError(t, err)

	out, err := svc.UpdateStatus(context.Background(), "owner-1", deployservice.InputUpdateStatus{
		DeploymentID: started.Deployment.ID,
		Status:       deployrepo.StatusSuccess,
		URL:          "https://todo-app.vercel.app",
	})
	require.NoError(t, err)

	assert.Equal(t, deployrepo.StatusSuccess, out.Deployment.Status)
	assert.Equal(t, "https://todo-app.vercel.app", out.Deployment.URL)
	require.NotNil(t, out.Deployment.CompletedAt)

	appOut, err := apps.Get(context.Background(), "owner-1", app.ID)
	require.NoError(t, err)
	assert.Equal(t, apprepo.StatusDeployed, appOut.App.Status)
	assert.Equal(t, "https://todo-app.vercel.app", appOut.App.DeploymentURL)
	assert.Equal(t, deployservice.ProviderVercel, appOut.App.DeploymentProvider)
}

func TestUpdateStatusFailedStampsCompletedAt(t *testing.T) {
	svc, apps := newTestServices(t)
	app := createApp(t, apps, "owner-1", apprepo.StatusGenerated)

	started, err := svc.Start(context.Background(), "owner-1", deployservice.InputStart{
		AppID:    app.ID,
		Provider: deployservice.ProviderRender,
	})
	require.NoError(t, err)

	out, err := svc.UpdateStatus(context.Background(), "owner-1", deployservice.InputUpdateStatus{
		DeploymentID: started.Deployment.ID,
		Status:       deployrepo.StatusFailed,
		ErrorMessage: "build exited with code 1",
	})
	require.NoError(t, err)

	assert.Equal(t, deployrepo.StatusFailed, out.Deployment.Status)
	assert.Equal(t, "build exited with code 1", out.Deployment.ErrorMessage)
	require.NotNil(t, out.Deployment.CompletedAt)

	// Failure never touches the app lifecycle.
	appOut, err := apps.Get(context.Background(), "owner-1", app.ID)
	require.NoError(t, err)
	assert.Equal(t, apprepo.StatusGenerated, appOut.App.Status)
}

func TestUpdateStatusUnknownDeployment(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.UpdateStatus(context.Background(), "owner-1", deployservice.InputUpdateStatus{
		DeploymentID: "no-such-id",
		Status:       deployrepo.StatusBuilding,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, deployservice.ErrDeploymentNotFound)
}

func TestListFiltersByApp(t *testing.T) {
	svc, apps := newTestServices(t)
	first := createApp(t, apps, "owner-1", apprepo.StatusGenerated)
	second := createApp(t, apps, "owner-1", apprepo.StatusGenerated)

	for _, appID := range []string{first.ID, first.ID, second.ID} {
		_, err := svc.Start(context.Background(), "owner-1", deployservice.InputStart{
			AppID:    appID,
			Provider: deployservice.ProviderVercel,
		})
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), "owner-1", "")
	require.NoError(t, err)
	assert.Len(t, all.Deployments, 3)

	scoped, err := svc.List(context.Background(), "owner-1", first.ID)
	require.NoError(t, err)
	assert.Len(t, scoped.Deployments, 2)

	foreign, err := svc.List(context.Background(), "owner-2", "")
	require.NoError(t, err)
	assert.Empty(t, foreign.Deployments)
}
