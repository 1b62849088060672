package api

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	HTTPServer "github.com/forgelabs/appforge/internal/http"

	"github.com/forgelabs/appforge/config"
	"github.com/forgelabs/appforge/container"
	"github.com/forgelabs/appforge/internal/logic/appservice"
	"github.com/forgelabs/appforge/internal/logic/authservice"
	"github.com/forgelabs/appforge/internal/logic/deployservice"
	"github.com/forgelabs/appforge/internal/logic/genservice"
	"github.com/forgelabs/appforge/pkg/codegen"
	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/password"
	"github.com/forgelabs/appforge/pkg/token"
	"github.com/forgelabs/appforge/pkg/uid"
	"github.com/go-resty/resty/v2"
	"github.com/mitchellh/cli"
	"github.com/satori/uuid"
)

const (
	ExitSuccess = 0
	ExitErr     = -1
)

type Cmd struct {
	flags      *flag.FlagSet
	appName    string
	appVersion string
	configFile string
}

func NewCmd(appName, appVersion string) func() (cli.Command, error) {
	return func() (cli.Command, error) {
		cmd := &Cmd{
			flags:      &flag.FlagSet{},
			appName:    appName,
			appVersion: appVersion,
		}
		err := cmd.init()
		return cmd, err
	}
}

var _ cli.Command = (*Cmd)(nil)
var _ cli.CommandFactory = NewCmd("", "")

func (c *Cmd) init() error {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.StringVar(&c.configFile, "config", "config.yml",
		"Config file to load")
	c.flags.StringVar(&c.configFile, "c", "config.yml",
		"Alias for config file to load")
	return nil
}

func (c *Cmd) Help() string {
	return `API will start the HTTP server`
}

func (c *Cmd) Run(args []string) int {
	err := c.flags.Parse(args)
	if err != nil {
		log.Fatalf("error parsing config argument: %s", err)
		return ExitErr
	}

	// ** define system context
	ctx := logger.Inject(context.Background(), logger.Tracer{
		RemoteAddr: "system",
		AppTraceID: uuid.NewV4().String(),
	})

	// ** load config file
	configVal := &config.Config{}
	zapLog, err := config.Setup(c.configFile, configVal)
	if err != nil {
		log.Fatalf("error load config: %s", err)
		return ExitErr
	}

	// ** set global logger
	logger.SetGlobalLogger(logger.NewZap(zapLog))

	zapLog.Info("~ logger already prepared")
	logger.Info(ctx, "~ setup container")
	defaultContainer, err := container.Setup(ctx, configVal)
	if err != nil {
		logger.Error(ctx, "~ error setup container", logger.KV("error", err))
		return ExitErr
	}

	defer func() {
		logger.Info(ctx, "~ closing container")
		if _err := defaultContainer.Close(); _err != nil {
			logger.Error(ctx, "~ error close container", logger.KV("error", _err))
		}
	}()

	// ** START DEPENDENCIES
	logger.Info(ctx, "~ starting up dependencies")
	logger.Info(ctx, "~~ preparing user repo")
	userRepo, err := defaultContainer.UserRepo()
	if err != nil {
		logger.Error(ctx, "~~ error prepare user repo", logger.KV("error", err))
		return ExitErr
	}

	logger.Info(ctx, "~~ preparing app repo")
	appRepo, err := defaultContainer.AppRepo()
	if err != nil {
		logger.Error(ctx, "~~ error prepare app repo", logger.KV("error", err))
		return ExitErr
	}

	logger.Info(ctx, "~~ preparing deploy repo")
	deployRepo, err := defaultContainer.DeployRepo()
	if err != nil {
		logger.Error(ctx, "~~ error prepare deploy repo", logger.KV("error", err))
		return ExitErr
	}

	// ** PREPARE CLIENTS
	logger.Info(ctx, "~~ prepare code generation client")
	var codegenClient codegen.Client = codegen.NewUnconfigured()
	if configVal.OpenAI.APIKey != "" {
		codegenClient, err = codegen.NewOpenAI(codegen.OpenAIConfig{
			APIKey:     configVal.OpenAI.APIKey,
			BaseURL:    configVal.OpenAI.BaseURL,
			Model:      configVal.OpenAI.Model,
			RESTClient: resty.New(),
		})
		if err != nil {
			logger.Error(ctx, "~~ code generation client error", logger.KV("error", err))
			return ExitErr
		}
	} else {
		logger.Warn(ctx, "~~ no openai api key, generation endpoint will be unavailable")
	}

	tokenService, err := token.NewJWT(token.Config{
		Secret:     configVal.JWT.Secret,
		AccessTTL:  time.Duration(configVal.JWT.AccessTTLMinutes) * time.Minute,
		RefreshTTL: time.Duration(configVal.JWT.RefreshTTLDays) * 24 * time.Hour,
	})
	if err != nil {
		logger.Error(ctx, "~~ token service error", logger.KV("error", err))
		return ExitErr
	}

	// ** START SERVICES
	logger.Info(ctx, "~ setting up services")
	logger.Info(ctx, "~~ auth service")
	authService, err := authservice.New(authservice.DefaultServiceConfig{
		UserRepo: userRepo,
		Tokens:   tokenService,
		Hasher:   password.NewBcrypt(),
	})
	if err != nil {
		logger.Error(ctx, "~~ setting up auth service error", logger.KV("error", err))
		return ExitErr
	}

	logger.Info(ctx, "~~ app service")
	appService, err := appservice.New(appservice.DefaultServiceConfig{
		AppRepo: appRepo,
	})
	if err != nil {
		logger.Error(ctx, "~~ setting up app service error", logger.KV("error", err))
		return ExitErr
	}

	uidGen, err := uid.NewSonyflake()
	if err != nil {
		logger.Error(ctx, "~~ uid generator error", logger.KV("error", err))
		return ExitErr
	}

	logger.Info(ctx, "~~ generation service")
	genService, err := genservice.New(genservice.DefaultServiceConfig{
		Client:   codegenClient,
		UserRepo: userRepo,
		UID:      uidGen,
	})
	if err != nil {
		logger.Error(ctx, "~~ setting up generation service error", logger.KV("error", err))
		return ExitErr
	}

	logger.Info(ctx, "~~ deploy service")
	deployService, err := deployservice.New(deployservice.DefaultServiceConfig{
		DeployRepo: deployRepo,
		Apps:       appService,
	})
	if err != nil {
		logger.Error(ctx, "~~ setting up deploy service error", logger.KV("error", err))
		return ExitErr
	}

	// ** HTTP TRANSPORT
	serverConfig := HTTPServer.Config{
		DebugError:    configVal.DebugError,
		Log:           logger.NewZap(zapLog),
		AuthService:   authService,
		AppService:    appService,
		GenService:    genService,
		DeployService: deployService,
	}

	logger.Info(ctx, "~ prepare http transport")
	server, err := HTTPServer.NewHTTPTransport(serverConfig)
	if err != nil {
		logger.Error(ctx, "~ prepare http transport error", logger.KV("error", err))
		return ExitErr
	}

	httpPort := fmt.Sprintf(":%d", configVal.Transport.HTTP.Port)
	logger.Debug(ctx, fmt.Sprintf("~ http transport is up on port %s", httpPort))

	httpServer := &http.Server{
		Addr:    httpPort,
		Handler: server.Server(),
	}

	var apiErrChan = make(chan error, 1)
	go func() {
		apiErrChan <- httpServer.ListenAndServe()
	}()

	// ** listen for sigterm signal
	var signalChan = make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-signalChan:
		logger.Info(ctx, "exiting http server")
		if _err := httpServer.Shutdown(ctx); _err != nil {
			logger.Error(ctx, "error shutdown", logger.KV("error", _err))
		}

	case err := <-apiErrChan:
		if err != nil {
			logger.Info(ctx, "error HTTP API", logger.KV("error", err))
		}
	}

	return ExitSuccess
}

func (c *Cmd) Synopsis() string {
	return `API will start the HTTP server`
}
