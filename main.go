package main

import (
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/forgelabs/appforge/cmd/api"
	"github.com/forgelabs/appforge/cmd/migrate"
	"github.com/mitchellh/cli"
)

func main() {
	const appName, appVersion = "appforge", "1.0.0"

	apiCmd := api.NewCmd(appName, appVersion)

	c := cli.NewCLI(appName, appVersion)
	c.Args = os.Args[1:]
	c.Autocomplete = true
	c.Commands = map[string]cli.CommandFactory{
		"":        apiCmd, // default command if no subcommand defined
		"api":     apiCmd,
		"migrate": migrate.NewCmd(),
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}
