package utils

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/tourze/tron-api/params"
)

var (
	clientIdentifier string
	gitCommit        string
)

// NewApp creates an app with sane defaults.
func NewApp(identifier, gitcommit, usage string) *cli.App {
	clientIdentifier = identifier
	gitCommit = gitcommit
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Version = params.VersionWithCommit(gitCommit)
	app.Usage = usage
	return app
}
