package system

import (
	"fmt"

	"github.com/julianstephens/habitbot/internal/cli"
)

type InitCmd struct{}

// Run creates the datastore and applies all migrations. Safe to re-run on
// an existing database.
func (cmd *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	fmt.Printf("Storage initialized at %s\n", ctx.Store.GetConfigPath())
	return nil
}
