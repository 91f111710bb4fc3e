package system

import (
	"fmt"

	"github.com/julianstephens/habitbot/internal/cli"
)

type MigrateCmd struct{}

// Run applies any pending schema migrations. Init and Migrate share the
// same runner; the separate command exists for operators upgrading an
// already-initialized database.
func (cmd *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	fmt.Println("Migrations complete")
	return nil
}
