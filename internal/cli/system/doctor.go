package system

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitbot/internal/cli"
	"github.com/julianstephens/habitbot/internal/constants"
	"github.com/julianstephens/habitbot/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: datastore reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Datastore reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Datastore reachable: OK\n")
		dbReachable = true
	}
	defer ctx.Store.Close()

	// Check 2: schema holds data we can read (only if reachable)
	if dbReachable {
		if _, err := ctx.Store.GetGlobalStats(); err != nil {
			fmt.Printf("❌ Schema readable: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema readable: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema readable: SKIPPED (datastore not reachable)\n")
	}

	// Check 3: bot token resolvable
	if err := checkToken(ctx); err != nil {
		fmt.Printf("❌ Bot token: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Bot token: OK\n")
	}

	// Check 4: admin ID configured
	if ctx.AdminID == 0 {
		fmt.Printf("❌ Admin ID: FAIL\n")
		fmt.Printf("   Error: no admin ID configured (--admin-id or ADMIN_ID)\n")
		hasError = true
	} else {
		fmt.Printf("✓ Admin ID: OK (%d)\n", ctx.AdminID)
	}

	// Check 5: no second poller. Two processes long-polling one bot token
	// steal each other's updates.
	if n, err := countOtherInstances(); err != nil {
		fmt.Printf("⚠ Duplicate process: WARNING\n")
		fmt.Printf("   Could not enumerate processes: %v\n", err)
	} else if n > 0 {
		fmt.Printf("❌ Duplicate process: FAIL\n")
		fmt.Printf("   Error: %d other %s process(es) running; concurrent polling conflicts over update delivery\n", n, constants.AppName)
		hasError = true
	} else {
		fmt.Printf("✓ Duplicate process: OK\n")
	}

	// Check 6: clock sanity. Tracking dates are derived from local time;
	// a wildly wrong clock silently corrupts streaks.
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock sanity: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock sanity: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics found problems.")
		os.Exit(1)
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkToken(ctx *cli.Context) error {
	if ctx.BotToken != "" {
		return nil
	}
	if !keyring.IsAvailable() {
		return fmt.Errorf("no --bot-token/BOT_TOKEN and the OS keyring is unavailable")
	}
	if _, err := keyring.GetBotToken(); err != nil {
		return err
	}
	return nil
}

func countOtherInstances() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	self := os.Getpid()
	count := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			count++
		}
	}
	return count, nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %s, which is implausibly old", now.Format(time.RFC3339))
	}
	if _, err := time.Parse(constants.DateFormat, now.Format(constants.DateFormat)); err != nil {
		return fmt.Errorf("date formatting round-trip failed: %w", err)
	}
	return nil
}
