package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitbot/internal/keyring"
)

type TokenSetCmd struct {
	Token string `arg:"" help:"Bot API token to store in the OS keyring."`
}

func (cmd *TokenSetCmd) Run() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if err := keyring.SetBotToken(cmd.Token); err != nil {
		return err
	}
	fmt.Println("Bot token stored in the OS keyring")
	return nil
}

type TokenDeleteCmd struct{}

func (cmd *TokenDeleteCmd) Run() error {
	err := keyring.DeleteBotToken()
	if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("No bot token stored")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("Bot token removed from the OS keyring")
	return nil
}
