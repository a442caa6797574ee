package fileutils

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/zalando/go-keyring"
)

const service = "mclaunch"

const (
	gameDirKey = "game_dir"
	accountKey = "account"
)

// ErrNoAccount is returned when no account has been stored.
var ErrNoAccount = errors.New("no account logged in")

func SaveGameDir(dir string) error {
	return keyring.Set(service, gameDirKey, dir)
}

// LoadGameDir returns the stored game root, or "" when none is stored.
func LoadGameDir() (string, error) {
	dir, err := keyring.Get(service, gameDirKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return dir, err
}

func SaveAccount(account util.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return keyring.Set(service, accountKey, string(data))
}

func LoadAccount() (util.Account, error) {
	data, err := keyring.Get(service, accountKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return util.Account{}, ErrNoAccount
	}
	if err != nil {
		return util.Account{}, err
	}

	var account util.Account
	if err1 := json.Unmarshal([]byte(data), &account); err1 != nil {
		return util.Account{}, fmt.Errorf("%w: stored account: %w", util.ErrParse, err1)
	}
	return account, nil
}

func DeleteAccount() error {
	err := keyring.Delete(service, accountKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
