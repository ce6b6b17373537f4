// Package secrets keeps the Adzuna app key in the OS keychain.
package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/anishpatel/jobsheet/internal/config"
)

// KeyringService groups jobsheet's secrets in the OS keychain.
const KeyringService = "jobsheet"

// ErrAppKeyNotFound is returned when no key is configured or stored.
var ErrAppKeyNotFound = errors.New("adzuna app key not found (set adzuna.app_key or run `jobsheet secrets set-key`)")

// AppKeyAccount is the keychain account holding the key for appID.
func AppKeyAccount(appID string) string {
	return fmt.Sprintf("adzuna:%s", appID)
}

// ResolveAppKey returns the configured app key, falling back to the keychain.
func ResolveAppKey(cfg config.AdzunaConfig) (string, error) {
	if key := strings.TrimSpace(cfg.AppKey); key != "" {
		return key, nil
	}
	if strings.TrimSpace(cfg.AppID) == "" {
		return "", ErrAppKeyNotFound
	}

	key, err := keyring.Get(KeyringService, AppKeyAccount(cfg.AppID))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrAppKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading keychain: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", ErrAppKeyNotFound
	}
	return strings.TrimSpace(key), nil
}

// SetAppKey stores key in the keychain for appID.
func SetAppKey(appID, key string) error {
	if strings.TrimSpace(appID) == "" {
		return errors.New("adzuna app id is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("app key is empty")
	}
	return keyring.Set(KeyringService, AppKeyAccount(appID), strings.TrimSpace(key))
}

// DeleteAppKey removes the stored key for appID.
func DeleteAppKey(appID string) error {
	if strings.TrimSpace(appID) == "" {
		return errors.New("adzuna app id is empty")
	}
	err := keyring.Delete(KeyringService, AppKeyAccount(appID))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrAppKeyNotFound
	}
	return err
}
