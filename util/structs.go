package util

import (
	"crypto/md5"

	"github.com/google/uuid"
)

type AccountKind string

const (
	Microsoft AccountKind = "microsoft"
	Offline   AccountKind = "offline"
)

// NoXuid is the sentinel xuid of accounts that have none.
const NoXuid = "0"

type Account struct {
	Kind        AccountKind `json:"kind"`
	Username    string      `json:"username"`
	UUID        string      `json:"uuid"`
	Xuid        string      `json:"xuid,omitempty"`
	AccessToken string      `json:"accessToken,omitempty"`
}

func NewOfflineAccount(username string) Account {
	return Account{Kind: Offline, Username: username, UUID: OfflineUUID(username)}
}

// XuidOrSentinel returns the account xuid, or NoXuid when unset.
func (a Account) XuidOrSentinel() string {
	if a.Xuid == "" {
		return NoXuid
	}
	return a.Xuid
}

// Token is the access token handed to the game; offline accounts get "0".
func (a Account) Token() string {
	if a.Kind == Microsoft {
		return a.AccessToken
	}
	return "0"
}

// OfflineUUID derives the name-based uuid servers expect for offline
// players: md5 of "OfflinePlayer:<name>" with version 3 and the RFC 4122 variant.
func OfflineUUID(username string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.UUID(sum).String()
}
