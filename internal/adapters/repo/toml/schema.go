package toml

import (
	"fmt"

	"github.com/bnema/subtrack/internal/adapters/repo/record"
	"github.com/bnema/subtrack/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `toml:"version"`
	Users   []userSchema `toml:"users"`
}

// userSchema holds one user's record set under its storage key.
type userSchema struct {
	Key           string                `toml:"key"`
	UserID        string                `toml:"user_id"`
	Subscriptions []record.Subscription `toml:"subscriptions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	for i := range s.Users {
		if s.Users[i].Key == "" && s.Users[i].UserID != "" {
			s.Users[i].Key = record.Key(domain.UserID(s.Users[i].UserID))
		}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported subscriptions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func (s fileSchema) indexOf(key string) int {
	for i := range s.Users {
		if s.Users[i].Key == key {
			return i
		}
	}

	return -1
}
