package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"status_board/internal/model"
	"status_board/internal/service"
)

// loadSeedUsers reads SEED_USERS: an inline JSON array of users or a path to a
// JSON file holding one. Anything that is not an array, or an empty array,
// means the demo users.
func loadSeedUsers(raw string) ([]model.Credentials, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return service.DemoUsers, nil
	}

	data := []byte(raw)
	if !strings.HasPrefix(raw, "[") && !strings.HasPrefix(raw, "{") {
		path := raw
		if !filepath.IsAbs(path) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %s: %w", raw, err)
			}
			path = filepath.Join(wd, path)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed users file: %w", err)
		}
		data = b
	}

	users, err := parseSeedUsers(data)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return service.DemoUsers, nil
	}
	return users, nil
}

func parseSeedUsers(data []byte) ([]model.Credentials, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		return nil, nil
	}

	var many []model.Credentials
	if err := json.Unmarshal([]byte(trimmed), &many); err != nil {
		return nil, fmt.Errorf("failed to parse seed users: %w", err)
	}
	return many, nil
}
