package database

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppDirName       = ".gcrouter"
	SQLiteDBFileName = "data.db"
	RoutesDirName    = "routes"
)

// GetAppDir returns ~/.gcrouter, creating it if needed
func GetAppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, AppDirName)
	if err := os.MkdirAll(appDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create app directory: %w", err)
	}

	return appDir, nil
}

// GetDBPath returns ~/.gcrouter/data.db
func GetDBPath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, SQLiteDBFileName), nil
}

// GetRoutesDir returns ~/.gcrouter/routes, creating it if needed
func GetRoutesDir() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}

	routesDir := filepath.Join(appDir, RoutesDirName)
	if err := os.MkdirAll(routesDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create routes directory: %w", err)
	}

	return routesDir, nil
}
