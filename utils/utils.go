package utils

import (
	"os"
)

func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// CreateDirIfNotExist creates dir and any missing parents.
func CreateDirIfNotExist(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}

	return nil
}
