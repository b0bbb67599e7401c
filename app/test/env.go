package test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var initOnce sync.Once

func projectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for dir := wd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
	}

	return wd
}

func loadEnv() {
	envNames := []string{".env.test", ".env"}
	for _, envName := range envNames {
		fpath := filepath.Join(projectRoot(), envName)
		if _, err := os.Stat(fpath); err != nil {
			continue
		}

		if err := godotenv.Overload(fpath); err != nil {
			logrus.Fatalf("Can't load %s: %s", envName, err)
		}
	}
}

func Init() {
	initOnce.Do(func() {
		loadEnv()
	})
}

func MarkAsSlow(t *testing.T) {
	Init()
	if os.Getenv("SLOW_TESTS_ENABLED") != "1" {
		t.SkipNow()
	}
}
