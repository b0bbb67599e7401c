package runmode

import "os"

func IsProduction() bool {
	env := os.Getenv("GO_ENV")
	return env == "prod" || env == "production"
}

func IsDebug() bool {
	return os.Getenv("DEBUG") == "1"
}
