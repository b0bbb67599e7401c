package executors

import (
	"fmt"
	"os"
)

type envStore struct {
	env []string
}

func newEnvStore() *envStore {
	return &envStore{
		env: os.Environ(),
	}
}

func (e *envStore) SetEnv(k, v string) {
	// copy to not share backing array between executor copies
	env := make([]string, 0, len(e.env)+1)
	env = append(env, e.env...)
	e.env = append(env, fmt.Sprintf("%s=%s", k, v))
}
