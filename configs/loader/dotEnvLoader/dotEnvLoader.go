package dotEnvLoader

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvLoader reads a .env file and overlays the process environment on
// top of it, so container-level variables win over file values.
type DotEnvLoader struct {
	Path string
}

func (l DotEnvLoader) Load() (map[string]string, error) {
	path := l.Path
	if path == "" {
		path = ".env"
	}

	envs := make(map[string]string)
	if fileEnvs, err := godotenv.Read(path); err == nil {
		envs = fileEnvs
	}

	for _, pair := range os.Environ() {
		if key, value, ok := strings.Cut(pair, "="); ok {
			envs[key] = value
		}
	}
	return envs, nil
}
