package env

import (
	"os"

	"github.com/afrinode-dev/Africlick/internal/config"
)

const (
	uploadDirEnvName = "UPLOAD_DIR"
)

type filesConfig struct {
	dir string
}

func NewFilesConfig() (config.FilesConfig, error) {
	dir := os.Getenv(uploadDirEnvName)
	if len(dir) == 0 {
		dir = "uploads"
	}

	return &filesConfig{dir: dir}, nil
}

func (cfg *filesConfig) UploadDir() string {
	return cfg.dir
}
