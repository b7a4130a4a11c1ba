package boilerplate

import (
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/djboot-dev/djboot/internal/errors"
)

const (
	// EnvSampleFile is the sample environment file shipped in the boilerplate.
	EnvSampleFile = ".env.sample"

	// EnvFile is the active environment file read by the project.
	EnvFile = ".env"
)

// WriteEnvFile activates the sample environment file: the sample is parsed
// and its variables are written to .env in the destination. Parsing the
// sample also catches a malformed file before the project first boots.
func WriteEnvFile(dest string) error {
	sample := filepath.Join(dest, EnvSampleFile)
	vars, err := godotenv.Read(sample)
	if err != nil {
		return errors.New("E042").
			WithPath(sample).
			WithSuggestion("The boilerplate should ship a .env.sample file").
			Wrap(err)
	}

	target := filepath.Join(dest, EnvFile)
	if err := godotenv.Write(vars, target); err != nil {
		return errors.New("E042").WithPath(target).Wrap(err)
	}
	return nil
}
