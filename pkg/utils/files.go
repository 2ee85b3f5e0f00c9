// Package utils holds small filesystem helpers shared by the CLI
// entrypoint, kept separate from internal/ so they carry no dependency
// on the pipeline's own types.
package utils

import "path/filepath"

// ResolveInputPath returns relPath's absolute, cleaned form plus its
// containing directory, so diagnostics and any relative `-o` path stay
// meaningful regardless of later working-directory changes.
func ResolveInputPath(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	parentDir = filepath.Dir(fullPath)
	return fullPath, parentDir, nil
}
