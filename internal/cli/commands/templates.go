package commands

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:templates
var templateFS embed.FS

// copyTemplate materializes an embedded project template into targetDir and
// reports the files it wrote. Existing files are kept unless force is set;
// kept files are not reported.
func copyTemplate(templateName, targetDir string, force bool) ([]string, error) {
	root := filepath.Join("templates", templateName)
	var written []string

	err := fs.WalkDir(templateFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		name := renameSpecialFiles(relPath)
		targetPath := filepath.Join(targetDir, name)

		if d.IsDir() {
			return os.MkdirAll(targetPath, 0750)
		}

		if !force {
			if _, err := os.Stat(targetPath); err == nil {
				return nil
			}
		}

		content, err := templateFS.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(targetPath, content, 0600); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	})

	return written, err
}

// renameSpecialFiles maps template names that cannot be stored as dotfiles,
// e.g. "gitignore" becomes ".gitignore".
func renameSpecialFiles(path string) string {
	dir, base := filepath.Dir(path), filepath.Base(path)
	if base == "gitignore" {
		return filepath.Join(dir, ".gitignore")
	}
	return path
}
