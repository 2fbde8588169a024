package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Extension is the file extension picked up when walking a directory.
const Extension = ".stl"

// Discover lists the meshes under root. A regular file is returned as is; a
// directory is walked in lexical order collecting every *.stl file, ignoring case.
// The second result is the base that output paths are made relative to.
func Discover(root string) ([]string, string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, "", errors.Wrap(err, "stat input")
	}
	if !info.IsDir() {
		return []string{root}, filepath.Dir(root), nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), Extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "walk %s", root)
	}
	return files, root, nil
}

// OutputPath maps an input mesh to its output file. With no outDir the output sits
// next to the input; otherwise the input's path relative to base is recreated
// under outDir. The input extension is replaced by ext.
func OutputPath(base, outDir, file, ext string) (string, error) {
	if outDir == "" {
		return strings.TrimSuffix(file, filepath.Ext(file)) + ext, nil
	}

	rel, err := filepath.Rel(base, file)
	if err != nil {
		return "", errors.Wrapf(err, "relative path of %s", file)
	}
	return filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+ext), nil
}
