package main

import "path/filepath"

// dirOf and baseOf split a "some/dir/prefix" CLI argument into the
// (directory, file-key) pair every persistence helper in voxelio and
// optimizer wants, since gosl's io.WriteFileSD itself takes the two
// separately rather than a single path.
func dirOf(prefix string) string {
	d := filepath.Dir(prefix)
	if d == "" {
		return "."
	}
	return d
}

func baseOf(prefix string) string {
	return filepath.Base(prefix)
}
