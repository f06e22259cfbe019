package cmd

import (
	"os"
	"path/filepath"

	"github.com/ardnew/mung"
)

// SearchPathEnv names the PATH-like environment variable listing include
// directories.
const SearchPathEnv = "KDLHTML_PATH"

// searchPath returns the include search directories: dirs in order, then
// those listed in env, a [os.PathListSeparator]-separated list.
func searchPath(env string, dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(env),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()

	var out []string

	for _, dir := range filepath.SplitList(list) {
		if dir != "" {
			out = append(out, dir)
		}
	}

	return out
}
