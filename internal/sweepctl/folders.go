package sweepctl

import (
	"os"
	"sort"

	"github.com/fvbommel/sortorder"
	"github.com/pkg/errors"
)

// listJobFolders returns the names of dir's immediate sub-directories in
// natural order, so numbered folders process as 1, 2, ..., 10 rather than
// the lexical 1, 10, 2. Order matters: together with the singleton
// dependency it turns the sweep into a queue.
func listJobFolders(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WithMessagef(err, "listing %s", dir)
	}
	folders := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}
	sort.Slice(folders, func(i, j int) bool {
		return sortorder.NaturalLess(folders[i], folders[j])
	})
	return folders, nil
}
