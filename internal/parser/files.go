package parser

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"netflow/pkg/apperror"
)

// numberedName matches filenames like "bridge_3.txt": a prefix
// followed by a trailing number before the extension.
var numberedName = regexp.MustCompile(`^(.*?)([0-9]+)\.txt$`)

// ListNetworkFiles returns the *.txt files in dir in natural order:
// names sharing a prefix sort by their trailing number, so
// "ladder_2.txt" comes before "ladder_10.txt". Names without a
// trailing number fall back to plain string order.
func ListNetworkFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeNotFound,
			"cannot read networks directory "+dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Slice(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// naturalLess orders two filenames, treating a trailing number as a
// numeric component rather than text.
func naturalLess(a, b string) bool {
	ma := numberedName.FindStringSubmatch(a)
	mb := numberedName.FindStringSubmatch(b)
	if ma != nil && mb != nil {
		if ma[1] != mb[1] {
			return ma[1] < mb[1]
		}
		na, _ := strconv.Atoi(ma[2])
		nb, _ := strconv.Atoi(mb[2])
		return na < nb
	}
	return a < b
}
