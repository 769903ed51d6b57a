package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonWordRe  = regexp.MustCompile(`\W`)
	filenameRe = regexp.MustCompile(`(?i)^(node|path)_(\d{3})_`)
)

// ComponentName derives the canonical name for one rendered variant:
// kind, zero-padded index (when given), component id and the option labels
// joined with "-", all joined with "_" after replacing non-word characters
// with "-" per part.
//
//	ComponentName(ptr(1), "id", true, []string{"o1", "o2"}) == "node_001_id_o1-o2"
//	ComponentName(nil, "id", false, nil) == "path_id"
func ComponentName(index *int, id string, isNode bool, options []string) string {
	kind := "path"
	if isNode {
		kind = "node"
	}

	parts := []string{kind}
	if index != nil {
		parts = append(parts, fmt.Sprintf("%03d", *index))
	}
	parts = append(parts, id)
	if len(options) > 0 {
		parts = append(parts, strings.Join(options, "-"))
	}

	for i, part := range parts {
		parts[i] = nonWordRe.ReplaceAllString(part, "-")
	}
	return strings.Join(parts, "_")
}

// FileDescriptor identifies which catalog entry a rendered file belongs to.
type FileDescriptor struct {
	Index  int
	IsNode bool
}

// ParseFilename decodes the "(node|path)_NNN_" prefix of a rendered file's
// stem. It fails when the 3-digit index prefix is missing.
func ParseFilename(stem string) (FileDescriptor, error) {
	m := filenameRe.FindStringSubmatch(stem)
	if m == nil {
		return FileDescriptor{}, fmt.Errorf("filename %q has no (node|path)_NNN_ prefix", stem)
	}

	index, _ := strconv.Atoi(m[2])
	return FileDescriptor{
		Index:  index,
		IsNode: strings.EqualFold(m[1], "node"),
	}, nil
}
