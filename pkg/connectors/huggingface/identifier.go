package huggingface

import (
	"fmt"
	"strings"

	"github.com/aiod/metacat/pkg/connectors"
)

// Delimiter joins the parts of a composite identifier. It does not occur
// in HuggingFace dataset names, which is what makes the encoding
// reversible.
const Delimiter = "|"

const expectedGrammar = "[namespace|]dataset_name|config|split"

// Decode splits a composite identifier into the platform-native dataset
// name, the config and the split.
//
// The identifier has 3 or 4 delimiter-separated parts. The last two are
// always config and split; the parts before them, rejoined with "/",
// reconstruct the native name (recovering the optional namespace).
func Decode(identifier string) (name string, config string, split string, err error) {
	parts := strings.Split(identifier, Delimiter)
	if len(parts) != 3 && len(parts) != 4 {
		return "", "", "", connectors.BadIdentifier{
			Identifier: identifier, Expected: expectedGrammar,
		}
	}

	name = strings.Join(parts[:len(parts)-2], "/")
	config = parts[len(parts)-2]
	split = parts[len(parts)-1]
	return name, config, split, nil
}

// Encode builds the composite identifier for a (name, config, split)
// combination.
//
// name is the platform-native dataset name, with at most one "/" between
// namespace and dataset. A name already containing the delimiter cannot be
// encoded reversibly, so it is rejected rather than silently corrupted.
func Encode(name string, config string, split string) (string, error) {
	if strings.Contains(name, Delimiter) {
		return "", fmt.Errorf(
			"dataset name %q contains the delimiter %q and cannot be encoded",
			name, Delimiter,
		)
	}
	if 1 < strings.Count(name, "/") {
		return "", fmt.Errorf(
			"dataset name %q has more than one namespace separator", name,
		)
	}
	for _, part := range []string{config, split} {
		if strings.Contains(part, Delimiter) {
			return "", fmt.Errorf(
				"%q contains the delimiter %q and cannot be encoded",
				part, Delimiter,
			)
		}
	}

	return strings.Join(
		[]string{strings.ReplaceAll(name, "/", Delimiter), config, split},
		Delimiter,
	), nil
}
