package entities

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrVersionNotFound is returned when a reason's declaration cannot be located
// in the manifest text.
var ErrVersionNotFound = errors.New("declared version not found in manifest text")

// PatchContent rewrites, for every reason, the first `"<name>": "<old>"` pair
// found in content so its value becomes the new specifier. Whitespace around
// the colon and every other byte of content are preserved.
func PatchContent(content string, reasons []Reason) (string, error) {
	for _, reason := range reasons {
		pattern := declarationPattern(reason)
		loc := pattern.FindStringSubmatchIndex(content)
		if loc == nil {
			return content, fmt.Errorf("%w: %s", ErrVersionNotFound, reason)
		}

		// loc[2]:loc[3] is the key and separator, loc[4]:loc[5] the old value.
		content = content[:loc[4]] + reason.NewVersionSpec + content[loc[5]:]
	}
	return content, nil
}

func declarationPattern(reason Reason) *regexp.Regexp {
	return regexp.MustCompile(
		`("` + regexp.QuoteMeta(reason.DependencyName) + `"\s*:\s*)"(` +
			regexp.QuoteMeta(reason.OldVersionSpec) + `)"`,
	)
}

// Apply patches the manifest content in place. The manifest is left untouched
// when any reason cannot be applied.
func (it *InconsistentManifest) Apply() error {
	patched, err := PatchContent(it.Content, it.Reasons)
	if err != nil {
		return err
	}
	it.Content = patched
	return nil
}
