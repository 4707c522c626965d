package entities

import (
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"
)

// numericVersionPattern matches the version portion of a specifier, leaving
// range qualifiers such as "^", "~" or ">=" outside the match.
var numericVersionPattern = regexp.MustCompile(`[0-9][0-9.]*`)

// FindInconsistencies compares every manifest against every other one and
// returns the manifests whose declared dependency specifiers disagree with the
// version a sibling manifest declares for itself.
//
// Each manifest acts as the reference for its own name. For every other
// manifest, "dependencies" is inspected before "devDependencies", and only the
// first mismatch found for that (reference, linked) pair is recorded. A linked
// manifest flagged by several references appears once, with the reasons
// accumulated in reference order. Results follow the input order.
//
// When two manifests declare the same name, the first one is the reference and
// the later one is ignored for that role.
func FindInconsistencies(manifests []*Manifest) []InconsistentManifest {
	reasons := make(map[int][]Reason)
	seenNames := make(map[string]string)

	for _, reference := range manifests {
		if reference.Name == "" || reference.Version == "" {
			logger.Debugf("[sync] %s has no name/version, skipping as reference", reference.Path)
			continue
		}
		if firstPath, ok := seenNames[reference.Name]; ok {
			logger.Warnf(
				"[sync] %q is declared by both %s and %s, using %s as reference",
				reference.Name, firstPath, reference.Path, firstPath,
			)
			continue
		}
		seenNames[reference.Name] = reference.Path

		for j, linked := range manifests {
			if linked == reference {
				continue
			}

			reason, found := findReason(reference, linked)
			if !found {
				continue
			}

			logger.Infof(
				"[sync] Found inconsistency in %s: %s %s -> %s",
				linked.Path, reason.DependencyName, reason.OldVersionSpec, reason.NewVersionSpec,
			)
			reasons[j] = append(reasons[j], reason)
		}
	}

	var result []InconsistentManifest
	for j, linked := range manifests {
		if rs, ok := reasons[j]; ok {
			result = append(result, InconsistentManifest{Manifest: linked, Reasons: rs})
		}
	}
	return result
}

// findReason returns the first mismatch between the reference's own version and
// the linked manifest's declaration of it.
func findReason(reference, linked *Manifest) (Reason, bool) {
	for _, kind := range DependencyKinds {
		spec, ok := linked.VersionSpec(kind, reference.Name)
		if !ok || strings.Contains(spec, reference.Version) {
			continue
		}

		newSpec, replaced := ReplaceVersion(spec, reference.Version)
		if !replaced {
			logger.Debugf(
				"[sync] %s declares %s as %q, which holds no version number, skipping",
				linked.Path, reference.Name, spec,
			)
			continue
		}

		warnOnDowngrade(linked.Path, reference.Name, spec, reference.Version)
		return Reason{
			DependencyName: reference.Name,
			OldVersionSpec: spec,
			NewVersionSpec: newSpec,
		}, true
	}
	return Reason{}, false
}

// ReplaceVersion substitutes the first run of digits and dots in spec with
// version. The boolean is false when spec carries no such run.
func ReplaceVersion(spec, version string) (string, bool) {
	loc := numericVersionPattern.FindStringIndex(spec)
	if loc == nil {
		return spec, false
	}
	return spec[:loc[0]] + version + spec[loc[1]:], true
}

func warnOnDowngrade(path, name, spec, version string) {
	current := "v" + numericVersionPattern.FindString(spec)
	target := "v" + version
	if !semver.IsValid(current) || !semver.IsValid(target) {
		return
	}
	if semver.Compare(target, current) < 0 {
		logger.Warnf("[sync] %s: %s will be downgraded from %s to %s", path, name, spec, version)
	}
}
