// Package raid holds helpers shared by the RAiD subpackages.
package raid

import (
	"net/url"
	"strings"

	dErrors "conflux/pkg/domain-errors"
)

// SplitIdentifier splits a RAiD identifier URI of the form
// scheme://host/prefix/suffix into its prefix and suffix parts, which the
// registry API addresses separately. A trailing slash is tolerated.
func SplitIdentifier(raidID string) (prefix, suffix string, err error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raidID), "/")
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", "", dErrors.Newf(dErrors.CodeInvalidInput, "malformed RAiD identifier %q", raidID)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", dErrors.Newf(dErrors.CodeInvalidInput, "RAiD identifier %q is not an absolute URI", raidID)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", dErrors.Newf(dErrors.CodeInvalidInput, "RAiD identifier %q does not contain prefix/suffix", raidID)
	}
	return parts[0], parts[1], nil
}
