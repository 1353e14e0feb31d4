package artifact

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/common"
)

const pageSeparator = "_page_"

// ParseFilename splits an artifact filename of the shape
// <document_id>_page_<page_number>.<ext> into its components. Exactly one
// "_page_" separator is required; anything else is MALFORMED_FILENAME.
// Page numbers below 1 are rejected here so nothing downstream has to
// re-check them.
func ParseFilename(name string) (docID string, page int, err error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(base, pageSeparator)
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, common.NewAppError(constants.KindMalformedFilename,
			fmt.Sprintf("%q does not match <id>_page_<n>", name), nil)
	}
	page, aerr := strconv.Atoi(parts[1])
	if aerr != nil {
		return "", 0, common.NewAppError(constants.KindMalformedFilename,
			fmt.Sprintf("%q has non-numeric page part", name), aerr)
	}
	if page < 1 {
		return "", 0, common.NewAppError(constants.KindMalformedFilename,
			fmt.Sprintf("%q has page number %d; pages start at 1", name, page), nil)
	}
	return parts[0], page, nil
}
