package store

import (
	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/common"
)

// SanitizeNodeProperties applies util.SanitizeText to the string fields of
// props. Both stores call it before encoding, so persisted properties are
// the same whichever backend holds them.
func SanitizeNodeProperties(props common.NodeProperties) common.NodeProperties {
	props.Description = util.SanitizeText(props.Description)
	props.SourceDocument = util.SanitizeText(props.SourceDocument)
	return props
}
