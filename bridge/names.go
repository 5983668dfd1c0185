package bridge

import (
	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/facade"
)

// ContextPropertyNames returns the reserved source-context property name of
// each side: the message-template name first, the facade name second.
func ContextPropertyNames() (coreName, facadeName string) {
	return core.SourceContextPropertyName, facade.ContextPropertyName
}

// RemapPropertyName returns the facade name for a message-template property.
// Only an exact, case-sensitive match of the source-context name is renamed.
func RemapPropertyName(name string) string {
	if name == core.SourceContextPropertyName {
		return facade.ContextPropertyName
	}
	return name
}
