package providers

import (
	"fmt"
	"strings"

	"github.com/gookit/validate"
	"tracespace/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks the tag rules on the config struct plus the cross-field
// rules the tags cannot express.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	v.AddValidator("unixPath", func(val interface{}) bool {
		path, ok := val.(string)
		if !ok || path == "" {
			return false
		}
		return !strings.ContainsAny(path, "\x00\n")
	})
	if !v.Validate() {
		return v.Errors.OneError()
	}

	if cv.conf.Storage.WarmRetentionDays < cv.conf.Storage.HotRetentionDays {
		return fmt.Errorf("warmRetentionDays (%d) must not be shorter than hotRetentionDays (%d)",
			cv.conf.Storage.WarmRetentionDays, cv.conf.Storage.HotRetentionDays)
	}
	return nil
}
