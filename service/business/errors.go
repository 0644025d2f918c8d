package business

import (
	"errors"
)

var ErrorInitializationFail = errors.New("business dependencies are not configured")
