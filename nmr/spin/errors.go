package spin

import "errors"

var errNoSites = errors.New("spin system must have at least one site")
