package chain

import (
	"fmt"

	"github.com/condorlabs/condor/internal/core"
)

func errUnknownUnderlying(underlying string) error {
	return core.WrapError(core.ErrChainUnavailable,
		fmt.Errorf("no market data configured for %q", underlying))
}
