package connect

import (
	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"

	"github.com/osa030/tunedeck/internal/app/catalog"
)

// toConnectError maps catalog misses to CodeNotFound and everything else to
// CodeInternal.
func toConnectError(err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
