//go:build !linux

package genericdash

import (
	"context"

	"github.com/pkg/errors"
)

// NewSocketCANConnection always fails; SocketCAN only exists on Linux.
func NewSocketCANConnection(ctx context.Context, iface string, l Logger) (Connection, error) {
	return nil, errors.Wrapf(ErrSocketCANUnsupported, "interface %s", iface)
}
