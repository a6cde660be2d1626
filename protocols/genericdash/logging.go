package genericdash

import (
	"context"

	"github.com/pkg/errors"
)

// LoggingSession reads frames from conn until the context is canceled. Frames
// with the given CAN ID are ingested into store, and after each accepted frame
// the values of params are sent on the returned channel. When params is empty
// every parameter is sent. The channel is closed when the context is canceled
// or too many consecutive errors are encountered while reading.
func LoggingSession(ctx context.Context, conn Connection, store *FrameStore, canID uint32,
	params []Parameter, l Logger) (<-chan map[Parameter]ParameterValue, error) {
	if conn == nil {
		return nil, errors.New("no connection")
	}
	if store == nil {
		store = NewFrameStore()
	}
	if l == nil {
		l = NopLogger
	}
	for _, p := range params {
		if !p.valid() {
			return nil, errors.Wrapf(ErrUnknownParameter, "parameter %d", int(p))
		}
	}

	results := make(chan map[Parameter]ParameterValue, 10)
	go processFrames(ctx, results, conn, store, canID, params, l)
	return results, nil
}

func processFrames(ctx context.Context, results chan<- map[Parameter]ParameterValue,
	conn Connection, store *FrameStore, canID uint32, params []Parameter, l Logger) {
	defer close(results)

	errCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
			cf, err := conn.NextFrame(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.Debug(err.Error())
				errCount++
				if errCount == 3 {
					return
				}
				continue
			}
			errCount = 0

			if cf.ID != canID {
				continue
			}

			f, err := FrameFromCAN(cf)
			if err == nil {
				err = store.Ingest(f)
			}
			if err != nil {
				l.Debugf("rejected frame: %v", err)
				continue
			}

			select {
			case results <- store.Snapshot(params...):
			case <-ctx.Done():
				return
			}
		}
	}
}
