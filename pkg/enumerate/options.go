package enumerate

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Option func(enumerator *Enumerator) error

// WithLimit stops the session once limit solutions were found. Zero means no limit.
func WithLimit(limit int) Option {
	return func(enumerator *Enumerator) error {
		if limit < 0 {
			return errors.Errorf("negative solution limit %d", limit)
		}
		enumerator.limit = limit
		return nil
	}
}

// WithObserver reports progress to observer after every oracle call
func WithObserver(observer Observer) Option {
	return func(enumerator *Enumerator) error {
		enumerator.observer = observer
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(enumerator *Enumerator) error {
		enumerator.logger = logger
		return nil
	}
}

var defaults = []Option{
	func(enumerator *Enumerator) error {
		if enumerator.observer == nil {
			enumerator.observer = DefaultObserver{}
		}
		return nil
	},
	func(enumerator *Enumerator) error {
		if enumerator.logger == nil {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			enumerator.logger = logger
		}
		return nil
	},
}
