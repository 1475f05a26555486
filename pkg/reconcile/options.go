package reconcile

import (
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/normalize"
)

type options struct {
	policy    Policy
	normalize normalize.Func
}

func defaultOptions() *options {
	return &options{
		policy:    PolicyCompletion,
		normalize: normalize.Text,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithPolicy sets the merge policy.
func WithPolicy(policy Policy) Option {
	return func(o *options) error {
		if _, err := ParsePolicy(string(policy)); err != nil {
			return err
		}
		o.policy = policy
		return nil
	}
}

// WithNormalizer replaces the value comparison function.
func WithNormalizer(fn normalize.Func) Option {
	return func(o *options) error {
		if fn == nil {
			return &errors.ValidationError{
				Field:   "normalizer",
				Message: "cannot be nil",
			}
		}
		o.normalize = fn
		return nil
	}
}
