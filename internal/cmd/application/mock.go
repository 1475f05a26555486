package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    ClientWithOptionsFunc: func(opts ...venuemap.Option) (venuemap.Client, error) {
//	        return venuemap.New(append([]venuemap.Option{venuemap.WithTemplatesPath(path)}, opts...)...)
//	    },
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := complete.NewCommand(mock)
//	// ... test command
type Mock struct {
	ClientFunc            func() (venuemap.Client, error)
	ClientWithOptionsFunc func(opts ...venuemap.Option) (venuemap.Client, error)
	LoggerFunc            func() *zerolog.Logger
	OutputFormatFunc      func() string
	VersionFunc           func() string
	CommitFunc            func() string
	DateFunc              func() string
	BuiltByFunc           func() string
}

// Client returns a client using the mock function, or ClientWithOptions with
// no options.
func (m *Mock) Client() (venuemap.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return m.ClientWithOptions()
}

// ClientWithOptions returns a client using the mock function or a client
// built by venuemap.New from opts.
func (m *Mock) ClientWithOptions(opts ...venuemap.Option) (venuemap.Client, error) {
	if m.ClientWithOptionsFunc != nil {
		return m.ClientWithOptionsFunc(opts...)
	}
	return venuemap.New(opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
