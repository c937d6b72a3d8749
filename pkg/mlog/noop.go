package mlog

// noopLogger discards everything. Used as the FromContext default and in
// tests that don't care about log output.
type noopLogger struct{}

var shared Logger = &noopLogger{}

// NoOp returns a shared Logger that discards everything it receives.
func NoOp() Logger { return shared }

func (n *noopLogger) Info(args ...any)             {}
func (n *noopLogger) Infof(f string, args ...any)  {}
func (n *noopLogger) Error(args ...any)            {}
func (n *noopLogger) Errorf(f string, args ...any) {}
func (n *noopLogger) Warn(args ...any)             {}
func (n *noopLogger) Warnf(f string, args ...any)  {}
func (n *noopLogger) Debug(args ...any)            {}
func (n *noopLogger) Debugf(f string, args ...any) {}
func (n *noopLogger) Fatal(args ...any)            {}
func (n *noopLogger) Fatalf(f string, args ...any) {}
func (n *noopLogger) WithFields(fields ...any) Logger { return n }
func (n *noopLogger) Sync() error                     { return nil }
