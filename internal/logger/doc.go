// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and runtime level switching,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Every service of the agent receives a context and extracts the logger from
// it, so a component name attached once follows all of its log lines.
package logger
