// Package logger provides structured logging for apikit clients and tools
// using zerolog.
//
// Output goes to stdout, stderr or a file path. File output is rotated by
// lumberjack according to MaxSize, MaxBackups and MaxAge.
//
// # Configuration
//
//	logger:
//	  level: "debug"
//	  format: "json"
//	  output: "/var/log/apicall.log"
//	  max_size: 50
//
// # Usage
//
//	log := logger.Get("apiclient")
//	log.Debug("request completed", logger.Fields("method", "GET", "status", 200))
package logger
