// Package main provides the audioglue command-line tool.
//
// audioglue works with the configuration file that binds symbolic event
// names to engine events:
//
//	audioglue init                  write a commented default configuration
//	audioglue validate              check the configuration and its bindings
//	audioglue events                list catalog slots and what they are bound to
//	audioglue simulate --scene X    run a session against the simulated engine
//
// The --config flag selects the file; without it audioglue.yaml in the
// working directory is used when present. Every setting can be overridden
// with AUDIOGLUE_* environment variables, e.g. AUDIOGLUE_LOG_LEVEL=debug.
package main
