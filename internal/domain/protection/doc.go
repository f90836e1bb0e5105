// Package protection contains the core domain types of the agent.
//
// State is the tri-state view of the real-time protection flag and Status is
// the single concurrency-safe cell holding the last observed State.
package protection
