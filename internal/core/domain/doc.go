// Package domain defines the core data model for redislight.
//
// Everything here is a plain value type with no IO:
//
//   - Value: the stored entity, a Str or a List
//   - Command: the parsed command sum type, including SET modifiers
//   - Reply: the outcome of evaluating one command
//   - Errors: structured error codes shared by parser and evaluator
package domain
