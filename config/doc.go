// Package config loads and validates the YAML run configuration of the
// tilewave command.
//
// What:
//
//   - Run mirrors the generate flags: example path, neighbourhood, output size,
//     seed, retry and wave budgets, edge and unobserved policies, batch size,
//     terminal palette and the walkable-region check.
//   - Default returns the values used when a key is absent. Decode and Read
//     decode on top of Default and reject unknown keys; Parse and Load also
//     validate.
//   - Validate checks struct tags with go-playground/validator and resolves the
//     symbolic fields (neighbourhood, edge, unobserved, palette colours).
//
// Errors:
//
//   - ErrInvalidConfig: decoding or validation failed; the message lists every
//     offending field.
package config
