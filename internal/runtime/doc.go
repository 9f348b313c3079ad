// Package runtime provides the execution context for freckle commands.
//
// It encapsulates shared dependencies and configuration needed by actions,
// such as the loaded config, the sync engine, the logger, the restore-point
// store and the secret scanner.
package runtime
