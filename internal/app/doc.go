// Package app contains the core application logic. It loads framework
// declarations, binds them to the handler catalog and runs them, either
// detached (render, library, inspect) or wired into an in-memory host that
// serves HTTP. It is decoupled from any specific entrypoint like a CLI.
package app
