// Package errors provides structured, actionable error messages for stencil.
//
// Each error has a stable code (e.g., "E102") that maps to a short message,
// a detailed explanation, and a documentation URL. Call sites enrich the
// template with details and suggestions specific to the situation.
//
// # Error Categories
//
// Errors are organized into categories:
//   - cli: command usage and delegation errors
//   - config: stencil.json loading and validation errors
//   - registry: component registry fetch errors
//   - deploy: upload errors
//
// # Usage
//
//	err := errors.New("E121").
//	    WithDetail("No stencil.json found in /home/dev/app").
//	    WithSuggestion("Run 'stencil create' to start a new project")
//
//	fmt.Println(err.Format())
package errors
