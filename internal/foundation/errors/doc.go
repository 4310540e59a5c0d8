// Package errors provides the classified error primitives used across vale.
//
// A ClassifiedError carries a category (what kind of failure), a severity
// (whether the build can continue) and structured context for logging. Errors
// are created through the fluent ErrorBuilder:
//
//	err := errors.NewError(errors.CategoryValidation, "category not found").
//		WithContext("category", name).
//		Fatal().
//		Build()
//
// The CLI and HTTP adapters turn classified errors into exit codes and HTTP
// responses respectively.
package errors
