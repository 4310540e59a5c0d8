// Package errors provides sentinel errors for source tree reading.
package errors

import "errors"

var (
	// ErrEntryParseFailed indicates the renderer rejected an entry file.
	ErrEntryParseFailed = errors.New("entry file could not be parsed")

	// ErrDirReadFailed indicates a language or category folder could not be listed.
	ErrDirReadFailed = errors.New("documentation directory read failed")

	// ErrFileReadFailed indicates reading an entry file failed.
	ErrFileReadFailed = errors.New("documentation file read failed")

	// ErrDuplicateEntryPath indicates two files in one category map to the same page.
	ErrDuplicateEntryPath = errors.New("duplicate entry path")

	// ErrReservedCategoryName indicates a category folder collides with the language index page.
	ErrReservedCategoryName = errors.New("reserved category name")
)
