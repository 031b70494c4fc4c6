// Package repository turns repository calls into built statements and runs
// them through the Executor.
//
// Table names are fixed per repository, so no caller-supplied identifier
// ever reaches the query builders.
package repository
