// Package types defines the Book entity, its editable field descriptors, the
// BookStore and Catalogue interfaces, configuration, and the standard errors
// shared by every shelf package.
package types
