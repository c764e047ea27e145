// Package mocks holds testify mocks for repository and service interfaces.
package mocks
