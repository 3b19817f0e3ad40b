// Package mocks provides hand-written in-memory fakes of the store
// interfaces for unit testing services and handlers without a database.
package mocks
