// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each store accepts a store.DBTX so the same implementation
// works against a connection pool or an open transaction.
package postgres
