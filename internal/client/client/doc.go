// Package client contains client-side building blocks for taskkeeper.
//
// # Overview
//
// The package provides:
//  1. The Client interface describing the taskkeeper REST API: account
//     operations (Register, Login, Logout, Me) and task CRUD.
//  2. HTTPClient, a net/http implementation that keeps the session token,
//     sends it in the x-auth header and maps response statuses to errors.
//  3. InitDatabase and RunMigrations, which open the local SQLite file the
//     CLI keeps its session in and apply the embedded goose migrations.
//
// # Error Handling
//
// Statuses become errors callers can match with errors.Is:
// ErrUnavailable (503 or transport failure), ErrUnauthorized (401),
// common.ErrAuth (rejected login), common.ErrNotFound (404) and
// common.ErrValidation (400 with field errors, see ValidationError).
//
// Idempotent reads are retried a few times while the server answers 503.
package client
