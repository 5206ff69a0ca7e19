// Package client contains the CLI's building blocks for talking to the
// contactkeeper server and keeping local state.
//
// # Overview
//
//  1. The Client interface describes the HTTP API: signup, login, user
//     details, contact create/list/search and a health probe.
//  2. HTTPClient implements it over net/http. It unwraps the server's JSON
//     envelope, injects the bearer token set with SetToken, retries reads
//     while the server is unavailable and maps failures to sentinel errors.
//  3. InitDatabase and RunMigrations open the local SQLite session file and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// Transport failures and 502/503/504 answers become ErrUnavailable, 401
// becomes ErrUnauthorized. Any other failure envelope is returned as
// *APIError, which matches common.ErrValidation, common.ErrDuplicateEmail,
// common.ErrorNotFound or ErrRateLimited under errors.Is.
package client
