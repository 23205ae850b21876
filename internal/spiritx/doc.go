// Package spiritx is the HTTP client for the remote product catalog API.
//
// # Overview
//
// The API is the single source of truth for products: this client performs
// the list/create/update/delete calls plus login, and hands back domain
// records for the catalog store to cache. All persistence is the server's
// problem; nothing is written locally here.
//
// # Protocol notes
//
//   - Responses are JSON; mutations are submitted as multipart form data.
//   - Updates go through POST with a "_method=PUT" form field, the server's
//     method-override convention, and carry only the changed fields.
//   - Every request except POST /login attaches the session token in a
//     "token" header. 401/403 map to ErrUnauthorized so callers can route
//     the user to sign-in instead of showing a raw status code.
//   - New products are assigned their identifier server-side; the client
//     never invents IDs.
package spiritx
