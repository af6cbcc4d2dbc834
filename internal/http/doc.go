// Package http exposes the site backend as JSON over net/http.
//
// Admin routes mount under /admin/api and require a session:
//   - Content records: /content, /content/{id}, /content/{id}/translations,
//     /content/groups/{groupID}
//   - Page title overrides: /page-titles, /page-titles/{id}
//   - Layout overrides: /settings/layout, /settings/layout/{locale}
//   - Jobs: /translations/{kind}/backfill, /blog/import, /jobs/audit
//
// Public routes mount under /api:
//   - /{locale}/layout, /{locale}/titles/{slug}, /{locale}/content/{kind}
//   - /simulators, /simulators/{name}, /locale
//
// Host applications register both on their own mux.
package http
