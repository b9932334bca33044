// Package domain contains the entities exchanged between the scan session and
// the site it scans: scannable URLs, the validation errors reported for them,
// the per-URL failure marker and the options read model. These types carry the
// site's JSON field names so they can be decoded from and re-encoded to the
// same wire shape.
package domain
