package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyWebsiteID   = "website_id"
	KeyPageID      = "page_id"
	KeyTenantID    = "tenant_id"
	KeySectionKind = "section_kind"
	KeySectionID   = "section_id"
	KeyIndex       = "section_index"
	KeySlug        = "slug"
	KeyDomain      = "domain"
	KeyStatus      = "status"
	KeyMode        = "render_mode"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
	KeyMethod      = "method"
	KeyPath        = "path"
	KeyHTTPStatus  = "http_status"
	KeyRemoteAddr  = "remote_addr"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func WebsiteID(id string) slog.Attr    { return slog.String(KeyWebsiteID, id) }
func PageID(id string) slog.Attr      { return slog.String(KeyPageID, id) }
func TenantID(id string) slog.Attr    { return slog.String(KeyTenantID, id) }
func SectionKind(k string) slog.Attr  { return slog.String(KeySectionKind, k) }
func SectionID(id string) slog.Attr   { return slog.String(KeySectionID, id) }
func Index(i int) slog.Attr           { return slog.Int(KeyIndex, i) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Domain(d string) slog.Attr       { return slog.String(KeyDomain, d) }
func Status(s string) slog.Attr       { return slog.String(KeyStatus, s) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr     { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func HTTPStatus(c int) slog.Attr    { return slog.Int(KeyHTTPStatus, c) }
func RemoteAddr(a string) slog.Attr { return slog.String(KeyRemoteAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
