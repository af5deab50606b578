// Package quota defines plan-based structural limits for tenant sites. The
// zero Limits value is unlimited, so local tooling runs unconstrained.
package quota

import "fmt"

// LimitError indicates a plan limit has been exceeded.
type LimitError struct {
	Limit   string
	Current int
	Maximum int
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("quota limit exceeded: %s (%d/%d)", e.Limit, e.Current, e.Maximum)
}

// Limits defines structural limits for a tenant's sites. A zero field means
// no limit.
type Limits struct {
	MaxPagesPerSite    int
	MaxSectionsPerPage int
	MaxAssetBytes      int64
}

// PlanLimits provides preset limits for different tiers.
var PlanLimits = map[string]Limits{
	"free": {
		MaxPagesPerSite:    3,
		MaxSectionsPerPage: 15,
		MaxAssetBytes:      2 * 1024 * 1024, // 2 MB per upload
	},
	"pro": {
		MaxPagesPerSite:    25,
		MaxSectionsPerPage: 50,
		MaxAssetBytes:      20 * 1024 * 1024,
	},
	"enterprise": {
		MaxPagesPerSite:    200,
		MaxSectionsPerPage: 200,
		MaxAssetBytes:      100 * 1024 * 1024,
	},
}

// ForPlan returns the limits of a named plan. Unknown plans get the free
// tier; an empty plan is unlimited.
func ForPlan(plan string) Limits {
	if plan == "" {
		return Limits{}
	}
	if l, ok := PlanLimits[plan]; ok {
		return l
	}
	return PlanLimits["free"]
}

// CheckAddSection reports whether a page with the given section count may
// grow by one.
func (l Limits) CheckAddSection(current int) error {
	if l.MaxSectionsPerPage > 0 && current >= l.MaxSectionsPerPage {
		return &LimitError{Limit: "sections per page", Current: current, Maximum: l.MaxSectionsPerPage}
	}
	return nil
}

// CheckAddPage reports whether a site with the given page count may grow by
// one.
func (l Limits) CheckAddPage(current int) error {
	if l.MaxPagesPerSite > 0 && current >= l.MaxPagesPerSite {
		return &LimitError{Limit: "pages per site", Current: current, Maximum: l.MaxPagesPerSite}
	}
	return nil
}

// CheckAssetSize reports whether an upload of the given size is allowed.
func (l Limits) CheckAssetSize(size int64) error {
	if l.MaxAssetBytes > 0 && size > l.MaxAssetBytes {
		return &LimitError{Limit: "asset size", Current: int(size), Maximum: int(l.MaxAssetBytes)}
	}
	return nil
}
