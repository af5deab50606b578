package section

import (
	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// Validate checks a content array at a trust boundary (template
// instantiation, generated content, persisted rows). It verifies that every
// kind belongs to the closed set and that kinds with required collections
// carry them. It never mutates its input.
func Validate(content []Section) error {
	for i, s := range content {
		if !IsKnown(s.Kind) {
			return errors.UnsupportedSectionKind(string(s.Kind)).WithContext("index", i)
		}
		switch s.Kind {
		case KindContact:
			if len(s.Fields) == 0 {
				return errors.New(errors.CategoryValidation, errors.SeverityWarning,
					"contact section requires at least one form field").WithContext("index", i)
			}
		case KindNavigation, KindGallery, KindFeatures, KindStats:
			if len(s.Items) == 0 {
				return errors.New(errors.CategoryValidation, errors.SeverityWarning,
					"section requires at least one item").
					WithContext("index", i).
					WithContext("kind", string(s.Kind))
			}
		}
	}
	return nil
}

// Normalize assigns fresh IDs to sections that lack one. Persisted content
// written before stable IDs existed, and content arriving from external
// generators, passes through here before entering the engine.
func Normalize(content []Section) []Section {
	out := CloneContent(content)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}
