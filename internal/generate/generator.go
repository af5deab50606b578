// Package generate defines the content-generation collaborator. The builder
// treats generators as untrusted: whatever they return passes through the
// same schema validation as hand-edited content before it may become a page.
package generate

import (
	"context"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

// Generator produces a full section tree from a free-form prompt and a
// business category hint.
type Generator interface {
	Generate(ctx context.Context, prompt, category string) ([]section.Section, error)
}

// Accept runs generator output through schema validation and identity
// assignment. Invalid output is rejected wholesale; nothing of a partially
// valid tree is kept.
func Accept(content []section.Section) ([]section.Section, error) {
	normalized := section.Normalize(content)
	if err := section.Validate(normalized); err != nil {
		return nil, errors.Wrap(err, errors.CategoryContent, errors.SeverityError, "generated content rejected")
	}
	return normalized, nil
}

// StaticGenerator returns a fixed tree regardless of prompt. Used in tests
// and as an offline fallback.
type StaticGenerator struct {
	Content []section.Section
	Err     error
}

func (g *StaticGenerator) Generate(_ context.Context, _, _ string) ([]section.Section, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	return section.CloneContent(g.Content), nil
}
