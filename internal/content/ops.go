package content

import (
	"context"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

// Direction of a section move.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Structural operations. Each one reads the current effective content,
// applies its change, and writes a full new array into the buffer via
// Mutate. On any error the buffer is left unmodified.

// AddSection appends the schema defaults for kind and returns the index of
// the new section (always len-1) so the caller can auto-select it.
func (s *Service) AddSection(ctx context.Context, pageID string, kind section.Kind) (int, error) {
	fresh, err := section.DefaultsFor(kind)
	if err != nil {
		return 0, err
	}
	current, err := s.EffectiveContent(ctx, pageID)
	if err != nil {
		return 0, err
	}
	if err := s.limits.CheckAddSection(len(current)); err != nil {
		return 0, err
	}
	next := append(current, fresh)
	s.Mutate(pageID, next)
	s.recorder.IncSectionOp("add")
	return len(next) - 1, nil
}

// DeleteSection removes the section at index; all later sections shift down
// by one.
func (s *Service) DeleteSection(ctx context.Context, pageID string, index int) error {
	current, err := s.EffectiveContent(ctx, pageID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(current) {
		return errors.SectionIndexOutOfRange(index, len(current))
	}
	next := append(current[:index], current[index+1:]...)
	s.Mutate(pageID, next)
	s.recorder.IncSectionOp("delete")
	return nil
}

// MoveSection swaps the section at index with its neighbor in the given
// direction. A move whose target falls outside the array is a silent no-op,
// not an error. It returns the section's resulting index.
func (s *Service) MoveSection(ctx context.Context, pageID string, index int, dir Direction) (int, error) {
	current, err := s.EffectiveContent(ctx, pageID)
	if err != nil {
		return index, err
	}
	if index < 0 || index >= len(current) {
		return index, errors.SectionIndexOutOfRange(index, len(current))
	}

	target := index - 1
	if dir == MoveDown {
		target = index + 1
	}
	if target < 0 || target >= len(current) {
		return index, nil
	}

	current[index], current[target] = current[target], current[index]
	s.Mutate(pageID, current)
	s.recorder.IncSectionOp("move")
	return target, nil
}

// ToggleVisibility flips the hidden flag on exactly the section at index.
func (s *Service) ToggleVisibility(ctx context.Context, pageID string, index int) error {
	current, err := s.EffectiveContent(ctx, pageID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(current) {
		return errors.SectionIndexOutOfRange(index, len(current))
	}
	current[index].Hidden = !current[index].Hidden
	s.Mutate(pageID, current)
	s.recorder.IncSectionOp("toggle_visibility")
	return nil
}

// UpdateField shallow-merges one named field into the section at index.
// Collection fields replace the whole slice; nothing else on the section is
// touched. Failures (bad index, unknown field, wrong type) leave the buffer
// unmodified.
func (s *Service) UpdateField(ctx context.Context, pageID string, index int, field string, value any) error {
	current, err := s.EffectiveContent(ctx, pageID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(current) {
		return errors.SectionIndexOutOfRange(index, len(current))
	}
	if err := current[index].SetField(field, value); err != nil {
		return err
	}
	s.Mutate(pageID, current)
	s.recorder.IncSectionOp("update_field")
	return nil
}
