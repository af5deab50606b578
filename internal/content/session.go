package content

import (
	"context"

	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

// noSelection marks the absence of a selected section.
const noSelection = -1

// Editor is the explicit per-builder-instance session state: which page is
// active and which section is being edited. It wraps the shared content
// service so multiple builder instances (and tests) don't interfere through
// ambient globals.
type Editor struct {
	svc          *Service
	activePageID string
	selected     int
}

// NewEditor creates an editor session over a content service.
func NewEditor(svc *Service) *Editor {
	return &Editor{svc: svc, selected: noSelection}
}

// ActivePage returns the page currently open in the builder.
func (e *Editor) ActivePage() string {
	return e.activePageID
}

// SelectPage switches the active page. Buffers of other pages are kept:
// several pages may carry unsaved edits simultaneously, each saved
// independently.
func (e *Editor) SelectPage(pageID string) {
	if pageID != e.activePageID {
		e.activePageID = pageID
		e.selected = noSelection
	}
}

// Selected returns the index of the section being edited, if any.
func (e *Editor) Selected() (int, bool) {
	if e.selected == noSelection {
		return 0, false
	}
	return e.selected, true
}

// Select marks a section as the editing target.
func (e *Editor) Select(index int) {
	e.selected = index
}

// ClearSelection drops the editing target.
func (e *Editor) ClearSelection() {
	e.selected = noSelection
}

// Content returns the effective content of the active page.
func (e *Editor) Content(ctx context.Context) ([]section.Section, error) {
	return e.svc.EffectiveContent(ctx, e.activePageID)
}

// AddSection appends a new section of the given kind and auto-selects it.
func (e *Editor) AddSection(ctx context.Context, kind section.Kind) (int, error) {
	idx, err := e.svc.AddSection(ctx, e.activePageID, kind)
	if err != nil {
		return 0, err
	}
	e.selected = idx
	return idx, nil
}

// DeleteSection removes a section. Deleting the selected section clears the
// selection; deleting an earlier section shifts the selection down with the
// array.
func (e *Editor) DeleteSection(ctx context.Context, index int) error {
	if err := e.svc.DeleteSection(ctx, e.activePageID, index); err != nil {
		return err
	}
	switch {
	case e.selected == index:
		e.selected = noSelection
	case e.selected > index && e.selected != noSelection:
		e.selected--
	}
	return nil
}

// MoveSection moves a section up or down; the selection follows the moved
// section to its new index.
func (e *Editor) MoveSection(ctx context.Context, index int, dir Direction) error {
	newIndex, err := e.svc.MoveSection(ctx, e.activePageID, index, dir)
	if err != nil {
		return err
	}
	if e.selected == index {
		e.selected = newIndex
	} else if e.selected == newIndex && newIndex != index {
		// the neighbor we swapped with was selected
		e.selected = index
	}
	return nil
}

// ToggleVisibility flips the hidden flag on a section.
func (e *Editor) ToggleVisibility(ctx context.Context, index int) error {
	return e.svc.ToggleVisibility(ctx, e.activePageID, index)
}

// UpdateField updates one field of one section.
func (e *Editor) UpdateField(ctx context.Context, index int, field string, value any) error {
	return e.svc.UpdateField(ctx, e.activePageID, index, field, value)
}

// Save persists the active page's buffer.
func (e *Editor) Save(ctx context.Context) error {
	return e.svc.Save(ctx, e.activePageID)
}
