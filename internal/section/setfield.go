package section

import (
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// Field names accepted by SetField. Kind and ID are deliberately absent:
// kind is immutable after creation and identity is engine-managed.
const (
	FieldHeading        = "heading"
	FieldSubheading     = "subheading"
	FieldBody           = "body"
	FieldHidden         = "hidden"
	FieldItems          = "items"
	FieldFields         = "fields"
	FieldLinks          = "links"
	FieldVideoURL       = "videoUrl"
	FieldCompanyName    = "companyName"
	FieldHTML           = "html"
	FieldCSS            = "css"
	FieldBackground     = "background"
	FieldTextColor      = "textColor"
	FieldHeadingFont    = "headingFont"
	FieldHeadingSize    = "headingSize"
	FieldSubheadingFont = "subheadingFont"
	FieldSubheadingSize = "subheadingSize"
	FieldBodyFont       = "bodyFont"
	FieldBodySize       = "bodySize"
)

// SetField shallow-merges a single named field into the section. Collection
// fields (items, fields, links) replace the whole slice; everything else is a
// scalar. Unknown field names and mismatched value types are rejected without
// touching the section.
func (s *Section) SetField(field string, value any) error {
	badType := func() error {
		return errors.New(errors.CategoryValidation, errors.SeverityWarning,
			"field value has wrong type").WithContext("field", field)
	}

	setString := func(dst *string) error {
		v, ok := value.(string)
		if !ok {
			return badType()
		}
		*dst = v
		return nil
	}

	switch field {
	case FieldHeading:
		return setString(&s.Heading)
	case FieldSubheading:
		return setString(&s.Subheading)
	case FieldBody:
		return setString(&s.Body)
	case FieldHidden:
		v, ok := value.(bool)
		if !ok {
			return badType()
		}
		s.Hidden = v
		return nil
	case FieldItems:
		v, ok := value.([]Item)
		if !ok {
			return badType()
		}
		s.Items = v
		return nil
	case FieldFields:
		v, ok := value.([]FormField)
		if !ok {
			return badType()
		}
		s.Fields = v
		return nil
	case FieldLinks:
		v, ok := value.([]Item)
		if !ok {
			return badType()
		}
		s.Links = v
		return nil
	case FieldVideoURL:
		return setString(&s.VideoURL)
	case FieldCompanyName:
		return setString(&s.CompanyName)
	case FieldHTML:
		return setString(&s.HTML)
	case FieldCSS:
		return setString(&s.CSS)
	case FieldBackground:
		return setString(&s.Style.Background)
	case FieldTextColor:
		return setString(&s.Style.TextColor)
	case FieldHeadingFont:
		return setString(&s.Style.HeadingFont)
	case FieldHeadingSize:
		return setString(&s.Style.HeadingSize)
	case FieldSubheadingFont:
		return setString(&s.Style.SubheadingFont)
	case FieldSubheadingSize:
		return setString(&s.Style.SubheadingSize)
	case FieldBodyFont:
		return setString(&s.Style.BodyFont)
	case FieldBodySize:
		return setString(&s.Style.BodySize)
	default:
		return errors.New(errors.CategoryValidation, errors.SeverityWarning,
			"unknown section field").WithContext("field", field)
	}
}
