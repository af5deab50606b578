package section

// Style carries the presentation tokens shared by all section kinds. Values
// are opaque tokens resolved by the rendering pipeline's stylesheet.
type Style struct {
	Background     string `json:"background,omitempty"`
	TextColor      string `json:"textColor,omitempty"`
	HeadingFont    string `json:"headingFont,omitempty"`
	HeadingSize    string `json:"headingSize,omitempty"`
	SubheadingFont string `json:"subheadingFont,omitempty"`
	SubheadingSize string `json:"subheadingSize,omitempty"`
	BodyFont       string `json:"bodyFont,omitempty"`
	BodySize       string `json:"bodySize,omitempty"`
}

// Item is one entry of a section's collection. Which fields are meaningful
// depends on the owning section's kind: gallery items use Image/Title/
// Description, stats items use Value/Label/Icon, navigation and footer items
// use Label/Href, team items use Name/Role/Image.
type Item struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Label       string `json:"label,omitempty"`
	Value       string `json:"value,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Href        string `json:"href,omitempty"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role,omitempty"`
	Date        string `json:"date,omitempty"`
}

// FormField describes one input of a contact/form section.
type FormField struct {
	Label       string `json:"label"`
	Type        string `json:"type"` // text, email, tel, textarea
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// Section is one typed, orderable block of page content. Its position in the
// page's content array is its sole ordering key; ID is a stable identity
// assigned at creation and preserved across reorders.
//
// Kind is immutable after creation.
type Section struct {
	ID         string `json:"id"`
	Kind       Kind   `json:"kind"`
	Heading    string `json:"heading,omitempty"`
	Subheading string `json:"subheading,omitempty"`
	Body       string `json:"body,omitempty"`
	Hidden     bool   `json:"hidden,omitempty"`
	Style      Style  `json:"style,omitempty"`

	Items  []Item      `json:"items,omitempty"`
	Fields []FormField `json:"fields,omitempty"`
	Links  []Item      `json:"links,omitempty"`

	VideoURL    string `json:"videoUrl,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	HTML        string `json:"html,omitempty"`
	CSS         string `json:"css,omitempty"`
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	if s.Items != nil {
		out.Items = make([]Item, len(s.Items))
		copy(out.Items, s.Items)
	}
	if s.Fields != nil {
		out.Fields = make([]FormField, len(s.Fields))
		copy(out.Fields, s.Fields)
	}
	if s.Links != nil {
		out.Links = make([]Item, len(s.Links))
		copy(out.Links, s.Links)
	}
	return out
}

// CloneContent deep-copies a whole content array.
func CloneContent(content []Section) []Section {
	if content == nil {
		return nil
	}
	out := make([]Section, len(content))
	for i, s := range content {
		out[i] = s.Clone()
	}
	return out
}
