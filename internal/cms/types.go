// Package cms talks to the headless CMS: reading the published post records
// and writing lead records into the leads database.
package cms

// Record is one row of a CMS database. Properties arrive as a loosely typed
// map; the mapper is responsible for tolerating missing or reshaped fields.
type Record struct {
	ID             string              `json:"id"`
	LastEditedTime string              `json:"last_edited_time"`
	Properties     map[string]Property `json:"properties"`
}

// Property is a single record field. Only the member matching Type is
// populated; everything else stays at its zero value, which is exactly the
// fallback the mapper wants for wrongly shaped data.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Email       string         `json:"email,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	URL         string         `json:"url,omitempty"`
	Files       []FileValue    `json:"files,omitempty"`
}

type RichText struct {
	PlainText string `json:"plain_text"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string `json:"start"`
}

type FileValue struct {
	Name string `json:"name"`
	File *struct {
		URL string `json:"url"`
	} `json:"file,omitempty"`
	External *struct {
		URL string `json:"url"`
	} `json:"external,omitempty"`
}

// DatabaseSchema describes the property layout of a CMS database. Lead
// writes consult it so only properties the database actually declares are
// sent.
type DatabaseSchema struct {
	ID         string                    `json:"id"`
	Properties map[string]PropertySchema `json:"properties"`
}

type PropertySchema struct {
	Type string `json:"type"`
}

// Block is one content block of a post body. The supported types cover what
// the editorial team actually writes; anything else renders as empty text
// and is skipped.
type Block struct {
	Type             string         `json:"type"`
	HasChildren      bool           `json:"has_children"`
	Paragraph        *RichTextBlock `json:"paragraph,omitempty"`
	Heading1         *RichTextBlock `json:"heading_1,omitempty"`
	Heading2         *RichTextBlock `json:"heading_2,omitempty"`
	Heading3         *RichTextBlock `json:"heading_3,omitempty"`
	BulletedListItem *RichTextBlock `json:"bulleted_list_item,omitempty"`
	NumberedListItem *RichTextBlock `json:"numbered_list_item,omitempty"`
	Quote            *RichTextBlock `json:"quote,omitempty"`
	Code             *RichTextBlock `json:"code,omitempty"`
}

type RichTextBlock struct {
	RichText []RichText `json:"rich_text"`
}
