package cms

import (
	"strconv"
	"strings"

	"github.com/Raph13009/notion-blogs/internal/domain"
)

// Editorial database property names. The mapper never fails on a missing or
// reshaped property; it falls back to the zero value so one malformed record
// cannot break the whole listing.
const (
	propSlug        = "Slug"
	propDescription = "Description"
	propDate        = "Date"
	propAuthor      = "Author"
	propTags        = "Tags"
	propCategory    = "Category"
	propCover       = "Cover"
	propFeatured    = "Featured"
	propPublished   = "Published"
)

// MapRecord converts a CMS record into a post summary. The slug is carried
// over as-is; normalization and dedup happen later in the content layer.
func MapRecord(record Record) domain.PostSummary {
	return domain.PostSummary{
		ID:             record.ID,
		Title:          titleOf(record),
		Slug:           textProp(record, propSlug),
		Description:    textProp(record, propDescription),
		Date:           dateProp(record, propDate),
		Author:         textProp(record, propAuthor),
		Tags:           multiSelectProp(record, propTags),
		Category:       selectProp(record, propCategory),
		CoverImage:     fileProp(record, propCover),
		IsFeatured:     checkboxProp(record, propFeatured),
		LastEditedTime: record.LastEditedTime,
	}
}

// IsPublished reports whether a record should appear on the site. A record
// without a Published checkbox counts as published.
func IsPublished(record Record) bool {
	prop, ok := record.Properties[propPublished]
	if !ok || prop.Type != "checkbox" || prop.Checkbox == nil {
		return true
	}
	return *prop.Checkbox
}

// titleOf finds the record title by property type rather than by name, so a
// renamed title column keeps working.
func titleOf(record Record) string {
	for _, prop := range record.Properties {
		if prop.Type == "title" {
			return plainText(prop.Title)
		}
	}
	return ""
}

func textProp(record Record, name string) string {
	prop, ok := record.Properties[name]
	if !ok {
		return ""
	}
	switch prop.Type {
	case "rich_text":
		return plainText(prop.RichText)
	case "url":
		return prop.URL
	case "email":
		return prop.Email
	default:
		return ""
	}
}

func selectProp(record Record, name string) string {
	prop, ok := record.Properties[name]
	if !ok || prop.Type != "select" || prop.Select == nil {
		return ""
	}
	return prop.Select.Name
}

func multiSelectProp(record Record, name string) []string {
	prop, ok := record.Properties[name]
	if !ok || prop.Type != "multi_select" {
		return nil
	}
	out := make([]string, 0, len(prop.MultiSelect))
	for _, option := range prop.MultiSelect {
		if option.Name != "" {
			out = append(out, option.Name)
		}
	}
	return out
}

func dateProp(record Record, name string) string {
	prop, ok := record.Properties[name]
	if !ok || prop.Type != "date" || prop.Date == nil {
		return ""
	}
	return prop.Date.Start
}

func checkboxProp(record Record, name string) bool {
	prop, ok := record.Properties[name]
	if !ok || prop.Type != "checkbox" || prop.Checkbox == nil {
		return false
	}
	return *prop.Checkbox
}

func fileProp(record Record, name string) string {
	prop, ok := record.Properties[name]
	if !ok {
		return ""
	}
	if prop.Type == "url" {
		return prop.URL
	}
	if prop.Type != "files" || len(prop.Files) == 0 {
		return ""
	}
	file := prop.Files[0]
	if file.File != nil {
		return file.File.URL
	}
	if file.External != nil {
		return file.External.URL
	}
	return ""
}

func plainText(parts []RichText) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.PlainText)
	}
	return strings.TrimSpace(b.String())
}

// RenderBlocks flattens content blocks into markdown. Unsupported block
// types are skipped.
func RenderBlocks(blocks []Block) string {
	var lines []string
	numbered := 0

	for _, block := range blocks {
		if block.Type != "numbered_list_item" {
			numbered = 0
		}

		switch block.Type {
		case "paragraph":
			if text := blockText(block.Paragraph); text != "" {
				lines = append(lines, text)
			}
		case "heading_1":
			if text := blockText(block.Heading1); text != "" {
				lines = append(lines, "# "+text)
			}
		case "heading_2":
			if text := blockText(block.Heading2); text != "" {
				lines = append(lines, "## "+text)
			}
		case "heading_3":
			if text := blockText(block.Heading3); text != "" {
				lines = append(lines, "### "+text)
			}
		case "bulleted_list_item":
			if text := blockText(block.BulletedListItem); text != "" {
				lines = append(lines, "- "+text)
			}
		case "numbered_list_item":
			if text := blockText(block.NumberedListItem); text != "" {
				numbered++
				lines = append(lines, strconv.Itoa(numbered)+". "+text)
			}
		case "quote":
			if text := blockText(block.Quote); text != "" {
				lines = append(lines, "> "+text)
			}
		case "code":
			if text := blockText(block.Code); text != "" {
				lines = append(lines, "```\n"+text+"\n```")
			}
		}
	}

	return strings.Join(lines, "\n\n")
}

func blockText(block *RichTextBlock) string {
	if block == nil {
		return ""
	}
	return plainText(block.RichText)
}
