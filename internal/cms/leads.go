package cms

import (
	"context"
	"fmt"
	"time"

	"github.com/Raph13009/notion-blogs/internal/logger"
)

// CMS field length limits.
const (
	leadTextLimit   = 2000
	leadSelectLimit = 100
)

// LeadPage is a lead record destined for the leads database. Numeric fields
// are pointers so an absent value is never written as zero.
type LeadPage struct {
	Title         string
	Name          string
	Email         string
	EstimateRange string
	EstimateMin   *float64
	EstimateMax   *float64
	Score         *float64
	Source        string
	Answers       string
}

// LeadWriter writes lead records into the leads database. Before each write
// it consults the database schema and only fills properties the database
// actually declares, so schema drift degrades to partial records instead of
// API errors.
type LeadWriter struct {
	client     *Client
	databaseID string
	logger     logger.Logger
	now        func() time.Time
}

func NewLeadWriter(client *Client, databaseID string, log logger.Logger) *LeadWriter {
	return &LeadWriter{
		client:     client,
		databaseID: databaseID,
		logger:     log,
		now:        time.Now,
	}
}

func (w *LeadWriter) CreateLead(ctx context.Context, lead LeadPage) error {
	schema, err := w.client.RetrieveDatabase(ctx, w.databaseID)
	if err != nil {
		return fmt.Errorf("load leads schema: %w", err)
	}

	properties := map[string]any{}

	if titleKey := titleKeyOf(schema); titleKey != "" {
		setTextProperty(properties, schema, titleKey, lead.Title)
	}
	setTextProperty(properties, schema, "Name", lead.Name)
	setTextProperty(properties, schema, "Email", lead.Email)
	setTextProperty(properties, schema, "Estimate Range", lead.EstimateRange)
	setNumberProperty(properties, schema, "Estimate Min", lead.EstimateMin)
	setNumberProperty(properties, schema, "Estimate Max", lead.EstimateMax)
	setNumberProperty(properties, schema, "Score", lead.Score)
	setTextProperty(properties, schema, "Source", lead.Source)
	setTextProperty(properties, schema, "Submitted At", w.now().UTC().Format(time.RFC3339))
	setTextProperty(properties, schema, "Answers", lead.Answers)

	if err := w.client.CreatePage(ctx, w.databaseID, properties); err != nil {
		return err
	}

	w.logger.Info("Lead recorded in CMS",
		logger.String("source", lead.Source),
		logger.Int("properties", len(properties)),
	)
	return nil
}

func titleKeyOf(schema DatabaseSchema) string {
	for key, prop := range schema.Properties {
		if prop.Type == "title" {
			return key
		}
	}
	return ""
}

// setTextProperty fills key according to its declared type. String values
// fit rich_text, title, email, date and select columns.
func setTextProperty(out map[string]any, schema DatabaseSchema, key, value string) {
	prop, ok := schema.Properties[key]
	if !ok || value == "" {
		return
	}

	switch prop.Type {
	case "rich_text":
		out[key] = map[string]any{
			"rich_text": []map[string]any{
				{"type": "text", "text": map[string]any{"content": truncate(value, leadTextLimit)}},
			},
		}
	case "title":
		out[key] = map[string]any{
			"title": []map[string]any{
				{"type": "text", "text": map[string]any{"content": truncate(value, leadTextLimit)}},
			},
		}
	case "email":
		out[key] = map[string]any{"email": value}
	case "date":
		out[key] = map[string]any{"date": map[string]any{"start": value}}
	case "select":
		out[key] = map[string]any{"select": map[string]any{"name": truncate(value, leadSelectLimit)}}
	}
}

func setNumberProperty(out map[string]any, schema DatabaseSchema, key string, value *float64) {
	prop, ok := schema.Properties[key]
	if !ok || value == nil || prop.Type != "number" {
		return
	}
	out[key] = map[string]any{"number": *value}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
