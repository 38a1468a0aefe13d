package schemaview

import (
	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

// ModelSummary is the list-endpoint payload for one registered model.
type ModelSummary struct {
	Name        string `json:"name"`
	Table       string `json:"table"`
	PrimaryKey  string `json:"primary_key"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	FieldCount  int    `json:"field_count"`
}

// FieldDetail describes one attribute of a model.
type FieldDetail struct {
	Name        string `json:"name"`
	Cast        string `json:"cast"`
	Rules       string `json:"rules,omitempty"`
	Default     any    `json:"default,omitempty"`
	PrimaryKey  bool   `json:"primary_key,omitempty"`
	Guarded     bool   `json:"guarded,omitempty"`
	Fillable    bool   `json:"fillable,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// ModelDetail is the detail-endpoint payload for one model.
type ModelDetail struct {
	Name           string        `json:"name"`
	Table          string        `json:"table"`
	PrimaryKey     string        `json:"primary_key"`
	PrimaryKeyCast string        `json:"primary_key_cast"`
	Label          string        `json:"label,omitempty"`
	Description    string        `json:"description,omitempty"`
	Fields         []FieldDetail `json:"fields"`
}

func summaryFromDefinition(def schema.Definition, includeHidden bool) ModelSummary {
	count := 0
	for _, name := range def.FieldNames() {
		field, _ := def.Field(name)
		if field.Hidden && !includeHidden {
			continue
		}
		count++
	}
	return ModelSummary{
		Name:        def.Name,
		Table:       def.Table,
		PrimaryKey:  def.PrimaryKey,
		Label:       def.Meta.Label,
		Description: def.Meta.Description,
		FieldCount:  count,
	}
}

func detailFromDefinition(def schema.Definition, includeHidden bool) ModelDetail {
	detail := ModelDetail{
		Name:           def.Name,
		Table:          def.Table,
		PrimaryKey:     def.PrimaryKey,
		PrimaryKeyCast: cast.Canonical(def.PrimaryKeyCast),
		Label:          def.Meta.Label,
		Description:    def.Meta.Description,
		Fields:         make([]FieldDetail, 0, len(def.Fields)),
	}
	for _, name := range def.FieldNames() {
		field, _ := def.Field(name)
		if field.Hidden && !includeHidden {
			continue
		}
		detail.Fields = append(detail.Fields, FieldDetail{
			Name:        name,
			Cast:        cast.Canonical(field.Cast),
			Rules:       field.Rules,
			Default:     field.Default,
			PrimaryKey:  name == def.PrimaryKey,
			Guarded:     field.Guarded,
			Fillable:    field.Fillable,
			Hidden:      field.Hidden,
			Label:       field.Label,
			Description: field.Description,
		})
	}
	return detail
}
