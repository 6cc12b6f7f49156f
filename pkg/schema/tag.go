package schema

import (
	"fmt"
	"strings"
)

// TagKey is the struct tag consumed by this package.
const TagKey = "db"

// Default soft-delete marker values, used when deleted:/undeleted: are absent.
const (
	DefaultDeletedValue   = "1"
	DefaultUndeletedValue = "0"
)

// applyTagOptions parses the option segments of a db tag into the column.
// The column name (first tag segment) has already been consumed by the caller.
func applyTagOptions(col *Column, opts []string) error {
	for _, opt := range opts {
		if opt == "" {
			continue
		}

		key, value, hasValue := strings.Cut(opt, ":")
		switch key {
		case "pk":
			col.PrimaryKey = true
		case "auto":
			col.Auto = true
		case "notnull":
			col.NotNull = true
		case "noinsert":
			col.Insertable = false
		case "noupdate":
			col.Updatable = false
		case "noselect":
			col.Selectable = false
		case "quoted":
			col.Quoted = true
		case "softdelete":
			col.SoftDelete = true
		case "deleted":
			if !hasValue || value == "" {
				return fmt.Errorf("field %s: deleted option requires a value", col.FieldName)
			}
			col.DeletedValue = value
		case "undeleted":
			if !hasValue || value == "" {
				return fmt.Errorf("field %s: undeleted option requires a value", col.FieldName)
			}
			col.UndeletedValue = value
		case "fill":
			rule, err := parseFillRule(value)
			if err != nil {
				return fmt.Errorf("field %s: %w", col.FieldName, err)
			}
			col.Fill = rule
		case "type":
			if !hasValue || value == "" {
				return fmt.Errorf("field %s: type option requires a value", col.FieldName)
			}
			col.SQLType = value
		case "default":
			if value != "uuid" {
				return fmt.Errorf("field %s: unsupported default %q (only uuid is supported)", col.FieldName, value)
			}
			col.DefaultUUID = true
		default:
			return fmt.Errorf("field %s: unknown db tag option %q", col.FieldName, opt)
		}
	}

	if col.SoftDelete {
		if col.DeletedValue == "" {
			col.DeletedValue = DefaultDeletedValue
		}
		if col.UndeletedValue == "" {
			col.UndeletedValue = DefaultUndeletedValue
		}
	}

	return nil
}

// parseFillRule parses "insert", "update", or "insert|update".
func parseFillRule(value string) (FillRule, error) {
	if value == "" {
		return FillNone, fmt.Errorf("fill option requires a value")
	}

	var rule FillRule
	for _, part := range strings.Split(value, "|") {
		switch part {
		case "insert":
			rule |= FillInsert
		case "update":
			rule |= FillUpdate
		default:
			return FillNone, fmt.Errorf("unknown fill rule %q", part)
		}
	}
	return rule, nil
}
