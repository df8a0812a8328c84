package domain

import (
	"fmt"
	"time"
)

// Field keys for the editable campaign attributes. The table columns, the
// cell-commit protocol and the persistence layer all address fields by
// these keys.
const (
	FieldCountry      = "country"
	FieldKeyword      = "keyword"
	FieldStartDate    = "startDate"
	FieldDifficulty   = "difficulty"
	FieldCurrentRank  = "currentRank"
	FieldEndRank      = "endRank"
	FieldCampaignType = "campaignType"
	FieldDay1         = "day1"
	FieldDay2         = "day2"
	FieldDay3         = "day3"
	FieldDay4         = "day4"
	FieldDay5         = "day5"
	FieldNote         = "note"
)

// DateLayout is the wire format for date-typed fields.
const DateLayout = "2006-01-02"

// EditableFields lists every field key that may be targeted by a cell
// commit, in display order.
func EditableFields() []string {
	return []string{
		FieldCountry, FieldKeyword, FieldStartDate, FieldDifficulty,
		FieldCurrentRank, FieldEndRank, FieldCampaignType,
		FieldDay1, FieldDay2, FieldDay3, FieldDay4, FieldDay5,
		FieldNote,
	}
}

// FieldValue normalises a raw commit value into the field's storage type:
// string for text fields (nil becomes ""), *float64 for numeric fields,
// *int64 for the daily counters and *time.Time for dates. Date values may
// arrive as time.Time or as a DateLayout string. An unknown field or an
// incompatible value is an error; no network or storage call should be
// made after one.
func FieldValue(field string, value any) (any, error) {
	switch field {
	case FieldCountry, FieldKeyword, FieldCampaignType, FieldNote:
		return asText(field, value)
	case FieldDifficulty, FieldCurrentRank, FieldEndRank:
		return asNumber(field, value)
	case FieldDay1, FieldDay2, FieldDay3, FieldDay4, FieldDay5:
		return asCounter(field, value)
	case FieldStartDate:
		return asDate(field, value)
	default:
		return nil, fmt.Errorf("unknown field %q", field)
	}
}

// SetField applies a single-field change to the campaign after
// normalising the value with FieldValue.
func SetField(c *Campaign, field string, value any) error {
	v, err := FieldValue(field, value)
	if err != nil {
		return err
	}
	switch field {
	case FieldCountry:
		c.Country = v.(string)
	case FieldKeyword:
		c.Keyword = v.(string)
	case FieldCampaignType:
		c.CampaignType = v.(string)
	case FieldNote:
		c.Note = v.(string)
	case FieldStartDate:
		c.StartDate = v.(*time.Time)
	case FieldDifficulty:
		c.Difficulty = v.(*float64)
	case FieldCurrentRank:
		c.CurrentRank = v.(*float64)
	case FieldEndRank:
		c.EndRank = v.(*float64)
	case FieldDay1:
		c.Day1 = v.(*int64)
	case FieldDay2:
		c.Day2 = v.(*int64)
	case FieldDay3:
		c.Day3 = v.(*int64)
	case FieldDay4:
		c.Day4 = v.(*int64)
	case FieldDay5:
		c.Day5 = v.(*int64)
	}
	return nil
}

func asText(field string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("field %q: expected text, got %T", field, value)
	}
}

func asNumber(field string, value any) (*float64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case float32:
		f := float64(v)
		return &f, nil
	case int:
		f := float64(v)
		return &f, nil
	case int64:
		f := float64(v)
		return &f, nil
	default:
		return nil, fmt.Errorf("field %q: expected number, got %T", field, value)
	}
}

func asCounter(field string, value any) (*int64, error) {
	f, err := asNumber(field, value)
	if err != nil || f == nil {
		return nil, err
	}
	n := int64(*f)
	return &n, nil
}

func asDate(field string, value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("field %q: expected date, got %T", field, value)
	}
}
