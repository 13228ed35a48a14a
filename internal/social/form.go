package social

import "strings"

// FormRow is one editable row of the social links settings form. Value holds
// whatever the user typed: a handle, "@handle" or a full profile URL.
type FormRow struct {
	Platform Platform `json:"platform" validate:"required,platform"`
	Value    string   `json:"value" validate:"max=300"`
	Label    string   `json:"label,omitempty" validate:"max=100"`
}

type FormState struct {
	Rows []FormRow `json:"rows" validate:"max=30,dive"`
}

// BuildPayload converts form state into the entries that get persisted.
// Rows whose value normalises to an empty handle, and rows for unknown
// platforms, are dropped. Duplicates are not removed.
func BuildPayload(form FormState) Links {
	links := make(Links, 0, len(form.Rows))
	for _, row := range form.Rows {
		if !row.Platform.Valid() {
			continue
		}

		handle := row.Platform.Normalize(row.Value)
		if handle == "" {
			continue
		}

		entry := Entry{Platform: row.Platform, Handle: handle}
		if row.Platform.LabelType() == LabelCustom {
			entry.Label = strings.TrimSpace(row.Label)
			if entry.Label == "" {
				entry.Label = handle
			}
		}
		links = append(links, entry)
	}
	return links
}

// ParseInitial turns stored entries back into form state. Nothing is
// dropped here, so an empty stored handle still shows up as an editable row.
// Rebuilding the form with BuildPayload gives back the same entries.
func ParseInitial(links Links) FormState {
	form := FormState{Rows: make([]FormRow, 0, len(links))}
	for _, entry := range links {
		row := FormRow{Platform: entry.Platform, Value: entry.FormValue()}
		if entry.LabelType() == LabelCustom {
			row.Label = entry.Label
		}
		form.Rows = append(form.Rows, row)
	}
	return form
}
