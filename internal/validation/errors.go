package validation

import "strings"

// FieldError holds the messages reported for one form field.
type FieldError struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// FieldErrors is an ordered list of field errors. Fields appear in the order
// they are declared on the validated struct.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+strings.Join(e.Messages, ", "))
	}
	return strings.Join(parts, "; ")
}

// Empty reports whether no field failed validation.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// For returns the messages recorded for field, or nil.
func (fe FieldErrors) For(field string) []string {
	for _, e := range fe {
		if e.Field == field {
			return e.Messages
		}
	}
	return nil
}

// First returns the first message for field, or an empty string.
func (fe FieldErrors) First(field string) string {
	if msgs := fe.For(field); len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields lists the fields that failed, in order.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for _, e := range fe {
		fields = append(fields, e.Field)
	}
	return fields
}

func (fe *FieldErrors) add(field, message string) {
	for i := range *fe {
		if (*fe)[i].Field == field {
			(*fe)[i].Messages = append((*fe)[i].Messages, message)
			return
		}
	}
	*fe = append(*fe, FieldError{Field: field, Messages: []string{message}})
}
