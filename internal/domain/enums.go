package domain

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldDate     FieldType = "date"
	FieldTime     FieldType = "time"
)

// ValidFieldTypes is the canonical set of accepted field type strings.
var ValidFieldTypes = map[string]bool{
	"text": true, "number": true, "textarea": true, "select": true,
	"radio": true, "checkbox": true, "date": true, "time": true,
}

// IsSelection reports whether the field type carries an option list.
func (t FieldType) IsSelection() bool {
	return t == FieldSelect || t == FieldRadio || t == FieldCheckbox
}

// IsTextual reports whether the field type uses the text settings group.
func (t FieldType) IsTextual() bool {
	return t == FieldText || t == FieldTextarea
}

// IsTemporal reports whether the field type uses the date settings group.
func (t FieldType) IsTemporal() bool {
	return t == FieldDate || t == FieldTime
}

type TextType string

const (
	TextSingleLine TextType = "text"
	TextMultiLine  TextType = "textarea"
)

type DateFormat string

const (
	DateFormatDate      DateFormat = "date"
	DateFormatTime      DateFormat = "time"
	DateFormatDateTime  DateFormat = "datetime"
	DateFormatYear      DateFormat = "year"
	DateFormatMonthYear DateFormat = "month-year"
	DateFormatPartial   DateFormat = "partial"
)

// ValidDateFormats is the canonical set of accepted date format strings.
var ValidDateFormats = map[string]bool{
	"date": true, "time": true, "datetime": true,
	"year": true, "month-year": true, "partial": true,
}

type OptionLayout string

const (
	LayoutVertical   OptionLayout = "vertical"
	LayoutHorizontal OptionLayout = "horizontal"
)
