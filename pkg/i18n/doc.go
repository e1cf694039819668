// Package i18n renders validation messages from YAML or JSON message catalogs.
//
// A catalog document maps language codes to nested message trees; nested keys
// are addressed with dots:
//
//	cs:
//	  validation:
//	    required: "Pole %{field} je povinné"
//	    min_length: "Zadejte alespoň %{min} znaků"
//
// Templates use named placeholders of the form %{name}. Arguments are passed
// as key, value pairs, the shape validator.ValidationError.TranslationArgs
// produces. Requested languages are matched against the loaded ones with
// golang.org/x/text/language, so "cs-CZ" is served from "cs".
package i18n
