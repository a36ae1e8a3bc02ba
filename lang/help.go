package lang

// DefaultLocale is used when a caller doesn't specify one, or specifies one
// with no entry in helpText.
const DefaultLocale = "en"

// helpText maps a locale to its rendered command summary without pulling
// in a full i18n library for a single-command-set REPL. Adding a locale
// is adding a map entry.
var helpText = map[string]string{
	DefaultLocale: `commands:
  !roll <expression>        evaluate an expression and print its result
  !set <name> <expression>  evaluate an expression and bind it to <name>
  !print-env                list every bound name in the current scope
  !help                     print this message

expressions:
  1d20 + 5                  roll a 20-sided die, add 5
  {atk}                     the value bound to "atk"
  (a,b) => ( {a}d4 + {b} )  a template taking parameters a and b
  {tmpl}(2, 6)              call a template bound to "tmpl" with args 2, 6`,
}

// HelpText renders localized help text for locale, falling back to
// [DefaultLocale] if locale has no entry.
func HelpText(locale string) string {
	if text, ok := helpText[locale]; ok {
		return text
	}

	return helpText[DefaultLocale]
}
