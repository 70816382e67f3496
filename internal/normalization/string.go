package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  return strings.ToLower(strings.TrimSpace(input))
}

// ParseFreeText trims without lowercasing; journal text keeps its case
// because it is echoed back to the user and fed to the model verbatim.
func ParseFreeText(input string) string {
  return strings.TrimSpace(input)
}

// ClampRunes bounds free text to n runes so a pasted wall of text does
// not blow up prompts or session rows.
func ClampRunes(input string, n int) string {
  r := []rune(input)
  if len(r) <= n {
    return input
  }
  return string(r[:n])
}
