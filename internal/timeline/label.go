package timeline

import "strings"

// SplitLabel breaks a label into at most two display lines: before an
// opening parenthesis, otherwise at the first interior space.
func SplitLabel(label string) []string {
	if i := strings.Index(label, "("); i >= 0 {
		head := strings.TrimSpace(label[:i])
		if head == "" {
			return []string{label}
		}
		return []string{head, label[i:]}
	}
	if i := strings.Index(label, " "); i > 0 && i < len(label)-1 {
		return []string{label[:i], label[i+1:]}
	}
	return []string{label}
}
