package strutil

// IsSpace reports whether c is one of the ASCII whitespace characters: space, \t, \n, \v,
// \f or \r.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func LStripWS(str string) string {
	for i := 0; i < len(str); i++ {
		if !IsSpace(str[i]) {
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		if !IsSpace(str[i-1]) {
			return str[:i]
		}
	}

	return ""
}

func StripWS(str string) string {
	return RStripWS(LStripWS(str))
}

// Fields splits the string around runs of ASCII whitespace. At most n+1 fields are
// collected: if more are present, ok is false.
func Fields(str string, n int) (fields []string, ok bool) {
	fields = make([]string, 0, n)

	for {
		str = LStripWS(str)
		if len(str) == 0 {
			return fields, true
		}

		if len(fields) == n {
			return fields, false
		}

		end := 0
		for end < len(str) && !IsSpace(str[end]) {
			end++
		}

		fields = append(fields, str[:end])
		str = str[end:]
	}
}

// Fit returns the string unchanged if it fits the capacity. Otherwise, ok is false: the value
// is rejected as a whole and never cut.
func Fit(str string, capacity int) (value string, ok bool) {
	if len(str) > capacity {
		return "", false
	}

	return str, true
}

// Truncate cuts the string down to the capacity.
func Truncate(str string, capacity int) string {
	if len(str) > capacity {
		return str[:capacity]
	}

	return str
}
