package token

// Code generated by stringer -type=Kind; maintained by hand in stringer's
// output shape.

func (i Kind) String() string {
	switch i {
	case Keyword:
		return "Keyword"
	case Modifier:
		return "Modifier"
	case Semicolon:
		return "Semicolon"
	case Colon:
		return "Colon"
	case EqualSign:
		return "EqualSign"
	case Parenthesis:
		return "Parenthesis"
	case CurlyBracket:
		return "CurlyBracket"
	case Comma:
		return "Comma"
	case Dot:
		return "Dot"
	case Integer:
		return "Integer"
	case Decimal:
		return "Decimal"
	case Character:
		return "Character"
	case String:
		return "String"
	case Boolean:
		return "Boolean"
	case Poison:
		return "Poison"
	case Identifier:
		return "Identifier"
	default:
		return "Kind(" + itoa(int(i)) + ")"
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
