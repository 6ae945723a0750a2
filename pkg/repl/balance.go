package repl

// balance tracks whether the buffered lines form a complete chunk. Braces
// inside string literals and comments do not count. Block comments nest
// the way the lexer nests them.
type balance struct {
	depth        int
	inString     bool
	commentDepth int
}

func (b *balance) feed(line string) {
	for i := 0; i < len(line); i++ {
		c := line[i]
		next := byte(0)
		if i+1 < len(line) {
			next = line[i+1]
		}

		switch {
		case b.commentDepth > 0:
			switch {
			case c == '/' && next == '*':
				b.commentDepth++
				i++
			case c == '*' && next == '/':
				b.commentDepth--
				i++
			}
		case b.inString:
			if c == '"' {
				b.inString = false
			}
		case c == '"':
			b.inString = true
		case c == '/' && next == '/':
			return
		case c == '/' && next == '*':
			b.commentDepth++
			i++
		case c == '{':
			b.depth++
		case c == '}':
			b.depth--
		}
	}
}

// open reports whether more lines are needed.
func (b *balance) open() bool {
	return b.depth > 0 || b.inString || b.commentDepth > 0
}

func (b *balance) reset() {
	*b = balance{}
}
