// Package help holds the CLI usage text and the Lox quick reference.
package help

import (
	"fmt"
	"strings"

	"github.com/longkhanh1987/CS-4080-HW/pkg/stdlib"
)

// Version is reported by the quick reference.
const Version = "v0.3"

// Usage is printed for -h and on bad invocations.
const Usage = `usage: lox [-h] [-c [-j]] [-f] [-p] [-r] [-n] [-v] [-C config] [-H history] [script]

  -h          show this help
  -c          check the script without running it
  -j          with -c, print diagnostics as a JSON array on stdout
  -f          print the script in canonical form
  -p          print the parenthesized syntax tree
  -r          print expressions in reverse Polish notation
  -n          disable colored output
  -v          log phase timings to stderr
  -C config   read configuration from this YAML file
  -H history  record REPL input in this SQLite database

Without a script, lox starts an interactive prompt.
`

// QUICKREF is the one-page language summary shown by ":help" in the REPL.
const QUICKREF = `Lox ` + Version + ` quick reference

Statements    var x = 1;  print x;  { ... }  if (c) a; else b;
              while (c) body;  for (init; cond; incr) body;  break;
              fun name(a, b) { return a + b; }
Expressions   a, b   c ? x : y   x = v   or  and  ==  !=  <  <=  >  >=
              +  -  *  /  !  -x  f(args)  (group)
Values        nil  true  false  numbers  "strings"  functions

Topics: syntax, types, stdlib, flow, diagnostics, repl, config, examples
Run ":help <topic>" in the REPL or "lox -h" for details.
`

// TopicList is the display order of the help topics.
var TopicList = []string{"syntax", "types", "stdlib", "flow", "diagnostics", "repl", "config", "examples"}

// Topics maps a topic name to its text.
var Topics = map[string]string{
	"syntax": `Syntax

Programs are a sequence of declarations terminated by semicolons.
Precedence from lowest to highest:
  ,            comma, evaluates both sides and yields the right one
  =            assignment, right associative
  ?:           conditional, right associative
  or  and      short-circuit logic
  == !=        equality
  < <= > >=    comparison
  + -          term
  * /          factor
  ! -          unary prefix
  f(...)       call
Comments start with // and run to the end of the line.
`,
	"types": `Types

nil        the absence of a value
boolean    true or false
number     64-bit floating point; integral values print without ".0"
string     double-quoted, may span lines
function   declared with fun or provided natively

Only nil and false are falsy. + concatenates when either operand is a
string; otherwise both operands must be numbers. Dividing by zero is a
runtime error.
`,
	"flow": `Control flow

if (cond) stmt else stmt    the else binds to the nearest if
while (cond) stmt
for (init; cond; incr) stmt every clause is optional
break;                      leaves the innermost loop
return [expr];              leaves the current function

break outside a loop and return outside a function are reported before
the program runs.
`,
	"diagnostics": `Diagnostics

Syntax errors print as
  [line 3] Error at ';': Expect expression.
and the parser continues at the next statement so several errors can be
reported at once. Runtime errors print as
  Operands must be numbers.
  [line 7]
and stop the program. Exit codes: 64 usage, 65 syntax error, 66 script
not readable, 70 runtime error.
`,
	"repl": `REPL

Each complete chunk is run as soon as its braces balance; a line ending
inside an open block shows the continuation prompt. A bare expression
prints its value. Definitions persist between chunks. End the session
with EOF (Ctrl-D).

Lines starting with ':' are commands:
  :help [topic]   show the quick reference or a topic
  :history [n]    list the last n recorded chunks (default 10)
  :quit           leave the prompt
`,
	"config": `Configuration

lox reads .loxrc.yml in the working directory, then
~/.config/lox/config.yml. -C names a file explicitly.

  prompt: "> "
  continuation_prompt: "... "
  color: true
  max_call_depth: 4096
  history:
    path: ~/.lox_history.db
    limit: 100
`,
	"examples": `Examples

fun makeCounter() {
  var i = 0;
  fun count() { i = i + 1; return i; }
  return count;
}
var c = makeCounter();
print c(); // 1
print c(); // 2

for (var i = 0; i < 10; i = i + 1) {
  if (i == 3) break;
  print i;
}
`,
}

func init() {
	Topics["stdlib"] = "Native functions\n\n" + StdlibIndex()
}

// MatchTopic resolves a topic by exact name or unique prefix.
func MatchTopic(query string) (string, string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if content, ok := Topics[query]; ok {
		return query, content, nil
	}

	var matches []string
	for _, name := range TopicList {
		if query != "" && strings.HasPrefix(name, query) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("unknown help topic: %s", query)
	case 1:
		return matches[0], Topics[matches[0]], nil
	default:
		return "", "", fmt.Errorf("ambiguous help topic %q matches %s", query, strings.Join(matches, ", "))
	}
}

var nativeDocs = map[string]string{
	"clock": "seconds since an arbitrary epoch",
	"str":   "the value as print shows it",
	"len":   "number of characters in a string",
	"type":  "the value's type name",
}

// StdlibIndex lists the default native functions with their arity.
func StdlibIndex() string {
	reg := stdlib.Defaults()
	names := reg.Names()

	var b strings.Builder
	for _, name := range names {
		fn := reg.Get(name)
		params := make([]string, fn.Arity)
		for i := range params {
			params[i] = fmt.Sprintf("a%d", i+1)
		}
		sig := fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
		fmt.Fprintf(&b, "  %-10s %s\n", sig, nativeDocs[name])
	}
	fmt.Fprintf(&b, "Total: %d functions\n", len(names))
	return b.String()
}
