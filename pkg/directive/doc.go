// Package directive tokenizes the LaTeX auxiliary-file directives used by the
// float audit.
//
// Three directive families are recognised, each with its own Matcher:
//
//	\newlabel{LABEL}{{ORDINAL}{PAGE}...      caption definition
//	\floataudit@firstref{LABEL}{PAGE}        first textual reference
//	\@input{PATH}                            inclusion of another aux file
//
// A matcher reports three outcomes for a candidate site: no match, a match
// whose record is kept, or a match whose record is dropped (for example a
// caption whose page token is a roman numeral or an anchor name). Dropped
// matches are consumed so scanning resumes after them; they are never errors.
package directive
