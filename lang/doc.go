// Package lang implements the dice roll expression language: its grammar,
// AST, iterative evaluator, and the environment abstraction that backs
// variable and template storage.
//
// # Philosophy
//
// No parser generator. No generated code. The grammar is small enough for a
// hand-written recursive descent parser with explicit backtracking, and the
// evaluator is a small enough interpreter that an explicit call/return
// stack is preferable to recursion — every variable lookup is a potential
// suspension point against a persistent backend, and an explicit stack
// keeps that uniform regardless of expression depth.
//
// # Grammar
//
// Informal EBNF (space1 = one or more of " \t\r\n", space0 = space1?):
//
//	command          = "!" ( roll | set | print_env | help )
//	roll             = "roll" space1 expression
//	set              = "set"  space1 bareword space1 expression
//	print_env        = "print-env"
//	help             = "help"
//
//	expression       = template_call | template | term | dice_roll | integer | var_ref
//	term             = sub_expr ( space1 op space1 sub_expr )*
//	sub_expr         = dice_roll | integer | var_ref
//	dice_roll        = (integer | var_ref)? "d" (integer | var_ref)
//	integer          = [0-9]+
//	op               = "+" | "-"
//	var_ref          = "{" bareword "}"
//	bareword         = [^,!$;{}[]()=> \t\r\n]+, first rune not a decimal digit
//	template         = "(" arg_list ")" "=>" "(" expression ")"
//	arg_list         = ( bareword ( "," space0 bareword )* )?
//	template_call    = ( template | var_ref ) "(" expression ( "," space0 expression )* ")"
//
// A full command must consume the entire line (modulo trailing
// whitespace); leftover input after an otherwise-successful parse is
// itself a parse error.
//
// # Examples
//
//	!roll 2d6 + 1
//	!set atk 1d20 + 5
//	!roll {atk}
//	!roll (a,b) => ( {a}d4 + {b} )(2, 6)
//	!print-env
//	!help
package lang
