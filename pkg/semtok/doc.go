/*
Package semtok provides the semantic token model and the stream algebra used to
combine token streams from different producers.

🎨 Semantic Tokens Overview:
---------------------------
A semantic token classifies a single-line span of source text with a category
(keyword, type, literal-string, ...) and a set of modifiers (readonly, static, ...).
Two producers feed this package:

	Language Server              Lexer
	     |                         |
	     v                         v
	+----------+             +----------+
	|  @wire   |             |  @lexer  |
	+----------+             +----------+
	     |                         |
	  Compact                   Compact
	     |                         |
	     v                         v
	 primary  ------ Merge ----- secondary
	                   |
	                   v
	            merged stream ---> @render

The primary stream is authoritative: wherever the two streams disagree about a
span, the primary classification survives.

🔍 Main Components:
-----------------
1. Token / Stream
  - Token is a value: line, start column, length, category, modifiers
  - Stream pairs the tokens with the exact text they annotate
  - Columns count runes, not bytes

2. Compact
  - collapses adjacent tokens with the same classification

3. Merge
  - combines a primary and a secondary stream into one sorted,
    non-overlapping stream

4. Token.Limited
  - intersects a token with a column range on its line

Every function in this package is pure and safe for concurrent use on
independent inputs.
*/
package semtok

/*
Merge Walkthrough:
-----------------

	primary:    ..[type]...
	secondary:  [variable..]

	sorted by (line, start, end, origin):

	    [variable......]   secondary, accepted
	      [type]           primary, cuts the tail of the accepted token

	result:     [va][type][ble]
	                        ^
	                        tail re-queued as a secondary candidate

Identical ranges from both streams resolve to the primary token because the
primary candidate sorts first and the secondary one is then cut to nothing.
*/
