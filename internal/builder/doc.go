/*
Package builder reconstructs the nested tree from the flat, leveled item list.

The reconstruction is a single linear pass. A classifier decides from a one-item
lookahead whether each entry opens a group, and an explicit ancestor stack tracks
which container the next entry attaches beneath. The stack operates on the
abstract domain.Tree only; renderers walk the finished tree afterwards.

Well-formed input starts at level 0 and never rises by more than one level per
step. Other input still produces a tree, but its shape is not defined; use
Validate or Options.Strict to reject it instead.
*/
package builder
