// Package analyzer provides pure analysis functions over reconstructed trace
// trees.
//
// Every function is stateless, mutates nothing, and tolerates nil or empty
// trees by returning zeroed results. Consumers build a tree with the trace
// package and feed it to the analyses they need:
//
//   - IsTerminalEvent: vocabulary check on the event's status segment
//   - TerminalNodes: structural and semantic terminals with their depths
//   - AnalyzeCompletion: how much of the chain reached a terminal status
//   - CriticalPath: longest root-to-leaf path by node count
//   - DetectAnomalies: repetition, slow execution, unanswered requests
//   - AllNodes: pre-order flatten, shared by the analyses above
//
// Classification is deliberately two-tiered: IsTerminalEvent demands an exact
// three-segment event with a known status word, while completion counting and
// anomaly matching use permissive substring checks. Unifying the two would
// shift counts for event names that embed status words outside the third
// segment, so both tiers stay as they are.
package analyzer
