// Package config loads the YAML configuration of the rewriter.
//
// Example:
//
//	collection_types: ["FrozenArray`1", "Game.Collections.PatchableList<T>"]
//	known_types:
//	  - {name: Game.Money, kind: value}
//	adjustment: {suffix: Adj, base_type: ConstantPatches.ConstAdjustment, instance: I}
//	guard: {open: "#if EDIT_CONST", separator: "#else", close: "#endif //EDIT_CONST"}
//	indent: "    "
//	line_ending: lf
//	io: {retries: 5, retry_delay: 200ms, parallelism: 4, debounce: 100ms}
//
// Every key is optional; missing keys take the defaults shown.
package config
