// Package config holds the compiler's flag set as one explicit,
// immutable value passed down the pipeline, rather than a package of
// global switches.
package config

// Config is the full set of compiler-behavior flags.
type Config struct {
	// Trace enables verbose per-pass progress logging.
	Trace bool

	// WarningUnusedRule records whether the "unused occurrence of rule
	// ..." warning is wanted. No pass reads it: NeverStored returns the
	// occurrences it drops (pipeline.Result.Dropped) and no warning is
	// emitted for them.
	WarningUnusedRule bool

	// NeverStored enables pass I (never-stored inference). Disabling it
	// leaves every constraint eligible for storage.
	NeverStored bool

	// HeadReorder enables pass F (greedy partner head reordering).
	HeadReorder bool

	// GuardReorder enables pass G (guard-conjunct hoisting).
	GuardReorder bool

	// OccurrencesReorder, when set, expands deleted-head atoms into
	// occurrences before kept-head atoms; otherwise kept-head atoms come
	// first.
	OccurrencesReorder bool

	// ConstraintStoreIndex enables pass H (index synthesis).
	ConstraintStoreIndex bool

	// LineError prefixes diagnostics with "path:line:col:" for
	// machine-readable batch output.
	LineError bool

	// OutputDir is where the emitter writes its two abstract-code
	// streams and the dependency-graph dump.
	OutputDir string

	// Major/Minor identify the compiler version. Neither the pipeline
	// nor the emitter reads them.
	Major int
	Minor int
}

// Default returns the configuration with every optimization pass
// enabled, matching a production build.
func Default() Config {
	return Config{
		WarningUnusedRule:    true,
		NeverStored:          true,
		HeadReorder:          true,
		GuardReorder:         true,
		OccurrencesReorder:   false,
		ConstraintStoreIndex: true,
		LineError:            true,
		OutputDir:            ".",
		Major:                1,
		Minor:                0,
	}
}
