// Package expand turns prototype test definitions into concrete,
// individually nameable and runnable units, one per element of the
// attached parameter space.
//
// Prototypes are registered in a Suite — an explicit side table; nothing
// is ever attached to the user's functions themselves. Marking is purely
// additive: Foreach records a parameter source against a case, and nothing
// happens until Expand runs. Expansion computes the Cartesian product of
// every attached source (the last-attached source varies fastest), merges
// each tuple into one record, synthesizes a collision-free name, and wraps
// the prototype body so that the record's resources are acquired before it
// and released after it.
//
// The host test runner stays external: it receives Name/Run pairs and
// decides scheduling. Bridging to the standard testing package is one
// loop:
//
//	units, err := expand.Expand(suite)
//	if err != nil { t.Fatal(err) }
//	for _, u := range units {
//	    t.Run(u.Name(), func(t *testing.T) {
//	        if err := u.Run(context.Background()); err != nil {
//	            t.Error(err)
//	        }
//	    })
//	}
package expand
